// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// lhverify checks a claim transaction against a set of pledges for a
// crowdfunding project and reports which pledges it includes.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/lighthouse/internal/cfgutil"
	"github.com/btcsuite/lighthouse/lhproto"
	"github.com/btcsuite/lighthouse/project"
	"github.com/btcsuite/lighthouse/verify"
	"github.com/jessevdk/go-flags"
)

func main() {
	os.Exit(mainInt())
}

func mainInt() int {
	cfg, err := loadConfig()
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			return 0
		}
		return 1
	}

	if err := initLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logRotator.Close()

	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	complete, err := run(ctx, cfg)
	if err != nil {
		log.Errorf("%v", err)
		return 1
	}
	if !complete {
		return 1
	}
	return 0
}

// run loads the claim and pledges named by cfg, checks them and prints the
// report.  It returns whether the claim fully funds the project.
func run(ctx context.Context, cfg *config) (bool, error) {
	proj, err := project.New(cfg.projectConfig())
	if err != nil {
		return false, err
	}
	log.Infof("Checking claim of project %v paying %d %s totalling %v "+
		"on %s", proj, len(cfg.outputs), pickNoun(len(cfg.outputs),
		"output", "outputs"), proj.Goal(), cfg.activeNet.Name)

	claim, err := readClaim(cfg.ClaimFile)
	if err != nil {
		return false, err
	}

	pledges := make([]*lhproto.Pledge, 0, len(cfg.PledgeFiles))
	for _, path := range cfg.PledgeFiles {
		raw, err := os.ReadFile(path)
		if err != nil {
			return false, err
		}
		pledge, err := lhproto.DeserializePledge(raw)
		if err != nil {
			return false, fmt.Errorf("%s: %w", path, err)
		}
		pledges = append(pledges, pledge)
	}

	v := verify.New(proj, &verify.Config{MaxWorkers: cfg.Workers})
	report, err := v.CheckClaim(ctx, claim, pledges)
	if err != nil {
		return false, err
	}

	printReport(report)
	return report.Complete(), nil
}

// readClaim reads a hex encoded transaction from path.
func readClaim(path string) (*wire.MsgTx, error) {
	raw, err := cfgutil.ReadHexFile(path)
	if err != nil {
		return nil, err
	}

	claim := wire.NewMsgTx(wire.TxVersion)
	if err := claim.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("cannot decode claim %s: %w", path, err)
	}
	return claim, nil
}

func printReport(r *verify.Report) {
	fmt.Printf("claim %v\n", r.Claim)
	fmt.Printf("outputs match project: %v\n", r.OutputsMatch)
	for _, id := range r.Included {
		fmt.Printf("included %v\n", id)
	}
	for _, id := range r.Missing {
		fmt.Printf("missing  %v\n", id)
	}
	for _, id := range r.Rejected {
		_, err := r.Results[id].Unpack()
		fmt.Printf("rejected %v: %v\n", id, err)
	}
	if r.Duplicates > 0 {
		fmt.Printf("duplicates skipped: %d\n", r.Duplicates)
	}
	fmt.Printf("pledged value included: %v\n", r.PledgedValue)
}

// pickNoun returns the singular or plural form of a noun depending
// on the count n.
func pickNoun(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
