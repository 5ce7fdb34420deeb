// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package verify checks a claim transaction against a batch of pledges.
package verify

import (
	"context"
	"runtime"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/lighthouse/lhproto"
	"github.com/davecgh/go-spew/spew"
	"github.com/lightningnetwork/lnd/fn/v2"
	"golang.org/x/sync/errgroup"
)

// Config holds the verifier options.
type Config struct {
	// MaxWorkers limits how many pledges are checked at once.  The number
	// of CPUs is used when zero or negative.
	MaxWorkers int
}

// Verifier checks claims of a single project.  It is safe for concurrent
// use as long as the project is.
type Verifier struct {
	project    lhproto.Project
	maxWorkers int
}

// New returns a verifier for project.  A nil cfg selects the defaults.
func New(project lhproto.Project, cfg *Config) *Verifier {
	workers := runtime.NumCPU()
	if cfg != nil && cfg.MaxWorkers > 0 {
		workers = cfg.MaxWorkers
	}

	return &Verifier{
		project:    project,
		maxWorkers: workers,
	}
}

// Report is the result of checking a claim.
type Report struct {
	// Claim is the hash of the checked claim transaction.
	Claim chainhash.Hash

	// OutputsMatch is whether the claim pays exactly the project
	// outputs.
	OutputsMatch bool

	// Results holds the outcome for each distinct pledge.  An Ok value
	// tells whether the pledge is included, an Err value carries the
	// reason the pledge was rejected by the project.
	Results map[chainhash.Hash]fn.Result[bool]

	// Included, Missing and Rejected list pledge identities by outcome,
	// in the order the pledges were given.
	Included []chainhash.Hash
	Missing  []chainhash.Hash
	Rejected []chainhash.Hash

	// Duplicates counts pledges skipped because a pledge with the same
	// identity came earlier.
	Duplicates int

	// PledgedValue sums the asserted value of the included pledges.
	PledgedValue btcutil.Amount
}

// Complete returns whether the claim pays the project and every given
// pledge was valid and included.
func (r *Report) Complete() bool {
	return r.OutputsMatch && len(r.Missing) == 0 && len(r.Rejected) == 0
}

// CheckClaim checks every pledge against claim.  Pledges sharing an
// identity are checked once.  A pledge rejected by the project does not
// fail the call, it is recorded in the report.  An error is returned when
// ctx is cancelled or a pledge identity cannot be resolved.
func (v *Verifier) CheckClaim(ctx context.Context, claim *wire.MsgTx,
	pledges []*lhproto.Pledge) (*Report, error) {

	report := &Report{
		Claim:        claim.TxHash(),
		OutputsMatch: lhproto.OutputsMatch(claim, v.project),
		Results:      make(map[chainhash.Hash]fn.Result[bool]),
	}

	var (
		ids    []chainhash.Hash
		unique []*lhproto.Pledge
		seen   = make(map[chainhash.Hash]struct{}, len(pledges))
	)
	for _, pledge := range pledges {
		id, err := lhproto.IdentityOf(pledge)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			log.Debugf("Skipping duplicate pledge %v", id)
			report.Duplicates++
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
		unique = append(unique, pledge)
	}

	// Each worker writes only its own slot.
	results := make([]fn.Result[bool], len(unique))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.maxWorkers)
	for i := range unique {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = fn.NewResult(lhproto.PledgeIncludedInClaim(
				v.project, unique[i], claim,
			))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, id := range ids {
		res := results[i]
		report.Results[id] = res

		included, err := res.Unpack()
		switch {
		case err != nil:
			log.Debugf("Pledge %v rejected: %v", id, err)
			report.Rejected = append(report.Rejected, id)

		case included:
			report.Included = append(report.Included, id)
			report.PledgedValue += unique[i].TotalInputValue

		default:
			log.Debugf("Pledge %v missing from claim %v", id,
				report.Claim)
			report.Missing = append(report.Missing, id)
		}
	}

	log.Infof("Claim %v includes %d of %d %s (%v), %d missing, "+
		"%d rejected", report.Claim, len(report.Included), len(ids),
		pickNoun(len(ids), "pledge", "pledges"), report.PledgedValue,
		len(report.Missing), len(report.Rejected))
	if !report.OutputsMatch {
		log.Warnf("Claim %v does not pay the project outputs: %v",
			report.Claim, newLogClosure(func() string {
				return spew.Sdump(claim.TxOut)
			}))
	}

	return report, nil
}
