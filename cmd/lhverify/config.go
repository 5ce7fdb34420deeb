// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/lighthouse/internal/cfgutil"
	"github.com/btcsuite/lighthouse/netparams"
	"github.com/btcsuite/lighthouse/project"
	"github.com/jessevdk/go-flags"
)

const (
	defaultConfigFilename = "lhverify.conf"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "lhverify.log"
)

var (
	lhverifyHomeDir   = btcutil.AppDataDir("lhverify", false)
	defaultConfigFile = filepath.Join(lhverifyHomeDir, defaultConfigFilename)
	defaultLogDir     = filepath.Join(lhverifyHomeDir, defaultLogDirname)
)

type config struct {
	// General application behavior
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	TestNet3   bool   `long:"testnet" description:"Projects are funded on the test network (default mainnet)"`
	SimNet     bool   `long:"simnet" description:"Projects are funded on the simulation test network (default mainnet)"`
	RegTest    bool   `long:"regtest" description:"Projects are funded on the regression test network (default mainnet)"`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	LogDir     string `long:"logdir" description:"Directory to log output."`

	// Project definition
	ProjectID string               `long:"projectid" description:"ID of the project being claimed"`
	Title     string               `long:"title" description:"Title of the project"`
	Outputs   []cfgutil.OutputFlag `long:"output" description:"Project output as address:amount; repeat in the order the claim pays them"`
	MinPledge *cfgutil.AmountFlag  `long:"minpledge" description:"Smallest accepted pledge, in BTC or with a sat suffix"`

	// Claim checking
	ClaimFile   string   `long:"claim" description:"File holding the hex encoded claim transaction"`
	PledgeFiles []string `long:"pledge" description:"File holding a serialized pledge; may be repeated"`
	Workers     int      `long:"workers" description:"Number of pledges checked concurrently"`

	activeNet *netparams.Params
	outputs   []*wire.TxOut
}

// loadConfig initializes and parses the config using a config file and
// command line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
func loadConfig() (*config, error) {
	cfg := config{
		ConfigFile: defaultConfigFile,
		DebugLevel: defaultLogLevel,
		LogDir:     defaultLogDir,
		MinPledge:  cfgutil.NewAmountFlag(0),
		Workers:    runtime.NumCPU(),
	}

	// Pre-parse the command line options to see if an alternative config
	// file was specified.
	preCfg := cfg
	preParser := flags.NewParser(&preCfg, flags.Default)
	if _, err := preParser.Parse(); err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			preParser.WriteHelp(os.Stderr)
		}
		return nil, err
	}

	// Load additional config from file.
	parser := flags.NewParser(&cfg, flags.Default)
	configFileExists, err := cfgutil.FileExists(preCfg.ConfigFile)
	if err != nil {
		return nil, err
	}
	if configFileExists {
		err := flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			parser.WriteHelp(os.Stderr)
			return nil, err
		}
	}

	// Parse command line options again to ensure they take precedence.
	if _, err := parser.Parse(); err != nil {
		parser.WriteHelp(os.Stderr)
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, err
	}

	return &cfg, nil
}

// validate checks option consistency and resolves the network and project
// outputs.
func (cfg *config) validate() error {
	numNets := 0
	cfg.activeNet = &netparams.MainNetParams
	if cfg.TestNet3 {
		numNets++
		cfg.activeNet = &netparams.TestNet3Params
	}
	if cfg.SimNet {
		numNets++
		cfg.activeNet = &netparams.SimNetParams
	}
	if cfg.RegTest {
		numNets++
		cfg.activeNet = &netparams.RegTestParams
	}
	if numNets > 1 {
		return fmt.Errorf("the testnet, simnet and regtest params " +
			"can't be used together -- choose one")
	}

	if cfg.ClaimFile == "" {
		return fmt.Errorf("a claim transaction file is required")
	}
	if len(cfg.PledgeFiles) == 0 {
		return fmt.Errorf("at least one pledge file is required")
	}
	if len(cfg.Outputs) == 0 {
		return fmt.Errorf("at least one project output is required")
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d",
			cfg.Workers)
	}

	cfg.outputs = make([]*wire.TxOut, 0, len(cfg.Outputs))
	for i := range cfg.Outputs {
		txOut, err := cfg.Outputs[i].TxOut(cfg.activeNet.Params)
		if err != nil {
			return err
		}
		cfg.outputs = append(cfg.outputs, txOut)
	}

	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)
	cfg.LogDir = filepath.Join(cfg.LogDir, cfg.activeNet.Name)

	return nil
}

// projectConfig returns the project described by the options.
func (cfg *config) projectConfig() *project.Config {
	return &project.Config{
		ID:        cfg.ProjectID,
		Title:     cfg.Title,
		Outputs:   cfg.outputs,
		MinPledge: cfg.MinPledge.Amount,
	}
}

// cleanAndExpandPath expands environement variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if len(path) > 0 && path[0] == '~' {
		homeDir := filepath.Dir(lhverifyHomeDir)
		path = filepath.Join(homeDir, path[1:])
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}
