// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package netparams

import "github.com/btcsuite/btcd/chaincfg"

// Params is used to group parameters for the networks projects can be
// funded on along with the name used to select them.
type Params struct {
	*chaincfg.Params
	Name string
}

// MainNetParams contains parameters for projects on the main network
// (wire.MainNet).
var MainNetParams = Params{
	Params: &chaincfg.MainNetParams,
	Name:   "mainnet",
}

// TestNet3Params contains parameters for projects on the test network
// (version 3) (wire.TestNet3).
var TestNet3Params = Params{
	Params: &chaincfg.TestNet3Params,
	Name:   "testnet",
}

// SimNetParams contains parameters for projects on the simulation test
// network (wire.SimNet).
var SimNetParams = Params{
	Params: &chaincfg.SimNetParams,
	Name:   "simnet",
}

// RegTestParams contains parameters for projects on the regression test
// network (wire.TestNet).
var RegTestParams = Params{
	Params: &chaincfg.RegressionNetParams,
	Name:   "regtest",
}
