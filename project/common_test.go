// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package project

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/lighthouse/lhproto"
	"github.com/stretchr/testify/require"
)

// p2pkhScript returns a new key and the pay-to-pubkey-hash script locking
// funds to it.
func p2pkhScript(t *testing.T) (*btcec.PrivateKey, []byte) {
	t.Helper()

	key, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	addr, err := btcutil.NewAddressPubKeyHash(
		btcutil.Hash160(key.PubKey().SerializeCompressed()),
		&chaincfg.RegressionNetParams,
	)
	require.NoError(t, err)

	pkScript, err := txscript.PayToAddrScript(addr)
	require.NoError(t, err)

	return key, pkScript
}

// testProject creates a project paying two fresh destinations.
func testProject(t *testing.T) *Project {
	t.Helper()

	_, scriptA := p2pkhScript(t)
	_, scriptB := p2pkhScript(t)

	p, err := New(&Config{
		ID:    "roof",
		Title: "Fix the roof",
		Outputs: []*wire.TxOut{
			wire.NewTxOut(400_000, scriptA),
			wire.NewTxOut(100_000, scriptB),
		},
		MinPledge: 10_000,
	})
	require.NoError(t, err)

	return p
}

// signedPledge returns a pledge spending numInputs outputs of a fresh
// key, paying outs and signed with hashType.
func signedPledge(t *testing.T, outs []*wire.TxOut, numInputs int,
	hashType txscript.SigHashType) *lhproto.Pledge {

	t.Helper()

	key, pkScript := p2pkhScript(t)

	tx := wire.NewMsgTx(wire.TxVersion)
	for i := 0; i < numInputs; i++ {
		prevHash := chainhash.DoubleHashH(pkScript)
		tx.AddTxIn(wire.NewTxIn(
			wire.NewOutPoint(&prevHash, uint32(i)), nil, nil,
		))
	}
	for _, out := range outs {
		tx.AddTxOut(out)
	}

	for i := range tx.TxIn {
		sigScript, err := txscript.SignatureScript(
			tx, i, pkScript, hashType, key, true,
		)
		require.NoError(t, err)
		tx.TxIn[i].SignatureScript = sigScript
	}

	pledge := &lhproto.Pledge{
		TotalInputValue: 50_000,
		ProjectID:       "roof",
	}
	require.NoError(t, pledge.AddTransaction(tx))

	return pledge
}
