// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lhproto

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

var (
	hashH1 = chainhash.DoubleHashH([]byte("H1"))
	hashH2 = chainhash.DoubleHashH([]byte("H2"))
	hashH3 = chainhash.DoubleHashH([]byte("H3"))

	scriptA = []byte{0x00, 0x14, 0xaa, 0xaa, 0xaa, 0xaa}
	scriptB = []byte{0x00, 0x14, 0xbb, 0xbb, 0xbb, 0xbb}
)

// testProject is a Project whose sanity check only decodes the pledge
// transaction, or fails with a fixed error.
type testProject struct {
	outputs []*wire.TxOut
	err     error
}

func (p *testProject) Outputs() []*wire.TxOut {
	return p.outputs
}

func (p *testProject) FastSanityCheck(pledge *Pledge) (*wire.MsgTx, error) {
	if p.err != nil {
		return nil, p.err
	}
	return pledge.PledgeTx()
}

// txIn returns an input spending the given outpoint with a signature script
// derived from it.
func txIn(hash chainhash.Hash, index uint32) *wire.TxIn {
	op := wire.NewOutPoint(&hash, index)
	sigScript := append([]byte{0x01}, hash[:4]...)
	return wire.NewTxIn(op, sigScript, nil)
}

// newTx builds a transaction from inputs and outputs.
func newTx(ins []*wire.TxIn, outs []*wire.TxOut) *wire.MsgTx {
	tx := wire.NewMsgTx(wire.TxVersion)
	for _, in := range ins {
		tx.AddTxIn(in)
	}
	for _, out := range outs {
		tx.AddTxOut(out)
	}
	return tx
}

// newPledge wraps tx in a pledge.
func newPledge(t *testing.T, tx *wire.MsgTx) *Pledge {
	t.Helper()

	p := &Pledge{TotalInputValue: 1000, ProjectID: "test"}
	require.NoError(t, p.AddTransaction(tx))
	return p
}
