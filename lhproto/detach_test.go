// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lhproto

import (
	"testing"

	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

// TestDetachInvariance checks that structural equality does not depend on
// the transaction holding an input or output, nor on its position.
func TestDetachInvariance(t *testing.T) {
	t.Parallel()

	in := txIn(hashH1, 0)
	out := wire.NewTxOut(500, scriptA)

	tx1 := newTx([]*wire.TxIn{in}, []*wire.TxOut{out})
	tx2 := newTx(
		[]*wire.TxIn{txIn(hashH2, 1), txIn(hashH1, 0)},
		[]*wire.TxOut{wire.NewTxOut(1, scriptB), wire.NewTxOut(500, scriptA)},
	)

	require.Equal(t, DetachInput(in), DetachInput(tx1.TxIn[0]))
	require.Equal(t, DetachInput(tx1.TxIn[0]), DetachInput(tx2.TxIn[1]))
	require.Equal(t, DetachOutput(out), DetachOutput(tx2.TxOut[1]))
	require.NotEqual(t, DetachInput(tx2.TxIn[0]), DetachInput(tx2.TxIn[1]))

	// The sequence number is not part of the structure.
	seq := txIn(hashH1, 0)
	seq.Sequence = 0
	require.Equal(t, DetachInput(in), DetachInput(seq))
}

// TestDetachUnlockingData checks that inputs spending the same outpoint
// with different unlocking data are not equal.
func TestDetachUnlockingData(t *testing.T) {
	t.Parallel()

	base := txIn(hashH1, 0)

	otherSig := txIn(hashH1, 0)
	otherSig.SignatureScript = []byte{0x02}

	withWitness := txIn(hashH1, 0)
	withWitness.Witness = wire.TxWitness{{0x30, 0x01}, {0x02}}

	splitWitness := txIn(hashH1, 0)
	splitWitness.Witness = wire.TxWitness{{0x30}, {0x01, 0x02}}

	emptyWitness := txIn(hashH1, 0)
	emptyWitness.Witness = wire.TxWitness{}

	require.NotEqual(t, DetachInput(base), DetachInput(otherSig))
	require.NotEqual(t, DetachInput(base), DetachInput(withWitness))
	require.NotEqual(t, DetachInput(withWitness), DetachInput(splitWitness))
	require.Equal(t, DetachInput(base), DetachInput(emptyWitness))
}

// TestDetachCopies checks that detached records do not alias the source
// transaction.
func TestDetachCopies(t *testing.T) {
	t.Parallel()

	in := txIn(hashH1, 0)
	out := wire.NewTxOut(500, []byte{0x51})

	dIn := DetachInput(in)
	dOut := DetachOutput(out)

	in.SignatureScript[0] = 0xff
	in.PreviousOutPoint.Index = 7
	out.PkScript[0] = 0x00
	out.Value = 1

	require.Equal(t, uint32(0), dIn.PreviousOutPoint.Index)
	require.Equal(t, byte(0x01), dIn.SignatureScript[0])
	require.Equal(t, DetachedOutput{Value: 500, PkScript: "\x51"}, dOut)
}
