// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lhproto

import (
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/require"
)

// TestPledgeEncoding checks a fully populated pledge survives encoding and
// that the pledge transaction is the last one carried.
func TestPledgeEncoding(t *testing.T) {
	t.Parallel()

	dep := newTx([]*wire.TxIn{txIn(hashH3, 0)}, []*wire.TxOut{
		wire.NewTxOut(2000, scriptB),
	})
	pledgeTx := newTx([]*wire.TxIn{txIn(dep.TxHash(), 0)}, []*wire.TxOut{
		wire.NewTxOut(500, scriptA),
	})

	p := &Pledge{
		TotalInputValue: btcutil.Amount(2000),
		ProjectID:       "roof",
		Timestamp:       time.Unix(1700000000, 0),
		OrigHash:        fn.Some(hashH1),
		Memo:            "memo",
		Name:            "alice",
		ContactAddress:  "alice@example.com",
	}
	require.NoError(t, p.AddTransaction(dep))
	require.NoError(t, p.AddTransaction(pledgeTx))

	raw, err := p.Serialize()
	require.NoError(t, err)

	decoded, err := DeserializePledge(raw)
	require.NoError(t, err)
	require.Equal(t, p.Transactions, decoded.Transactions)
	require.Equal(t, p.TotalInputValue, decoded.TotalInputValue)
	require.Equal(t, p.ProjectID, decoded.ProjectID)
	require.True(t, p.Timestamp.Equal(decoded.Timestamp))
	require.Equal(t, p.Memo, decoded.Memo)
	require.Equal(t, p.Name, decoded.Name)
	require.Equal(t, p.ContactAddress, decoded.ContactAddress)
	require.Equal(t, hashH1, decoded.OrigHash.UnwrapOr(chainhash.Hash{}))

	tx, err := decoded.PledgeTx()
	require.NoError(t, err)
	require.Equal(t, pledgeTx.TxHash(), tx.TxHash())
}

// TestPledgeOptionalFields checks absent optional fields decode as absent.
func TestPledgeOptionalFields(t *testing.T) {
	t.Parallel()

	p := newPledge(t, newTx([]*wire.TxIn{txIn(hashH1, 0)}, nil))

	raw, err := p.Serialize()
	require.NoError(t, err)

	decoded, err := DeserializePledge(raw)
	require.NoError(t, err)
	require.True(t, decoded.OrigHash.IsNone())
	require.True(t, decoded.Timestamp.IsZero())
	require.Empty(t, decoded.Memo)
	require.Empty(t, decoded.Name)
	require.Empty(t, decoded.ContactAddress)
}

// TestPledgeMalformed checks decoding failures are reported as malformed
// pledges.
func TestPledgeMalformed(t *testing.T) {
	t.Parallel()

	p := newPledge(t, newTx([]*wire.TxIn{txIn(hashH1, 0)}, nil))
	raw, err := p.Serialize()
	require.NoError(t, err)

	_, err = DeserializePledge(raw[:len(raw)-3])
	require.True(t, IsErrorCode(err, ErrMalformedPledge))

	_, err = (&Pledge{}).PledgeTx()
	require.True(t, IsErrorCode(err, ErrMalformedPledge))

	garbage := &Pledge{Transactions: [][]byte{{0x01, 0x02}}}
	_, err = garbage.PledgeTx()
	require.True(t, IsErrorCode(err, ErrMalformedPledge))
}

// TestPledgeTransactionsSizeLimit checks pledges at the transactions size
// limit round trip and larger ones are refused when encoding.
func TestPledgeTransactionsSizeLimit(t *testing.T) {
	t.Parallel()

	// One count byte and a three byte length prefix precede the
	// transaction.
	const atLimit = MaxTransactionsSize - 4

	testCases := []struct {
		name    string
		txLen   int
		encodes bool
	}{
		{name: "at limit", txLen: atLimit, encodes: true},
		{name: "above limit", txLen: atLimit + 1},
		{name: "well above limit", txLen: 70_000},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := &Pledge{
				Transactions:    [][]byte{make([]byte, tc.txLen)},
				TotalInputValue: 1000,
			}

			raw, err := p.Serialize()
			if !tc.encodes {
				require.True(t, IsErrorCode(err, ErrMalformedPledge))
				require.Nil(t, raw)

				_, err = IdentityOf(p)
				require.True(t, IsErrorCode(err, ErrMalformedPledge))
				return
			}
			require.NoError(t, err)
			require.EqualValues(
				t, MaxTransactionsSize, transactionsSize(p.Transactions),
			)

			decoded, err := DeserializePledge(raw)
			require.NoError(t, err)
			require.Equal(t, p.Transactions, decoded.Transactions)

			id, err := IdentityOf(p)
			require.NoError(t, err)
			idFromBytes, err := IdentityOfBytes(raw)
			require.NoError(t, err)
			require.Equal(t, id, idFromBytes)
		})
	}
}

// TestPledgeTooManyTransactions checks encoding refuses more transactions
// than a reader accepts.
func TestPledgeTooManyTransactions(t *testing.T) {
	t.Parallel()

	p := &Pledge{
		Transactions: make([][]byte, maxPledgeTransactions+1),
	}
	_, err := p.Serialize()
	require.True(t, IsErrorCode(err, ErrMalformedPledge))
}

// TestPledgeEpochTimestamp checks a timestamp at the Unix epoch decodes as
// unset.
func TestPledgeEpochTimestamp(t *testing.T) {
	t.Parallel()

	p := newPledge(t, newTx([]*wire.TxIn{txIn(hashH1, 0)}, nil))
	p.Timestamp = time.Unix(0, 0)

	raw, err := p.Serialize()
	require.NoError(t, err)

	decoded, err := DeserializePledge(raw)
	require.NoError(t, err)
	require.True(t, decoded.Timestamp.IsZero())
}
