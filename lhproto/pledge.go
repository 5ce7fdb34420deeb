// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lhproto

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/lnd/tlv"
)

// TLV types of the pledge message.  Even types are required by every
// reader, odd types may be skipped by readers that do not know them.
const (
	typePledgeTransactions    tlv.Type = 0
	typePledgeTotalInputValue tlv.Type = 2
	typePledgeProjectID       tlv.Type = 4
	typePledgeTimestamp       tlv.Type = 6
	typePledgeOrigHash        tlv.Type = 9
	typePledgeMemo            tlv.Type = 11
	typePledgeName            tlv.Type = 13
	typePledgeContactAddress  tlv.Type = 15
)

const (
	// maxPledgeTransactions bounds the number of transactions a pledge
	// may carry.
	maxPledgeTransactions = 1000

	// MaxTransactionsSize is the largest encoded size of a pledge's
	// transactions.  They share a single TLV record, so they are bound
	// by the record size limit readers enforce.
	MaxTransactionsSize = tlv.MaxRecordSize
)

// Pledge is a contributor's commitment of funds to a project.
type Pledge struct {
	// Transactions holds serialized transactions.  The last one is the
	// pledge transaction itself, any before it are unconfirmed
	// dependencies it spends from.
	Transactions [][]byte

	// TotalInputValue is the value of the pledge's inputs as asserted by
	// the contributor.
	TotalInputValue btcutil.Amount

	// ProjectID names the project the pledge is for.  It may be empty.
	ProjectID string

	// Timestamp is when the pledge was made, at second precision.  The
	// zero time and the Unix epoch both encode as unset and decode as
	// the zero time.
	Timestamp time.Time

	// OrigHash, when set, is the identity the pledge had when it was
	// first created.  Servers set it when they re-encode a pledge, for
	// example after scrubbing private details.
	OrigHash fn.Option[chainhash.Hash]

	Memo           string
	Name           string
	ContactAddress string
}

// AddTransaction serializes tx and appends it to the pledge's transactions.
func (p *Pledge) AddTransaction(tx *wire.MsgTx) error {
	var buf bytes.Buffer
	buf.Grow(tx.SerializeSize())
	if err := tx.Serialize(&buf); err != nil {
		return err
	}
	p.Transactions = append(p.Transactions, buf.Bytes())
	return nil
}

// PledgeTx decodes and returns the pledge transaction, which is the last
// transaction carried by the pledge.
func (p *Pledge) PledgeTx() (*wire.MsgTx, error) {
	if len(p.Transactions) == 0 {
		return nil, NewError(ErrMalformedPledge,
			"pledge carries no transactions", nil)
	}

	raw := p.Transactions[len(p.Transactions)-1]
	tx := wire.NewMsgTx(wire.TxVersion)
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, NewError(ErrMalformedPledge,
			"cannot decode pledge transaction", err)
	}
	return tx, nil
}

// Encode writes the pledge to w as a TLV stream.  Pledges whose
// transactions could not be decoded again are rejected with
// ErrMalformedPledge before anything is written.
func (p *Pledge) Encode(w io.Writer) error {
	txns := p.Transactions
	if len(txns) > maxPledgeTransactions {
		str := fmt.Sprintf("pledge carries %d transactions, max is %d",
			len(txns), maxPledgeTransactions)
		return NewError(ErrMalformedPledge, str, nil)
	}
	if size := transactionsSize(txns); size > MaxTransactionsSize {
		str := fmt.Sprintf("pledge transactions encode to %d bytes, "+
			"max is %d", size, MaxTransactionsSize)
		return NewError(ErrMalformedPledge, str, nil)
	}

	value := uint64(p.TotalInputValue)
	projectID := []byte(p.ProjectID)
	memo := []byte(p.Memo)
	name := []byte(p.Name)
	contact := []byte(p.ContactAddress)

	var (
		timestamp uint64
		origHash  [32]byte
	)
	if !p.Timestamp.IsZero() {
		timestamp = uint64(p.Timestamp.Unix())
	}

	records := []tlv.Record{
		tlv.MakeDynamicRecord(
			typePledgeTransactions, &txns, func() uint64 {
				return transactionsSize(txns)
			}, transactionsEncoder, transactionsDecoder,
		),
		tlv.MakePrimitiveRecord(typePledgeTotalInputValue, &value),
		tlv.MakePrimitiveRecord(typePledgeProjectID, &projectID),
		tlv.MakePrimitiveRecord(typePledgeTimestamp, &timestamp),
	}

	p.OrigHash.WhenSome(func(h chainhash.Hash) {
		origHash = h
		records = append(records, tlv.MakePrimitiveRecord(
			typePledgeOrigHash, &origHash,
		))
	})
	if len(memo) > 0 {
		records = append(records, tlv.MakePrimitiveRecord(
			typePledgeMemo, &memo,
		))
	}
	if len(name) > 0 {
		records = append(records, tlv.MakePrimitiveRecord(
			typePledgeName, &name,
		))
	}
	if len(contact) > 0 {
		records = append(records, tlv.MakePrimitiveRecord(
			typePledgeContactAddress, &contact,
		))
	}

	stream, err := tlv.NewStream(records...)
	if err != nil {
		return err
	}
	return stream.Encode(w)
}

// Serialize returns the TLV encoding of the pledge.
func (p *Pledge) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a TLV encoded pledge from r into p, replacing its contents.
func (p *Pledge) Decode(r io.Reader) error {
	var (
		txns      [][]byte
		value     uint64
		projectID []byte
		timestamp uint64
		origHash  [32]byte
		memo      []byte
		name      []byte
		contact   []byte
	)

	stream, err := tlv.NewStream(
		tlv.MakeDynamicRecord(
			typePledgeTransactions, &txns, func() uint64 {
				return transactionsSize(txns)
			}, transactionsEncoder, transactionsDecoder,
		),
		tlv.MakePrimitiveRecord(typePledgeTotalInputValue, &value),
		tlv.MakePrimitiveRecord(typePledgeProjectID, &projectID),
		tlv.MakePrimitiveRecord(typePledgeTimestamp, &timestamp),
		tlv.MakePrimitiveRecord(typePledgeOrigHash, &origHash),
		tlv.MakePrimitiveRecord(typePledgeMemo, &memo),
		tlv.MakePrimitiveRecord(typePledgeName, &name),
		tlv.MakePrimitiveRecord(typePledgeContactAddress, &contact),
	)
	if err != nil {
		return err
	}

	parsedTypes, err := stream.DecodeWithParsedTypes(r)
	if err != nil {
		return NewError(ErrMalformedPledge, "cannot decode pledge", err)
	}

	*p = Pledge{
		Transactions:    txns,
		TotalInputValue: btcutil.Amount(value),
		ProjectID:       string(projectID),
		OrigHash:        fn.None[chainhash.Hash](),
		Memo:            string(memo),
		Name:            string(name),
		ContactAddress:  string(contact),
	}
	if timestamp != 0 {
		p.Timestamp = time.Unix(int64(timestamp), 0)
	}
	if t, ok := parsedTypes[typePledgeOrigHash]; ok && t == nil {
		p.OrigHash = fn.Some(chainhash.Hash(origHash))
	}

	return nil
}

// DeserializePledge decodes a pledge from its TLV encoding.
func DeserializePledge(raw []byte) (*Pledge, error) {
	p := &Pledge{}
	if err := p.Decode(bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return p, nil
}

// transactionsSize returns the encoded length of the transactions record.
func transactionsSize(txns [][]byte) uint64 {
	size := tlv.VarIntSize(uint64(len(txns)))
	for _, tx := range txns {
		size += tlv.VarIntSize(uint64(len(tx))) + uint64(len(tx))
	}
	return size
}

// transactionsEncoder is a custom TLV encoder for a list of raw
// transactions.  Each transaction is written as a varint length followed by
// its bytes, after a varint count.
func transactionsEncoder(w io.Writer, val interface{}, buf *[8]byte) error {
	v, ok := val.(*[][]byte)
	if !ok {
		return tlv.NewTypeForEncodingErr(val, "*[][]byte")
	}

	if err := tlv.WriteVarInt(w, uint64(len(*v)), buf); err != nil {
		return err
	}
	for _, tx := range *v {
		if err := tlv.WriteVarInt(w, uint64(len(tx)), buf); err != nil {
			return err
		}
		if _, err := w.Write(tx); err != nil {
			return err
		}
	}
	return nil
}

// transactionsDecoder is the decoding counterpart of transactionsEncoder.
func transactionsDecoder(r io.Reader, val interface{}, buf *[8]byte,
	l uint64) error {

	v, ok := val.(*[][]byte)
	if !ok {
		return tlv.NewTypeForDecodingErr(val, "*[][]byte", l, l)
	}

	lr := &io.LimitedReader{R: r, N: int64(l)}
	count, err := tlv.ReadVarInt(lr, buf)
	if err != nil {
		return err
	}
	if count > maxPledgeTransactions {
		return fmt.Errorf("pledge carries %d transactions, max is %d",
			count, maxPledgeTransactions)
	}

	txns := make([][]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		txLen, err := tlv.ReadVarInt(lr, buf)
		if err != nil {
			return err
		}
		if txLen > l {
			return fmt.Errorf("transaction %d length %d exceeds "+
				"record length %d", i, txLen, l)
		}

		tx := make([]byte, txLen)
		if _, err := io.ReadFull(lr, tx); err != nil {
			return err
		}
		txns = append(txns, tx)
	}

	if lr.N != 0 {
		return fmt.Errorf("%d trailing bytes after pledge transactions",
			lr.N)
	}

	*v = txns
	return nil
}
