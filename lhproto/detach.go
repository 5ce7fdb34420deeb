// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lhproto

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/wire"
)

// DetachedInput is a value copy of a transaction input holding only the
// outpoint it spends and the data unlocking it.  Two inputs are structurally
// equal when their DetachedInputs compare equal with ==.
//
// The sequence number is not part of the record.
type DetachedInput struct {
	PreviousOutPoint wire.OutPoint

	// SignatureScript and Witness hold raw bytes.  They are strings so
	// the record stays comparable and usable as a map key.
	SignatureScript string
	Witness         string
}

// String returns the outpoint spent by the input.
func (in DetachedInput) String() string {
	return in.PreviousOutPoint.String()
}

// DetachedOutput is a value copy of a transaction output holding only its
// amount and locking script.
type DetachedOutput struct {
	Value    int64
	PkScript string
}

// String returns a short human readable form of the output.
func (out DetachedOutput) String() string {
	return fmt.Sprintf("%d:%x", out.Value, out.PkScript)
}

// DetachInput returns the detached copy of txIn.
func DetachInput(txIn *wire.TxIn) DetachedInput {
	return DetachedInput{
		PreviousOutPoint: txIn.PreviousOutPoint,
		SignatureScript:  string(txIn.SignatureScript),
		Witness:          serializeWitness(txIn.Witness),
	}
}

// DetachOutput returns the detached copy of txOut.
func DetachOutput(txOut *wire.TxOut) DetachedOutput {
	return DetachedOutput{
		Value:    txOut.Value,
		PkScript: string(txOut.PkScript),
	}
}

// DetachInputs returns the detached copies of every input of tx in order.
func DetachInputs(tx *wire.MsgTx) []DetachedInput {
	ins := make([]DetachedInput, 0, len(tx.TxIn))
	for _, txIn := range tx.TxIn {
		ins = append(ins, DetachInput(txIn))
	}
	return ins
}

// DetachOutputs returns the detached copies of outs in order.
func DetachOutputs(outs []*wire.TxOut) []DetachedOutput {
	detached := make([]DetachedOutput, 0, len(outs))
	for _, txOut := range outs {
		detached = append(detached, DetachOutput(txOut))
	}
	return detached
}

// serializeWitness flattens a witness stack into its wire encoding.  An
// empty stack maps to the empty string so inputs without witness data from
// different sources still compare equal.
func serializeWitness(witness wire.TxWitness) string {
	if len(witness) == 0 {
		return ""
	}

	// Writes to a bytes.Buffer cannot fail.
	var buf bytes.Buffer
	_ = wire.WriteVarInt(&buf, 0, uint64(len(witness)))
	for _, item := range witness {
		_ = wire.WriteVarBytes(&buf, 0, item)
	}
	return buf.String()
}
