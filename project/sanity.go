// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package project

import (
	"fmt"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/lighthouse/lhproto"
)

// FastSanityCheck extracts the pledge transaction from pledge and checks
// that it could take part in a claim of the project: it pays exactly the
// project outputs, every input is signed so that other inputs may be added,
// and the asserted value reaches the minimum pledge.  Signatures are
// inspected for their hash type only, they are not verified.
func (p *Project) FastSanityCheck(pledge *lhproto.Pledge) (*wire.MsgTx,
	error) {

	if pledge.ProjectID != "" && pledge.ProjectID != p.id {
		str := fmt.Sprintf("pledge is for project %q, not %q",
			pledge.ProjectID, p.id)
		return nil, lhproto.NewError(lhproto.ErrProjectMismatch, str, nil)
	}

	tx, err := pledge.PledgeTx()
	if err != nil {
		return nil, err
	}

	if len(tx.TxIn) == 0 {
		return nil, lhproto.NewError(lhproto.ErrMalformedPledge,
			"pledge transaction has no inputs", nil)
	}

	if len(tx.TxOut) != len(p.outputs) {
		str := fmt.Sprintf("pledge transaction has %d outputs, "+
			"project has %d", len(tx.TxOut), len(p.outputs))
		return nil, lhproto.NewError(lhproto.ErrProjectMismatch, str, nil)
	}
	if !lhproto.OutputsMatch(tx, p) {
		return nil, lhproto.NewError(lhproto.ErrProjectMismatch,
			"pledge transaction outputs differ from project", nil)
	}

	for i, txIn := range tx.TxIn {
		if err := checkSigHashType(txIn); err != nil {
			str := fmt.Sprintf("input %d (%v)", i,
				txIn.PreviousOutPoint)
			return nil, lhproto.NewError(
				lhproto.ErrMalformedPledge, str, err,
			)
		}
	}

	if pledge.TotalInputValue < p.minPledge {
		str := fmt.Sprintf("pledge of %v is below the minimum of %v",
			pledge.TotalInputValue, p.minPledge)
		return nil, lhproto.NewError(lhproto.ErrProjectMismatch, str, nil)
	}

	log.Tracef("Pledge tx %v passed sanity checks for project %v",
		tx.TxHash(), p.id)

	return tx, nil
}

// checkSigHashType returns an error unless the signature unlocking txIn
// commits with pledgeSigHashType.  The signature is the first non-empty
// witness item for inputs with a witness, otherwise the first non-empty
// push of the signature script.  Empty items are skipped so the
// CHECKMULTISIG dummy element is not taken for a signature.
func checkSigHashType(txIn *wire.TxIn) error {
	var sig []byte
	switch {
	// A lone 64 byte witness item is a taproot key spend signature
	// using the default hash type, which commits to all inputs.
	case len(txIn.Witness) == 1 && len(txIn.Witness[0]) == 64:
		return fmt.Errorf("taproot signature uses the default hash type")

	case len(txIn.Witness) > 0:
		sig = firstNonEmpty(txIn.Witness)

	case len(txIn.SignatureScript) > 0:
		pushes, err := txscript.PushedData(txIn.SignatureScript)
		if err != nil {
			return err
		}
		sig = firstNonEmpty(pushes)

	default:
		return fmt.Errorf("input is not signed")
	}

	if len(sig) == 0 {
		return fmt.Errorf("no signature found")
	}

	hashType := txscript.SigHashType(sig[len(sig)-1])
	if hashType != pledgeSigHashType {
		return fmt.Errorf("signature hash type %#x, want %#x",
			uint32(hashType), uint32(pledgeSigHashType))
	}
	return nil
}

// firstNonEmpty returns the first item of items that is not empty.
func firstNonEmpty(items [][]byte) []byte {
	for _, item := range items {
		if len(item) > 0 {
			return item
		}
	}
	return nil
}
