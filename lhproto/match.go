// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lhproto

import "github.com/btcsuite/btcd/wire"

// Project is the view of a crowdfunding project needed to verify pledges
// and claims.
type Project interface {
	// Outputs returns the ordered outputs a claim must pay.
	Outputs() []*wire.TxOut

	// FastSanityCheck extracts the pledge transaction from pledge and
	// checks it against the project's rules.  It must return an Error
	// with code ErrMalformedPledge or ErrProjectMismatch when the pledge
	// cannot be reconciled with the project.
	FastSanityCheck(pledge *Pledge) (*wire.MsgTx, error)
}

// OutputsMatch returns whether candidate pays exactly the outputs of
// project, in the same order.  Extra, missing or reordered outputs all
// cause a mismatch.
func OutputsMatch(candidate *wire.MsgTx, project Project) bool {
	return outputsEqual(
		DetachOutputs(candidate.TxOut), DetachOutputs(project.Outputs()),
	)
}

func outputsEqual(a, b []DetachedOutput) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
