// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lhproto

import "github.com/btcsuite/btcd/wire"

// PledgeIncludedInClaim returns whether every input of the pledge's
// transaction is also spent by claim.  The pledge transaction is obtained
// through project.FastSanityCheck and any error it returns is passed back
// unchanged, so a malformed pledge is never reported as simply missing.
//
// Inputs are counted with multiplicity: an input listed n times by the
// pledge must appear at least n times in the claim.
func PledgeIncludedInClaim(project Project, pledge *Pledge,
	claim *wire.MsgTx) (bool, error) {

	tx, err := project.FastSanityCheck(pledge)
	if err != nil {
		return false, err
	}

	missing := MissingInputs(tx, claim)
	if len(missing) != 0 {
		log.Debugf("Claim %v is missing %d of %d inputs of pledge "+
			"tx %v", claim.TxHash(), len(missing), len(tx.TxIn),
			tx.TxHash())
		return false, nil
	}

	return true, nil
}

// MissingInputs returns the inputs of pledgeTx not covered by the inputs of
// claim.  An input appearing more often in pledgeTx than in claim is
// returned once per uncovered occurrence.  The result is in pledgeTx order
// and empty when the pledge is fully included.
func MissingInputs(pledgeTx, claim *wire.MsgTx) []DetachedInput {
	available := make(map[DetachedInput]int, len(claim.TxIn))
	for _, in := range DetachInputs(claim) {
		available[in]++
	}

	var missing []DetachedInput
	for _, in := range DetachInputs(pledgeTx) {
		if available[in] == 0 {
			missing = append(missing, in)
			continue
		}
		available[in]--
	}
	return missing
}
