// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lhproto

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// IdentityOf returns the stable name of a pledge.  A pledge carrying an
// original hash is named by that hash, whatever its other contents.
// Otherwise the name is the double SHA-256 of the serialized pledge, the
// same digest used for transaction ids.
//
// An error is only returned when the pledge cannot be serialized.
func IdentityOf(pledge *Pledge) (chainhash.Hash, error) {
	if pledge.OrigHash.IsSome() {
		return pledge.OrigHash.UnwrapOr(chainhash.Hash{}), nil
	}

	raw, err := pledge.Serialize()
	if err != nil {
		return chainhash.Hash{}, NewError(ErrMalformedPledge,
			"cannot serialize pledge", err)
	}
	return chainhash.DoubleHashH(raw), nil
}

// IdentityOfBytes returns the stable name of a serialized pledge.  The
// digest is taken over raw exactly as given, so it matches IdentityOf only
// when raw is the canonical encoding.
func IdentityOfBytes(raw []byte) (chainhash.Hash, error) {
	pledge, err := DeserializePledge(raw)
	if err != nil {
		return chainhash.Hash{}, err
	}
	if pledge.OrigHash.IsSome() {
		return pledge.OrigHash.UnwrapOr(chainhash.Hash{}), nil
	}
	return chainhash.DoubleHashH(raw), nil
}
