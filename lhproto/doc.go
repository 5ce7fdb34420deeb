// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package lhproto implements the verification core of the lighthouse
crowdfunding protocol.

A project declares an ordered list of outputs that must be paid for it to be
funded.  Contributors send pledges: transactions paying exactly those outputs
but funded only by the contributor's own inputs, each signed with
SIGHASH_ALL|SIGHASH_ANYONECANPAY.  Once enough pledges exist their inputs are
merged into a single claim transaction which pays the project.

The package answers three questions without consulting any third party:

  - does a transaction pay exactly the outputs a project asks for
    (OutputsMatch)
  - were all of a pledge's inputs spent by a claim (PledgeIncludedInClaim)
  - what is the stable name of a pledge (IdentityOf)

Comparisons are made over detached copies of inputs and outputs.  A detached
copy is a plain comparable value holding only what the transaction commits
to, so equality never depends on the transaction an input or output came
from.

Inclusion is checked with multiset semantics: a pledge listing the same input
twice is only included in a claim that also lists it twice.  Since a valid
transaction can never spend an outpoint twice such a pledge is never reported
as included.
*/
package lhproto
