// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cfgutil

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// OutputFlag describes a transaction output as address:amount and
// implements the flags.Marshaler and Unmarshaler interfaces.  The address
// is kept encoded since the network is only known once all flags are
// parsed.
type OutputFlag struct {
	Address string
	Amount  btcutil.Amount
}

// MarshalFlag satisfies the flags.Marshaler interface.
func (o *OutputFlag) MarshalFlag() (string, error) {
	return fmt.Sprintf("%s:%v", o.Address, o.Amount.ToBTC()), nil
}

// UnmarshalFlag satisfies the flags.Unmarshaler interface.
func (o *OutputFlag) UnmarshalFlag(value string) error {
	i := strings.LastIndex(value, ":")
	if i <= 0 || i == len(value)-1 {
		return fmt.Errorf("output %q is not of the form "+
			"address:amount", value)
	}

	amount, err := ParseAmount(value[i+1:])
	if err != nil {
		return fmt.Errorf("output %q: %w", value, err)
	}

	o.Address = value[:i]
	o.Amount = amount
	return nil
}

// TxOut decodes the address for the given network and returns the output
// paying it.
func (o *OutputFlag) TxOut(params *chaincfg.Params) (*wire.TxOut, error) {
	addr, err := btcutil.DecodeAddress(o.Address, params)
	if err != nil {
		return nil, fmt.Errorf("invalid address %q: %w", o.Address, err)
	}
	if !addr.IsForNet(params) {
		return nil, fmt.Errorf("address %q is not for %s", o.Address,
			params.Name)
	}

	pkScript, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return nil, err
	}
	return wire.NewTxOut(int64(o.Amount), pkScript), nil
}
