// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package project provides the crowdfunding project definition used when
// verifying pledges and claims.
package project

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcwallet/wallet/txrules"
	"github.com/btcsuite/lighthouse/lhproto"
)

// pledgeSigHashType is the hash type every pledge input must be signed
// with, so that other inputs can be added to the transaction without
// invalidating the signature.
const pledgeSigHashType = txscript.SigHashAll | txscript.SigHashAnyOneCanPay

// Config describes a project to create with New.
type Config struct {
	// ID is the project identifier carried by its pledges.
	ID string

	// Title is the human readable project name.
	Title string

	// Outputs are the outputs a claim must pay, in order.
	Outputs []*wire.TxOut

	// MinPledge is the smallest total input value a pledge may assert.
	MinPledge btcutil.Amount

	// ServerName is the host of the project's pledge server, if any.
	ServerName string

	// RelayFeePerKb is used to decide whether an output is dust.  The
	// default relay fee is used when zero.
	RelayFeePerKb btcutil.Amount
}

// Project is a crowdfunding project.  It is immutable once created and
// safe for concurrent use.
type Project struct {
	id         string
	title      string
	outputs    []*wire.TxOut
	goal       btcutil.Amount
	minPledge  btcutil.Amount
	serverName string
}

// Enforce Project implements the interface needed by the verification core.
var _ lhproto.Project = (*Project)(nil)

// New validates cfg and returns the project it describes.
func New(cfg *Config) (*Project, error) {
	if cfg.ID == "" {
		return nil, lhproto.NewError(lhproto.ErrInvalidProject,
			"project has no ID", nil)
	}
	if len(cfg.Outputs) == 0 {
		return nil, lhproto.NewError(lhproto.ErrInvalidProject,
			"project has no outputs", nil)
	}

	relayFee := cfg.RelayFeePerKb
	if relayFee == 0 {
		relayFee = txrules.DefaultRelayFeePerKb
	}

	var goal btcutil.Amount
	outputs := make([]*wire.TxOut, 0, len(cfg.Outputs))
	for i, out := range cfg.Outputs {
		if out.Value <= 0 || out.Value > btcutil.MaxSatoshi {
			str := fmt.Sprintf("output %d has invalid value %d", i,
				out.Value)
			return nil, lhproto.NewError(
				lhproto.ErrInvalidProject, str, nil,
			)
		}
		if txrules.IsDustOutput(out, relayFee) {
			str := fmt.Sprintf("output %d of %v is dust", i,
				btcutil.Amount(out.Value))
			return nil, lhproto.NewError(
				lhproto.ErrInvalidProject, str, nil,
			)
		}

		goal += btcutil.Amount(out.Value)
		if goal > btcutil.MaxSatoshi {
			return nil, lhproto.NewError(lhproto.ErrInvalidProject,
				"project goal exceeds the coin supply", nil)
		}

		outputs = append(outputs, copyTxOut(out))
	}

	if cfg.MinPledge < 0 || cfg.MinPledge > goal {
		str := fmt.Sprintf("minimum pledge %v outside of [0, %v]",
			cfg.MinPledge, goal)
		return nil, lhproto.NewError(lhproto.ErrInvalidProject, str, nil)
	}

	return &Project{
		id:         cfg.ID,
		title:      cfg.Title,
		outputs:    outputs,
		goal:       goal,
		minPledge:  cfg.MinPledge,
		serverName: cfg.ServerName,
	}, nil
}

// ID returns the project identifier.
func (p *Project) ID() string {
	return p.id
}

// Title returns the human readable project name.
func (p *Project) Title() string {
	return p.title
}

// Goal returns the total value of the project outputs.
func (p *Project) Goal() btcutil.Amount {
	return p.goal
}

// MinPledge returns the smallest accepted pledge value.
func (p *Project) MinPledge() btcutil.Amount {
	return p.minPledge
}

// Outputs returns a copy of the outputs a claim must pay.
func (p *Project) Outputs() []*wire.TxOut {
	outputs := make([]*wire.TxOut, 0, len(p.outputs))
	for _, out := range p.outputs {
		outputs = append(outputs, copyTxOut(out))
	}
	return outputs
}

// ServerPath returns the URL of the project on its pledge server, or false
// when the project has no server.
func (p *Project) ServerPath() (string, bool) {
	if p.serverName == "" {
		return "", false
	}
	return lhproto.MakeServerPath(p.serverName, p.id), true
}

// String returns the project title, or its ID when untitled.
func (p *Project) String() string {
	if p.title != "" {
		return p.title
	}
	return p.id
}

func copyTxOut(out *wire.TxOut) *wire.TxOut {
	pkScript := make([]byte, len(out.PkScript))
	copy(pkScript, out.PkScript)
	return wire.NewTxOut(out.Value, pkScript)
}
