// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package policy - the issuer's mint gate
//
// two interchangeable gate shapes: an admin toggle and a start time
package policy

import (
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/util"
)

// Kind - which gate shape
type Kind uint64

// gate kinds, stored as the first Varint64 of a packed gate
const (
	ToggleKind   = Kind(1)
	TimeGateKind = Kind(2)
)

// Gate - decides if minting is open at a given unix time
type Gate interface {
	Kind() Kind

	// CanMint - true if a mint request may be accepted at now
	CanMint(now uint64) bool

	// Rejection - the error returned when CanMint is false
	Rejection() error

	Pack() []byte
	String() string
}

// Toggle - admin controlled on/off switch
type Toggle struct {
	Enabled bool
}

// TimeGate - minting opens at StartTime
type TimeGate struct {
	StartTime uint64
}

// Kind - ToggleKind
func (g *Toggle) Kind() Kind { return ToggleKind }

// CanMint - ignores the time
func (g *Toggle) CanMint(now uint64) bool { return g.Enabled }

// Rejection - MintDisabled
func (g *Toggle) Rejection() error { return fault.MintDisabled }

// Pack - Varint(kind) Varint(enabled)
func (g *Toggle) Pack() []byte {
	buffer := util.ToVarint64(uint64(ToggleKind))
	enabled := uint64(0)
	if g.Enabled {
		enabled = 1
	}
	return util.AppendVarint64(buffer, enabled)
}

func (g *Toggle) String() string {
	if g.Enabled {
		return "enabled"
	}
	return "disabled"
}

// Kind - TimeGateKind
func (g *TimeGate) Kind() Kind { return TimeGateKind }

// CanMint - open from StartTime inclusive
func (g *TimeGate) CanMint(now uint64) bool { return now >= g.StartTime }

// Rejection - NotYetActive
func (g *TimeGate) Rejection() error { return fault.NotYetActive }

// Pack - Varint(kind) Varint(startTime)
func (g *TimeGate) Pack() []byte {
	buffer := util.ToVarint64(uint64(TimeGateKind))
	return util.AppendVarint64(buffer, g.StartTime)
}

func (g *TimeGate) String() string {
	return "start-time"
}

// Check - nil if g allows minting at now, otherwise its rejection
func Check(g Gate, now uint64) error {
	if g.CanMint(now) {
		return nil
	}
	return g.Rejection()
}

// Read - decode a gate from a record reader
func Read(r *util.Reader) (Gate, error) {
	kind := Kind(r.Varint64())
	value := r.Varint64()
	if !r.OK() {
		return nil, fault.InvalidGateKind
	}
	switch kind {
	case ToggleKind:
		if value > 1 {
			return nil, fault.InvalidGateKind
		}
		return &Toggle{Enabled: 1 == value}, nil
	case TimeGateKind:
		return &TimeGate{StartTime: value}, nil
	default:
		return nil, fault.InvalidGateKind
	}
}

// Unpack - decode a packed gate
func Unpack(buffer []byte) (Gate, error) {
	r := util.NewReader(buffer)
	g, err := Read(r)
	if nil != err {
		return nil, err
	}
	if !r.AtEnd() {
		return nil, fault.InvalidGateKind
	}
	return g, nil
}

// New - gate from configuration text: "toggle" or "start-time"
func New(kind string, enabled bool, startTime uint64) (Gate, error) {
	switch kind {
	case "toggle", "":
		return &Toggle{Enabled: enabled}, nil
	case "start-time":
		return &TimeGate{StartTime: startTime}, nil
	default:
		return nil, fault.InvalidGateKind
	}
}
