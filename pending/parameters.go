// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pending

import (
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/stateinit"
	"github.com/bitmark-inc/mintauth/util"
)

// code identification
const (
	CodeName    = "pending-issuance"
	CodeVersion = 1
)

// BouncePolicy - what a rejected mint request does to the instance
type BouncePolicy uint64

// bounce policies
const (
	// RefundOnly - the instance stays minted, value goes back to the owner
	RefundOnly = BouncePolicy(1)

	// ResetForRetry - the instance returns to awaiting mint with its
	// content restored, value goes back to the owner
	ResetForRetry = BouncePolicy(2)
)

// DefaultGasReserve - value kept by the instance when forwarding
const DefaultGasReserve = 15 * coins.Unit / 100

// Parameters - code template parameters
type Parameters struct {
	BouncePolicy BouncePolicy `json:"bouncePolicy"`
	GasReserve   coins.Amount `json:"gasReserve"`
}

// ParseBouncePolicy - from configuration text
func ParseBouncePolicy(s string) (BouncePolicy, error) {
	switch s {
	case "refund-only", "":
		return RefundOnly, nil
	case "reset-for-retry":
		return ResetForRetry, nil
	default:
		return 0, fault.InvalidBouncePolicy
	}
}

func (p BouncePolicy) String() string {
	switch p {
	case RefundOnly:
		return "refund-only"
	case ResetForRetry:
		return "reset-for-retry"
	default:
		return "invalid"
	}
}

// NewCode - code template for the given parameters
func NewCode(p Parameters) (stateinit.Code, error) {
	if RefundOnly != p.BouncePolicy && ResetForRetry != p.BouncePolicy {
		return stateinit.Code{}, fault.InvalidBouncePolicy
	}
	return stateinit.Code{
		Name:       CodeName,
		Version:    CodeVersion,
		Parameters: p.Pack(),
	}, nil
}

// Pack - Varint(bouncePolicy) Varint(gasReserve)
func (p Parameters) Pack() []byte {
	buffer := util.ToVarint64(uint64(p.BouncePolicy))
	return util.AppendVarint64(buffer, p.GasReserve.Uint64())
}

// CodeParameters - extract and check the parameters of a code template
func CodeParameters(code stateinit.Code) (Parameters, error) {
	if CodeName != code.Name || CodeVersion != code.Version {
		return Parameters{}, fault.InvalidCodeTemplate
	}
	r := util.NewReader(code.Parameters)
	p := Parameters{
		BouncePolicy: BouncePolicy(r.Varint64()),
		GasReserve:   coins.Amount(r.Varint64()),
	}
	if !r.AtEnd() {
		return Parameters{}, fault.InvalidCodeTemplate
	}
	if RefundOnly != p.BouncePolicy && ResetForRetry != p.BouncePolicy {
		return Parameters{}, fault.InvalidBouncePolicy
	}
	return p, nil
}
