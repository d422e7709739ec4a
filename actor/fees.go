// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package actor

import (
	"github.com/bitmark-inc/mintauth/coins"
)

// Fees - fee schedule of a ledger
type Fees struct {
	// charged from the inbound value of every transaction
	Compute coins.Amount `json:"compute"`

	// deducted from the value of every delivered message
	Forward coins.Amount `json:"forward"`

	// balance an actor keeps for its own storage
	MinimumReserve coins.Amount `json:"minimumReserve"`
}

// DefaultFees - compute 0.005, forward 0.001, reserve 0.01
func DefaultFees() Fees {
	return Fees{
		Compute:        5 * coins.Unit / 1000,
		Forward:        coins.Unit / 1000,
		MinimumReserve: coins.Unit / 100,
	}
}

// Excess - balance above the minimum reserve, zero if none
func (f Fees) Excess(balance coins.Amount) coins.Amount {
	if balance <= f.MinimumReserve {
		return 0
	}
	return balance - f.MinimumReserve
}

// Delivered - value arriving at the destination of a message sent with value
func (f Fees) Delivered(value coins.Amount) coins.Amount {
	if value <= f.Forward {
		return 0
	}
	return value - f.Forward
}
