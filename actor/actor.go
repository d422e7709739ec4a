// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package actor - the contract between the ledger and account code
//
// an actor is rebuilt from its stored data for every message, handles
// exactly one inbound message and either succeeds, in which case its
// new data and queued outbound messages are committed, or fails, in
// which case nothing it did is kept
package actor

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/message"
	"github.com/bitmark-inc/mintauth/stateinit"
)

// Inbound - the message being processed
type Inbound struct {
	Sender  address.Address
	Value   coins.Amount
	Bounced bool
	Body    message.Packed
}

// Outbound - a message queued by an actor
type Outbound struct {
	Destination address.Address
	Value       coins.Amount
	Bounce      bool
	Body        message.Packed
	StateInit   *stateinit.StateInit
}

// Context - what the running actor can see of the ledger
type Context interface {
	// Self - address of the running actor
	Self() address.Address

	// Now - unix time of the transaction
	Now() uint64

	// Balance - account balance after the inbound value was
	// credited and the compute fee was charged
	Balance() coins.Amount

	// Remaining - inbound value less the compute fee
	Remaining() coins.Amount

	// Fees - current fee schedule
	Fees() Fees

	// Send - queue a message, delivered after this transaction commits
	Send(out Outbound)

	// Log - channel for the running code
	Log() *logger.L
}

// Actor - account code instantiated over its data
type Actor interface {
	// Receive - handle one message, any error rejects it
	Receive(ctx Context, in *Inbound) error

	// Pack - data to store if Receive succeeded
	Pack() []byte
}

// Factory - build an actor from its code template and stored data
type Factory func(code stateinit.Code, data []byte) (Actor, error)
