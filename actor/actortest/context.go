// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package actortest - a recording actor.Context for unit tests
package actortest

import (
	"os"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/mintauth/actor"
	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/coins"
)

// LogCategory - channel used by the test context
const LogCategory = "testing"

// Context - fixed view of the ledger that records sent messages
type Context struct {
	Address    address.Address
	Time       uint64
	Current    coins.Amount
	Left       coins.Amount
	Schedule   actor.Fees
	Sent       []actor.Outbound
	logChannel *logger.L
}

// New - context for an actor at self receiving value
//
// the balance is the prior balance plus value less the compute fee
func New(self address.Address, prior coins.Amount, value coins.Amount) *Context {
	fees := actor.DefaultFees()
	remaining := coins.Amount(0)
	if value > fees.Compute {
		remaining = value - fees.Compute
	}
	return &Context{
		Address:    self,
		Time:       1600000000,
		Current:    prior + remaining,
		Left:       remaining,
		Schedule:   fees,
		logChannel: logger.New(LogCategory),
	}
}

// Self - actor.Context
func (c *Context) Self() address.Address { return c.Address }

// Now - actor.Context
func (c *Context) Now() uint64 { return c.Time }

// Balance - actor.Context
func (c *Context) Balance() coins.Amount { return c.Current }

// Remaining - actor.Context
func (c *Context) Remaining() coins.Amount { return c.Left }

// Fees - actor.Context
func (c *Context) Fees() actor.Fees { return c.Schedule }

// Send - record the message
func (c *Context) Send(out actor.Outbound) { c.Sent = append(c.Sent, out) }

// Log - actor.Context
func (c *Context) Log() *logger.L { return c.logChannel }

// SetupTestLogger - start logging into a temporary directory
func SetupTestLogger(dir string) {
	_ = os.RemoveAll(dir)
	_ = os.Mkdir(dir, 0o700)
	logging := logger.Configuration{
		Directory: dir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "trace",
		},
	}
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the directory
func TeardownTestLogger(dir string) {
	logger.Finalise()
	_ = os.RemoveAll(dir)
}
