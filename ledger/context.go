// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/mintauth/actor"
	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/coins"
)

// the actor.Context of one transaction
type runContext struct {
	self      address.Address
	now       uint64
	balance   coins.Amount
	remaining coins.Amount
	fees      actor.Fees
	out       []actor.Outbound
	log       *logger.L
}

func (c *runContext) Self() address.Address   { return c.self }
func (c *runContext) Now() uint64             { return c.now }
func (c *runContext) Balance() coins.Amount   { return c.balance }
func (c *runContext) Remaining() coins.Amount { return c.remaining }
func (c *runContext) Fees() actor.Fees        { return c.fees }
func (c *runContext) Send(out actor.Outbound) { c.out = append(c.out, out) }
func (c *runContext) Log() *logger.L          { return c.log }

// total value of the queued messages
func (c *runContext) outboundTotal() (coins.Amount, error) {
	total := coins.Amount(0)
	for _, out := range c.out {
		t, err := total.Add(out.Value)
		if nil != err {
			return 0, err
		}
		total = t
	}
	return total, nil
}
