// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/mintauth/actor"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/storage"
)

// maximum transactions run by one Drain when no limit is given
const defaultDrainLimit = 100000

// Step - apply the oldest queued message
//
// returns nil record when the queue is empty
func (n *Network) Step() (*Record, error) {
	n.Lock()
	defer n.Unlock()
	return n.step()
}

// Drain - apply messages until the queue is empty or limit transactions
// have run
func (n *Network) Drain(limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = defaultDrainLimit
	}

	n.Lock()
	defer n.Unlock()

	records := make([]*Record, 0, 8)
	for i := 0; i < limit; i += 1 {
		record, err := n.step()
		if nil != err {
			return records, err
		}
		if nil == record {
			break
		}
		records = append(records, record)
	}
	return records, nil
}

func (n *Network) step() (*Record, error) {
	elements, err := storage.Pool.Messages.NewFetchCursor().Fetch(1)
	if nil != err {
		return nil, err
	}
	if 0 == len(elements) {
		return nil, nil
	}

	m, err := unpackMessage(elements[0].Value)
	if nil != err {
		n.log.Errorf("drop corrupt message: key: %x  error: %s", elements[0].Key, err)
		storage.Pool.Messages.Delete(elements[0].Key)
		n.queued -= 1
		return nil, err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return nil, err
	}

	record, created, err := n.apply(trx, m)
	if nil != err {
		trx.Abort()
		return nil, err
	}

	trx.Delete(storage.Pool.Messages, ltKey(m.Lt))
	trx.Put(storage.Pool.Transactions, ltKey(m.Lt), record.Pack())
	trx.PutN(storage.Pool.AccountTransactions, accountLtKey(m.Destination, m.Lt), m.Lt)
	err = trx.Commit()
	if nil != err {
		return nil, err
	}
	n.queued += created - 1

	if record.Success {
		n.log.Debugf("lt: %d  %s  op: %s  in: %s  out: %d  balance: %s", record.Lt, record.Account, record.Op, record.InValue, len(record.Out), record.Balance)
	} else {
		n.log.Infof("lt: %d  %s  op: %s  in: %s  exit: %d  error: %s", record.Lt, record.Account, record.Op, record.InValue, record.ExitCode, record.Error)
	}
	return record, nil
}

// apply one message inside trx
//
// an error return aborts the transaction and leaves the message queued;
// a rejection, or a destination that cannot be loaded, is a failed record
func (n *Network) apply(trx storage.Transaction, m *Message) (*Record, int, error) {
	account, err := readAccount(trx, m.Destination)
	if nil != err {
		n.log.Errorf("lt: %d  unreadable account: %s  error: %s", m.Lt, m.Destination, err)
		record, created := n.reject(trx, m, err)
		return record, created, nil
	}

	record := &Record{
		Lt:      m.Lt,
		Now:     n.clock(),
		Account: m.Destination,
		Source:  m.Source,
		Op:      m.Body.Tag(),
		InValue: m.Value,
		Bounced: m.Bounced,
	}

	prior := *account
	total, err := account.Balance.Add(m.Value)
	if nil != err {
		record, created := n.reject(trx, m, err)
		return record, created, nil
	}

	// value with no code to run is parked on the account
	if !account.IsDeployed() && nil == m.StateInit && (!m.Bounce || m.Bounced) {
		account.Balance = total
		account.Status = Uninitialised
		account.LastLt = m.Lt
		record.Success = true
		record.Balance = total
		trx.Put(storage.Pool.Accounts, m.Destination[:], account.Pack())
		return record, 0, nil
	}

	computeFee := n.fees.Compute
	if computeFee > total {
		computeFee = total
	}
	remaining := coins.Amount(0)
	if m.Value > computeFee {
		remaining = m.Value - computeFee
	}
	record.ComputeFee = computeFee
	account.Balance = total - computeFee
	account.LastLt = m.Lt

	ctx := &runContext{
		self:      m.Destination,
		now:       record.Now,
		balance:   account.Balance,
		remaining: remaining,
		fees:      n.fees,
		log:       n.log,
	}

	var a actor.Actor
	err = n.deploy(account, m)
	if nil == err {
		record.Deployed = !prior.IsDeployed()
		a, err = n.instantiate(account, ctx)
	}
	if nil == err {
		err = a.Receive(ctx, &actor.Inbound{
			Sender:  m.Source,
			Value:   m.Value,
			Bounced: m.Bounced,
			Body:    m.Body,
		})
	}
	var data []byte
	if nil == err {
		data = a.Pack()
		if len(data) > maxDataLength {
			err = fault.StateTooLarge
		}
	}
	var outTotal coins.Amount
	if nil == err {
		outTotal, err = ctx.outboundTotal()
	}
	if nil == err && outTotal > account.Balance {
		err = fault.InsufficientBalance
	}

	created := 0
	if nil == err {
		account.Balance -= outTotal
		account.Data = data
		for _, out := range ctx.out {
			delivered := n.fees.Delivered(out.Value)
			o := &Message{
				Lt:          nextLt(trx),
				Source:      m.Destination,
				Destination: out.Destination,
				Value:       delivered,
				Bounce:      out.Bounce,
				Body:        out.Body,
				StateInit:   out.StateInit,
			}
			trx.Put(storage.Pool.Messages, ltKey(o.Lt), o.Pack())
			record.Out = append(record.Out, Outgoing{
				Lt:          o.Lt,
				Destination: o.Destination,
				Value:       delivered,
				ForwardFee:  out.Value - delivered,
				Bounce:      o.Bounce,
				Op:          o.Body.Tag(),
			})
			created += 1
		}
		record.Success = true

	} else {
		record.Deployed = false
		record.ExitCode = fault.ExitCode(err)
		record.Error = errorText(err)

		// undo any deployment, keep the value
		account.Status = prior.Status
		account.Code = prior.Code
		account.Data = prior.Data
		if Nonexistent == account.Status {
			account.Status = Uninitialised
		}

		if m.Bounce && !m.Bounced && remaining > 0 {
			delivered := n.fees.Delivered(remaining)
			o := &Message{
				Lt:          nextLt(trx),
				Source:      m.Destination,
				Destination: m.Source,
				Value:       delivered,
				Bounced:     true,
				Body:        m.Body,
			}
			account.Balance -= remaining
			trx.Put(storage.Pool.Messages, ltKey(o.Lt), o.Pack())
			record.Out = append(record.Out, Outgoing{
				Lt:          o.Lt,
				Destination: o.Destination,
				Value:       delivered,
				ForwardFee:  remaining - delivered,
				Bounced:     true,
				Op:          o.Body.Tag(),
			})
			created += 1
		}
	}
	record.Balance = account.Balance

	if Uninitialised == account.Status && 0 == account.Balance && Nonexistent == prior.Status {
		return record, created, nil
	}
	trx.Put(storage.Pool.Accounts, m.Destination[:], account.Pack())
	return record, created, nil
}

// failed record for a message whose destination cannot be loaded
//
// the account is left untouched; a bounceable message returns its value
func (n *Network) reject(trx storage.Transaction, m *Message, err error) (*Record, int) {
	record := &Record{
		Lt:       m.Lt,
		Now:      n.clock(),
		Account:  m.Destination,
		Source:   m.Source,
		Op:       m.Body.Tag(),
		InValue:  m.Value,
		Bounced:  m.Bounced,
		ExitCode: fault.ExitCode(err),
		Error:    errorText(err),
	}
	if !m.Bounce || m.Bounced || 0 == m.Value {
		return record, 0
	}

	delivered := n.fees.Delivered(m.Value)
	o := &Message{
		Lt:          nextLt(trx),
		Source:      m.Destination,
		Destination: m.Source,
		Value:       delivered,
		Bounced:     true,
		Body:        m.Body,
	}
	trx.Put(storage.Pool.Messages, ltKey(o.Lt), o.Pack())
	record.Out = append(record.Out, Outgoing{
		Lt:          o.Lt,
		Destination: o.Destination,
		Value:       delivered,
		ForwardFee:  m.Value - delivered,
		Bounced:     true,
		Op:          o.Body.Tag(),
	})
	return record, 1
}

// install code from the message state init on an undeployed account
func (n *Network) deploy(account *Account, m *Message) error {
	if account.IsDeployed() {
		return nil
	}
	if nil == m.StateInit {
		return fault.NotDeployed
	}
	if !m.StateInit.Matches(account.Address) {
		return fault.AddressMismatch
	}
	account.Status = Active
	account.Code = m.StateInit.Code
	account.Data = m.StateInit.Data
	return nil
}

func (n *Network) instantiate(account *Account, ctx *runContext) (actor.Actor, error) {
	factory, ok := n.codes[account.Code.Name]
	if !ok {
		return nil, fault.UnknownContract
	}
	if l, ok := n.codeLog[account.Code.Name]; ok {
		ctx.log = l
	}
	return factory(account.Code, account.Data)
}
