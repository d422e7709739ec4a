// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - a single shard asynchronous message ledger
//
// every account is an actor addressed by the hash of its code and
// initial data; value only moves inside messages, and each message is
// applied in its own transaction in logical time order
package ledger

import (
	"encoding/binary"
	"sort"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/mintauth/actor"
	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/message"
	"github.com/bitmark-inc/mintauth/stateinit"
	"github.com/bitmark-inc/mintauth/storage"
)

// DefaultQueueLimit - maximum undelivered messages accepted from outside
const DefaultQueueLimit = 10000

// key in the metadata pool
var ltCounterKey = []byte("lt")

// Network - the ledger runtime over the storage pools
type Network struct {
	sync.Mutex

	log        *logger.L
	fees       actor.Fees
	codes      map[string]actor.Factory
	codeLog    map[string]*logger.L
	clock      func() uint64
	queueLimit int
	queued     int
	wake       chan struct{}
}

// New - create a network over the already initialised storage
func New(fees actor.Fees, queueLimit int) (*Network, error) {
	if nil == storage.Pool.Messages {
		return nil, fault.DatabaseIsNotSet
	}
	if queueLimit <= 0 {
		queueLimit = DefaultQueueLimit
	}

	n := &Network{
		log:        logger.New("ledger"),
		fees:       fees,
		codes:      make(map[string]actor.Factory),
		codeLog:    make(map[string]*logger.L),
		clock:      func() uint64 { return uint64(time.Now().Unix()) },
		queueLimit: queueLimit,
		wake:       make(chan struct{}, 1),
	}
	n.RegisterCode(stateinit.WalletCodeName, newWallet)

	// restore queue length from a previous run
	err := storage.Pool.Messages.NewFetchCursor().Map(func(key []byte, value []byte) error {
		n.queued += 1
		return nil
	})
	if nil != err {
		return nil, err
	}
	n.log.Infof("fees: %+v  queued: %d", fees, n.queued)
	return n, nil
}

// RegisterCode - install the factory for a code name
func (n *Network) RegisterCode(name string, factory actor.Factory) {
	n.Lock()
	defer n.Unlock()
	n.codes[name] = factory
	n.codeLog[name] = logger.New(name)
}

// SetClock - replace the time source
func (n *Network) SetClock(clock func() uint64) {
	n.Lock()
	n.clock = clock
	n.Unlock()
}

// Fees - the fee schedule
func (n *Network) Fees() actor.Fees {
	return n.fees
}

// Pending - number of undelivered messages
func (n *Network) Pending() int {
	n.Lock()
	defer n.Unlock()
	return n.queued
}

// Account - current state of an address
//
// an address never seen is returned with status Nonexistent
func (n *Network) Account(a address.Address) (*Account, error) {
	packed := storage.Pool.Accounts.Get(a[:])
	if nil == packed {
		return &Account{Address: a, Status: Nonexistent}, nil
	}
	return unpackAccount(a, packed)
}

// Inspect - instantiate the actor of a deployed account
func (n *Network) Inspect(a address.Address) (actor.Actor, error) {
	account, err := n.Account(a)
	if nil != err {
		return nil, err
	}
	if !account.IsDeployed() {
		return nil, fault.UnknownAccount
	}

	n.Lock()
	factory, ok := n.codes[account.Code.Name]
	n.Unlock()
	if !ok {
		return nil, fault.UnknownContract
	}
	return factory(account.Code, account.Data)
}

// Fund - credit an account outside of any message, deploying it if
// a state init is given
func (n *Network) Fund(a address.Address, init *stateinit.StateInit, value coins.Amount) error {
	n.Lock()
	defer n.Unlock()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	account, err := readAccount(trx, a)
	if nil != err {
		trx.Abort()
		return err
	}

	if nil != init && !account.IsDeployed() {
		if !init.Matches(a) {
			trx.Abort()
			return fault.AddressMismatch
		}
		if _, ok := n.codes[init.Code.Name]; !ok {
			trx.Abort()
			return fault.UnknownContract
		}
		account.Status = Active
		account.Code = init.Code
		account.Data = init.Data
	}

	balance, err := account.Balance.Add(value)
	if nil != err {
		trx.Abort()
		return err
	}
	account.Balance = balance
	if Nonexistent == account.Status {
		account.Status = Uninitialised
	}

	trx.Put(storage.Pool.Accounts, a[:], account.Pack())
	err = trx.Commit()
	if nil != err {
		return err
	}
	n.log.Infof("fund: %s  value: %s  status: %s", a, value, account.Status)
	return nil
}

// Transfer - queue an external message from a wallet
//
// the wallet pays value plus the forward fee and the destination
// receives the full value; returns the logical time of the message
func (n *Network) Transfer(from address.Address, to address.Address, value coins.Amount, bounce bool, body message.Packed, init *stateinit.StateInit) (uint64, error) {
	if len(body) > maxBodyLength {
		return 0, fault.ContentTooLong
	}

	n.Lock()
	defer n.Unlock()

	if n.queued >= n.queueLimit {
		return 0, fault.MessageQueueFull
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}

	account, err := readAccount(trx, from)
	if nil != err {
		trx.Abort()
		return 0, err
	}
	if !account.IsDeployed() || stateinit.WalletCodeName != account.Code.Name {
		trx.Abort()
		return 0, fault.UnknownAccount
	}

	cost, err := value.Add(n.fees.Forward)
	if nil != err {
		trx.Abort()
		return 0, err
	}
	if cost > account.Balance {
		trx.Abort()
		return 0, fault.InsufficientBalance
	}
	account.Balance -= cost

	m := &Message{
		Lt:          nextLt(trx),
		Source:      from,
		Destination: to,
		Value:       value,
		Bounce:      bounce,
		External:    true,
		Body:        body,
		StateInit:   init,
	}
	account.LastLt = m.Lt

	trx.Put(storage.Pool.Accounts, from[:], account.Pack())
	trx.Put(storage.Pool.Messages, ltKey(m.Lt), m.Pack())
	err = trx.Commit()
	if nil != err {
		return 0, err
	}
	n.queued += 1

	n.log.Infof("transfer: lt: %d  %s -> %s  value: %s  op: %s", m.Lt, from, to, value, body.Tag())
	n.signal()
	return m.Lt, nil
}

// Transaction - the record of the transaction that applied message lt
func (n *Network) Transaction(lt uint64) (*Record, error) {
	packed := storage.Pool.Transactions.Get(ltKey(lt))
	if nil == packed {
		return nil, fault.UnknownTransaction
	}
	return unpackRecord(packed)
}

// Trace - applied records caused by the message lt, in lt order
//
// messages still queued are not followed
func (n *Network) Trace(lt uint64) ([]*Record, error) {
	records := make([]*Record, 0, 8)
	queue := []uint64{lt}
	for 0 != len(queue) {
		current := queue[0]
		queue = queue[1:]
		packed := storage.Pool.Transactions.Get(ltKey(current))
		if nil == packed {
			continue
		}
		record, err := unpackRecord(packed)
		if nil != err {
			return nil, err
		}
		records = append(records, record)
		for _, out := range record.Out {
			queue = append(queue, out.Lt)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Lt < records[j].Lt
	})
	return records, nil
}

// Transactions - the most recent count records of an account, oldest first
func (n *Network) Transactions(a address.Address, count int) ([]*Record, error) {
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	lts := make([]uint64, 0, count)
	cursor := storage.Pool.AccountTransactions.NewFetchCursor().Prefix(a[:])
	err := cursor.Map(func(key []byte, value []byte) error {
		if len(value) != 8 {
			return fault.NotStatePack
		}
		lts = append(lts, binary.BigEndian.Uint64(value))
		return nil
	})
	if nil != err {
		return nil, err
	}
	if len(lts) > count {
		lts = lts[len(lts)-count:]
	}

	records := make([]*Record, 0, len(lts))
	for _, lt := range lts {
		record, err := n.Transaction(lt)
		if nil != err {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Wake - channel signalled when messages are queued
func (n *Network) Wake() <-chan struct{} {
	return n.wake
}

func (n *Network) signal() {
	select {
	case n.wake <- struct{}{}:
	default:
	}
}

func readAccount(trx storage.Transaction, a address.Address) (*Account, error) {
	packed := trx.Get(storage.Pool.Accounts, a[:])
	if nil == packed {
		return &Account{Address: a, Status: Nonexistent}, nil
	}
	return unpackAccount(a, packed)
}

// allocate the next logical time
func nextLt(trx storage.Transaction) uint64 {
	lt, _ := trx.GetN(storage.Pool.Metadata, ltCounterKey)
	lt += 1
	trx.PutN(storage.Pool.Metadata, ltCounterKey, lt)
	return lt
}
