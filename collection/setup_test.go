// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collection_test

import (
	"bytes"
	"os"
	"testing"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/mintauth/actor"
	"github.com/bitmark-inc/mintauth/actor/actortest"
	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/authorization"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/collection"
	"github.com/bitmark-inc/mintauth/ledger"
	"github.com/bitmark-inc/mintauth/message"
	"github.com/bitmark-inc/mintauth/pending"
	"github.com/bitmark-inc/mintauth/policy"
	"github.com/bitmark-inc/mintauth/stateinit"
	"github.com/bitmark-inc/mintauth/storage"
)

const (
	testingDirName = "testing"
	testNow        = uint64(1600000000)
)

func TestMain(m *testing.M) {
	actortest.SetupTestLogger(testingDirName)
	result := m.Run()
	actortest.TeardownTestLogger(testingDirName)
	os.Exit(result)
}

var (
	signerKey = ed25519.NewKeyFromSeed(bytes.Repeat([]byte{0x5a}, ed25519.SeedSize))
	content   = []byte("ipfs://QmItem0001/metadata.json")
	price     = coins.Unit
	mintValue = coins.MustParse("2")
)

// test fixture, one ledger with a deployed collection
type fixture struct {
	t          *testing.T
	network    *ledger.Network
	collection *collection.Collection
	admin      address.Address
	user       address.Address
	stranger   address.Address
}

// wallets are funded with 10 units each
func setup(t *testing.T, bouncePolicy pending.BouncePolicy, gate policy.Gate) *fixture {
	err := storage.InitialiseMemory()
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	n, err := ledger.New(actor.DefaultFees(), 0)
	if nil != err {
		t.Fatalf("ledger new error: %s", err)
	}
	n.SetClock(func() uint64 { return testNow })
	collection.Register(n)

	f := &fixture{
		t:        t,
		network:  n,
		admin:    wallet(t, n, 1),
		user:     wallet(t, n, 2),
		stranger: wallet(t, n, 3),
	}

	c, err := collection.New(collection.Parameters{
		Admin:     f.admin,
		SignerKey: signerKey.Public().(ed25519.PublicKey),
		Gate:      gate,
		Pending: pending.Parameters{
			BouncePolicy: bouncePolicy,
			GasReserve:   pending.DefaultGasReserve,
		},
		CatalogSeed: 1,
	})
	if nil != err {
		t.Fatalf("collection new error: %s", err)
	}
	err = c.Deploy(n, coins.MustParse("0.05"), coins.MustParse("0.05"))
	if nil != err {
		t.Fatalf("collection deploy error: %s", err)
	}
	f.collection = c
	return f
}

func teardown() {
	storage.Finalise()
}

func wallet(t *testing.T, n *ledger.Network, seed byte) address.Address {
	key := ed25519.NewKeyFromSeed(bytes.Repeat([]byte{seed}, ed25519.SeedSize))
	init, err := stateinit.Wallet(key.Public().(ed25519.PublicKey))
	if nil != err {
		t.Fatalf("wallet error: %s", err)
	}
	err = n.Fund(init.Address(), init, coins.MustParse("10"))
	if nil != err {
		t.Fatalf("fund error: %s", err)
	}
	return init.Address()
}

func (f *fixture) terms(activationTime uint64) pending.Terms {
	return f.collection.Terms(f.user, content, price, activationTime)
}

func sign(key ed25519.PrivateKey, t pending.Terms) []byte {
	signature, err := authorization.Sign(key, t.Content, t.Price, t.Owner)
	if nil != err {
		panic(err)
	}
	return signature
}

// send from a wallet and return every transaction it caused
func (f *fixture) send(from address.Address, to address.Address, value coins.Amount, body message.Packed, init *stateinit.StateInit) []*ledger.Record {
	lt, err := f.network.Transfer(from, to, value, true, body, init)
	if nil != err {
		f.t.Fatalf("transfer error: %s", err)
	}
	_, err = f.network.Drain(0)
	if nil != err {
		f.t.Fatalf("drain error: %s", err)
	}
	records, err := f.network.Trace(lt)
	if nil != err {
		f.t.Fatalf("trace error: %s", err)
	}
	return records
}

// first mint of an item, deploying it
func (f *fixture) deployAndMint(from address.Address, t pending.Terms, signature []byte) []*ledger.Record {
	body := message.DeployAndMint{Signature: signature}.Pack()
	return f.send(from, f.collection.PendingAddress(t), mintValue, body, f.collection.PendingStateInit(t))
}

func (f *fixture) mintItem(t pending.Terms, queryId uint64) []*ledger.Record {
	body := message.MintItem{QueryId: queryId, Signature: sign(signerKey, t)}.Pack()
	return f.send(f.user, f.collection.PendingAddress(t), mintValue, body, nil)
}

func (f *fixture) balance(a address.Address) coins.Amount {
	account, err := f.network.Account(a)
	if nil != err {
		f.t.Fatalf("account error: %s", err)
	}
	return account.Balance
}

// compute and forward fees of a set of transactions
func fees(records []*ledger.Record) coins.Amount {
	total := coins.Amount(0)
	for _, r := range records {
		total += r.ComputeFee
		for _, out := range r.Out {
			total += out.ForwardFee
		}
	}
	return total
}

func signerKeyFromSeed(seed byte) ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(bytes.Repeat([]byte{seed}, ed25519.SeedSize))
}
