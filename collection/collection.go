// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package collection - one issuer with its catalog and pending issuance code
//
// the catalog address depends on its owner and the issuer address
// depends on the catalog, so the catalog is created owned by the admin
// wallet and handed to the issuer during deployment
package collection

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/mintauth/actor"
	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/catalog"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/issuer"
	"github.com/bitmark-inc/mintauth/ledger"
	"github.com/bitmark-inc/mintauth/message"
	"github.com/bitmark-inc/mintauth/pending"
	"github.com/bitmark-inc/mintauth/policy"
	"github.com/bitmark-inc/mintauth/stateinit"
)

// value sent with the catalog handover message
var handoverValue = coins.Unit / 50

// Parameters - everything that fixes the collection addresses
type Parameters struct {
	Admin       address.Address
	SignerKey   ed25519.PublicKey
	Gate        policy.Gate
	Pending     pending.Parameters
	CatalogSeed uint64
}

// Collection - derived addresses and templates
type Collection struct {
	Admin       address.Address
	Issuer      address.Address
	Catalog     address.Address
	PendingCode stateinit.Code
	SignerKey   ed25519.PublicKey
	Gate        policy.Gate

	issuerInit  *stateinit.StateInit
	catalogInit *stateinit.StateInit
	log         *logger.L
}

// Inspector - read access to deployed actors
type Inspector interface {
	Inspect(a address.Address) (actor.Actor, error)
}

// Register - install the factories of every collection actor
func Register(n *ledger.Network) {
	n.RegisterCode(pending.CodeName, pending.New)
	n.RegisterCode(issuer.CodeName, issuer.New)
	n.RegisterCode(catalog.CodeName, catalog.New)
}

// New - compute the collection, no ledger access
func New(p Parameters) (*Collection, error) {
	if ed25519.PublicKeySize != len(p.SignerKey) {
		return nil, fault.InvalidPublicKey
	}
	if nil == p.Gate {
		return nil, fault.InvalidGateKind
	}
	if p.Admin.IsZero() {
		return nil, fault.InvalidAddress
	}

	pendingCode, err := pending.NewCode(p.Pending)
	if nil != err {
		return nil, err
	}

	catalogInit := catalog.StateInit(p.Admin, p.CatalogSeed)
	catalogAddress := catalogInit.Address()

	issuerInit := issuer.StateInit(&issuer.Record{
		Admin:       p.Admin,
		Catalog:     catalogAddress,
		SignerKey:   p.SignerKey,
		Gate:        p.Gate,
		PendingCode: pendingCode,
	})

	return &Collection{
		Admin:       p.Admin,
		Issuer:      issuerInit.Address(),
		Catalog:     catalogAddress,
		PendingCode: pendingCode,
		SignerKey:   p.SignerKey,
		Gate:        p.Gate,
		issuerInit:  issuerInit,
		catalogInit: catalogInit,
		log:         logger.New("collection"),
	}, nil
}

// Deploy - create issuer and catalog on the ledger with initial
// balances, then hand the catalog to the issuer from the admin wallet
//
// an already deployed collection is left as it is
func (c *Collection) Deploy(n *ledger.Network, issuerValue coins.Amount, catalogValue coins.Amount) error {
	account, err := n.Account(c.Issuer)
	if nil != err {
		return err
	}
	if account.IsDeployed() {
		c.log.Infof("issuer: %s already deployed", c.Issuer)
		return nil
	}

	err = n.Fund(c.Catalog, c.catalogInit, catalogValue)
	if nil != err {
		return err
	}
	err = n.Fund(c.Issuer, c.issuerInit, issuerValue)
	if nil != err {
		return err
	}

	body := message.ChangeCatalogOwner{
		NewOwner: c.Issuer,
	}.Pack()
	lt, err := n.Transfer(c.Admin, c.Catalog, handoverValue, true, body, nil)
	if nil != err {
		return err
	}
	_, err = n.Drain(0)
	if nil != err {
		return err
	}

	record, err := n.Transaction(lt)
	if nil != err {
		return err
	}
	if !record.Success {
		c.log.Errorf("catalog handover failed: %s", record.Error)
		return fault.NotAdmin
	}

	c.log.Infof("deployed issuer: %s  catalog: %s", c.Issuer, c.Catalog)
	return nil
}

// Terms - pending issuance terms within this collection
func (c *Collection) Terms(owner address.Address, content []byte, price coins.Amount, activationTime uint64) pending.Terms {
	return pending.Terms{
		Price:          price,
		Issuer:         c.Issuer,
		Owner:          owner,
		SignerKey:      c.SignerKey,
		Content:        content,
		ActivationTime: activationTime,
	}
}

// PendingStateInit - state init of the pending issuance for terms
func (c *Collection) PendingStateInit(t pending.Terms) *stateinit.StateInit {
	return pending.StateInit(c.PendingCode, t)
}

// PendingAddress - address of the pending issuance for terms
func (c *Collection) PendingAddress(t pending.Terms) address.Address {
	return pending.Address(c.PendingCode, t)
}

// IssuerRecord - current issuer data from the ledger
func (c *Collection) IssuerRecord(n Inspector) (issuer.Record, error) {
	a, err := n.Inspect(c.Issuer)
	if nil != err {
		return issuer.Record{}, err
	}
	minter, ok := a.(*issuer.Minter)
	if !ok {
		return issuer.Record{}, fault.InvalidCodeTemplate
	}
	return minter.Record(), nil
}

// CatalogRecord - current catalog data from the ledger
func (c *Collection) CatalogRecord(n Inspector) (catalog.Record, error) {
	a, err := n.Inspect(c.Catalog)
	if nil != err {
		return catalog.Record{}, err
	}
	cat, ok := a.(*catalog.Catalog)
	if !ok {
		return catalog.Record{}, fault.InvalidCodeTemplate
	}
	return cat.Record(), nil
}

// PendingRecord - current pending issuance data from the ledger
func (c *Collection) PendingRecord(n Inspector, a address.Address) (pending.Record, error) {
	act, err := n.Inspect(a)
	if nil != err {
		return pending.Record{}, err
	}
	item, ok := act.(*pending.Item)
	if !ok {
		return pending.Record{}, fault.InvalidCodeTemplate
	}
	return item.Record(), nil
}
