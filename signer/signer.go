// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package signer - off-chain issuance authorization
//
// the signer holds the collection key and, for a requested owner and
// content, produces everything the owner needs to deploy and mint a
// pending issuance: its address, state init and signed first message
package signer

import (
	"bytes"
	"encoding/hex"
	"sync"

	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/authorization"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/collection"
	"github.com/bitmark-inc/mintauth/counter"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/message"
	"github.com/bitmark-inc/mintauth/pending"
)

// MaximumBatch - largest BatchSign request
const MaximumBatch = 100

// Chain - deployment state lookup
type Chain interface {
	IsDeployed(a address.Address) (bool, error)
}

// Request - one authorization request
//
// a nil price selects the default price
type Request struct {
	Owner          address.Address `json:"ownerAccount"`
	Content        []byte          `json:"content"`
	Price          *coins.Amount   `json:"price,omitempty"`
	ActivationTime uint64          `json:"activationTime,omitempty"`
}

// Authorization - everything needed to deploy and mint
type Authorization struct {
	PendingIssuanceAddress address.Address `json:"pendingIssuanceAddress"`
	InitCode               []byte          `json:"initCode"`
	InitData               []byte          `json:"initData"`
	MessageBody            []byte          `json:"messageBody"`
	Signature              string          `json:"signature"`
	ContentHash            string          `json:"contentHash"`
	Price                  coins.Amount    `json:"price"`
	OwnerAccount           address.Address `json:"ownerAccount"`
}

// Context - signer key state
type Context struct {
	sync.RWMutex

	log          *logger.L
	privateKey   ed25519.PrivateKey
	collection   *collection.Collection
	defaultPrice coins.Amount
	signed       counter.Counter
}

// New - signer for a collection, the key must be the collection signer key
func New(privateKey ed25519.PrivateKey, c *collection.Collection, defaultPrice coins.Amount) (*Context, error) {
	if ed25519.PrivateKeySize != len(privateKey) {
		return nil, fault.InvalidPrivateKey
	}
	publicKey := privateKey.Public().(ed25519.PublicKey)
	if !bytes.Equal(publicKey, c.SignerKey) {
		return nil, fault.InvalidPrivateKey
	}
	if 0 == defaultPrice {
		return nil, fault.InvalidAmount
	}

	log := logger.New("signer")
	log.Infof("public key: %x  issuer: %s  default price: %s", publicKey, c.Issuer, defaultPrice)

	return &Context{
		log:          log,
		privateKey:   privateKey,
		collection:   c,
		defaultPrice: defaultPrice,
	}, nil
}

// PublicKey - the signer public key
func (ctx *Context) PublicKey() ed25519.PublicKey {
	return ctx.collection.SignerKey
}

// Collection - the collection signed for
func (ctx *Context) Collection() *collection.Collection {
	return ctx.collection
}

// DefaultPrice - price used when a request has none
func (ctx *Context) DefaultPrice() coins.Amount {
	ctx.RLock()
	defer ctx.RUnlock()
	return ctx.defaultPrice
}

// SetDefaultPrice - change the default price, zero is ignored
func (ctx *Context) SetDefaultPrice(price coins.Amount) {
	if 0 == price {
		return
	}
	ctx.Lock()
	if price != ctx.defaultPrice {
		ctx.log.Infof("default price: %s -> %s", ctx.defaultPrice, price)
	}
	ctx.defaultPrice = price
	ctx.Unlock()
}

// Signed - count of authorizations issued
func (ctx *Context) Signed() uint64 {
	return ctx.signed.Uint64()
}

// CalculateAddress - pending issuance address for a request
func (ctx *Context) CalculateAddress(req *Request) (address.Address, error) {
	terms, err := ctx.terms(req)
	if nil != err {
		return address.Zero, err
	}
	return ctx.collection.PendingAddress(terms), nil
}

// Sign - authorize one issuance
func (ctx *Context) Sign(req *Request) (*Authorization, error) {
	terms, err := ctx.terms(req)
	if nil != err {
		return nil, err
	}

	signature, err := authorization.Sign(ctx.privateKey, terms.Content, terms.Price, terms.Owner)
	if nil != err {
		return nil, err
	}

	init := ctx.collection.PendingStateInit(terms)
	contentHash := sha3.Sum256(terms.Content)
	a := &Authorization{
		PendingIssuanceAddress: init.Address(),
		InitCode:               init.Code.Pack(),
		InitData:               init.Data,
		MessageBody:            message.DeployAndMint{Signature: signature}.Pack(),
		Signature:              hex.EncodeToString(signature),
		ContentHash:            hex.EncodeToString(contentHash[:]),
		Price:                  terms.Price,
		OwnerAccount:           terms.Owner,
	}

	ctx.signed.Increment()

	ctx.log.Debugf("signed: %s  owner: %s  price: %s", a.PendingIssuanceAddress, a.OwnerAccount, a.Price)
	return a, nil
}

// BatchSign - authorize up to MaximumBatch issuances, all or nothing
func (ctx *Context) BatchSign(requests []*Request) ([]*Authorization, error) {
	if 0 == len(requests) {
		return nil, fault.MissingParameters
	}
	if len(requests) > MaximumBatch {
		return nil, fault.BatchTooLarge
	}

	result := make([]*Authorization, 0, len(requests))
	for _, req := range requests {
		a, err := ctx.Sign(req)
		if nil != err {
			return nil, err
		}
		result = append(result, a)
	}
	return result, nil
}

// VerifyDeployment - true if the address holds deployed code
func (ctx *Context) VerifyDeployment(chain Chain, a address.Address) (bool, error) {
	if a.IsZero() {
		return false, fault.InvalidAddress
	}
	return chain.IsDeployed(a)
}

func (ctx *Context) terms(req *Request) (pending.Terms, error) {
	if nil == req || 0 == len(req.Content) {
		return pending.Terms{}, fault.MissingParameters
	}
	if len(req.Content) > message.MaxContentLength {
		return pending.Terms{}, fault.ContentTooLong
	}
	if req.Owner.IsZero() {
		return pending.Terms{}, fault.InvalidAddress
	}

	price := ctx.DefaultPrice()
	if nil != req.Price {
		if 0 == *req.Price {
			return pending.Terms{}, fault.InvalidAmount
		}
		price = *req.Price
	}
	return ctx.collection.Terms(req.Owner, req.Content, price, req.ActivationTime), nil
}
