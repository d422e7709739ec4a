// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pending - the one-time mint placeholder for a single asset
//
// an instance is deployed by its owner's first message and holds the
// signer's terms; a valid signed mint moves it from awaiting mint to
// minted and forwards the request to the issuer
package pending

import (
	"github.com/bitmark-inc/mintauth/actor"
	"github.com/bitmark-inc/mintauth/authorization"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/message"
	"github.com/bitmark-inc/mintauth/stateinit"
)

// Item - a pending issuance instance
type Item struct {
	parameters Parameters
	record     *Record
}

// New - actor factory for the ledger
func New(code stateinit.Code, data []byte) (actor.Actor, error) {
	p, err := CodeParameters(code)
	if nil != err {
		return nil, err
	}
	record, err := UnpackRecord(data)
	if nil != err {
		return nil, err
	}
	return &Item{
		parameters: p,
		record:     record,
	}, nil
}

// Pack - current data
func (item *Item) Pack() []byte {
	return item.record.Pack()
}

// Record - copy of the current data
func (item *Item) Record() Record {
	return *item.record
}

// Receive - handle one inbound message
func (item *Item) Receive(ctx actor.Context, in *actor.Inbound) error {
	if in.Bounced {
		return item.bounced(ctx, in)
	}

	body, err := in.Body.Unpack()
	if nil != err {
		return err
	}

	switch m := body.(type) {
	case nil:
		return nil

	case message.DeployAndMint:
		return item.mint(ctx, in, 0, m.Signature)

	case message.MintItem:
		return item.mint(ctx, in, m.QueryId, m.Signature)

	default:
		return fault.UnknownOperation
	}
}

// all guards run before any change to the record
func (item *Item) mint(ctx actor.Context, in *actor.Inbound, queryId uint64, signature []byte) error {
	log := ctx.Log()
	record := item.record

	if 0 != record.ActivationTime && ctx.Now() < record.ActivationTime {
		return fault.NotYetActive
	}
	if record.Minted {
		return fault.AlreadyMinted
	}
	if in.Sender != record.Owner {
		return fault.NotOwner
	}
	if in.Value < record.Price || !coversIssue(ctx, record.Price, item.parameters.GasReserve) {
		return fault.InsufficientFunds
	}
	err := authorization.Verify(record.SignerKey, record.Content, record.Price, record.Owner, signature)
	if nil != err {
		return err
	}
	if nil == record.Content {
		return fault.ContentMissing
	}

	request := message.InternalMintRequest{
		QueryId:        queryId,
		Price:          record.Price,
		Owner:          record.Owner,
		Content:        record.Content,
		ActivationTime: record.ActivationTime,
	}

	record.Minted = true
	record.Content = nil

	forward := ctx.Remaining() - item.parameters.GasReserve
	ctx.Send(actor.Outbound{
		Destination: record.Issuer,
		Value:       forward,
		Bounce:      true,
		Body:        request.Pack(),
	})

	log.Infof("%s: minted for: %s  forward: %s", ctx.Self(), record.Owner, forward)
	return nil
}

// only a bounced mint request from the issuer is acted on
func (item *Item) bounced(ctx actor.Context, in *actor.Inbound) error {
	log := ctx.Log()
	record := item.record

	if in.Sender != record.Issuer || message.InternalMintRequestTag != in.Body.Tag() {
		log.Debugf("%s: ignore bounced %s from: %s", ctx.Self(), in.Body.Tag(), in.Sender)
		return nil
	}

	body, err := in.Body.Unpack()
	if nil != err {
		log.Warnf("%s: damaged bounce from: %s  error: %s", ctx.Self(), in.Sender, err)
		return nil
	}
	request := body.(message.InternalMintRequest)

	switch item.parameters.BouncePolicy {
	case ResetForRetry:
		if 0 == len(request.Content) {
			return fault.ContentMissing
		}
		record.Minted = false
		record.Content = request.Content
		log.Infof("%s: mint rejected, reset for retry", ctx.Self())

	default:
		log.Infof("%s: mint rejected, instance consumed", ctx.Self())
	}

	refund := ctx.Fees().Excess(ctx.Balance())
	if 0 == refund {
		return nil
	}
	ctx.Send(actor.Outbound{
		Destination: record.Owner,
		Value:       refund,
		Bounce:      false,
		Body:        message.Refund{QueryId: request.QueryId}.Pack(),
	})
	log.Infof("%s: refund: %s to: %s", ctx.Self(), refund, record.Owner)
	return nil
}

// remaining value must leave the issuer the price after this instance
// keeps its reserve and the forward is delivered and run
func coversIssue(ctx actor.Context, price coins.Amount, reserve coins.Amount) bool {
	fees := ctx.Fees()
	needed, err := price.Add(reserve)
	if nil == err {
		needed, err = needed.Add(fees.Forward)
	}
	if nil == err {
		needed, err = needed.Add(fees.Compute)
	}
	if nil != err {
		return false
	}
	return ctx.Remaining() >= needed
}
