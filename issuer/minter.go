// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package issuer - the collection's minter
//
// accepts mint requests only from the pending issuance instance whose
// address it can recompute from the request, applies the mint gate and
// passes the issue command to the catalog
package issuer

import (
	"github.com/bitmark-inc/mintauth/actor"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/message"
	"github.com/bitmark-inc/mintauth/pending"
	"github.com/bitmark-inc/mintauth/policy"
	"github.com/bitmark-inc/mintauth/stateinit"
)

// Minter - the issuer actor
type Minter struct {
	record *Record
}

// New - actor factory for the ledger
func New(code stateinit.Code, data []byte) (actor.Actor, error) {
	if CodeName != code.Name || CodeVersion != code.Version {
		return nil, fault.InvalidCodeTemplate
	}
	record, err := UnpackRecord(data)
	if nil != err {
		return nil, err
	}
	return &Minter{
		record: record,
	}, nil
}

// Pack - current data
func (minter *Minter) Pack() []byte {
	return minter.record.Pack()
}

// Record - copy of the current data
func (minter *Minter) Record() Record {
	return *minter.record
}

// Receive - handle one inbound message
func (minter *Minter) Receive(ctx actor.Context, in *actor.Inbound) error {
	if in.Bounced {
		ctx.Log().Debugf("%s: bounced %s from: %s  value: %s", ctx.Self(), in.Body.Tag(), in.Sender, in.Value)
		return nil
	}

	body, err := in.Body.Unpack()
	if nil != err {
		return err
	}

	switch m := body.(type) {
	case nil:
		return nil

	case message.InternalMintRequest:
		return minter.mintRequest(ctx, in, m)

	case message.AdminClaim:
		if in.Sender != minter.record.Admin {
			return fault.NotAdmin
		}
		return minter.claim(ctx, m)

	case message.AdminTogglePolicy:
		if in.Sender != minter.record.Admin {
			return fault.NotAdmin
		}
		toggle, ok := minter.record.Gate.(*policy.Toggle)
		if !ok {
			return fault.PolicyMismatch
		}
		toggle.Enabled = m.Enabled
		ctx.Log().Infof("%s: minting: %s", ctx.Self(), toggle)
		return nil

	case message.AdminSetStartTime:
		if in.Sender != minter.record.Admin {
			return fault.NotAdmin
		}
		timeGate, ok := minter.record.Gate.(*policy.TimeGate)
		if !ok {
			return fault.PolicyMismatch
		}
		timeGate.StartTime = m.StartTime
		ctx.Log().Infof("%s: start time: %d", ctx.Self(), m.StartTime)
		return nil

	case message.AdminTransferCatalogOwnership:
		if in.Sender != minter.record.Admin {
			return fault.NotAdmin
		}
		ctx.Send(actor.Outbound{
			Destination: minter.record.Catalog,
			Value:       ctx.Remaining(),
			Bounce:      true,
			Body: message.ChangeCatalogOwner{
				QueryId:  m.QueryId,
				NewOwner: m.NewOwner,
			}.Pack(),
		})
		ctx.Log().Infof("%s: catalog owner -> %s", ctx.Self(), m.NewOwner)
		return nil

	default:
		return fault.UnknownOperation
	}
}

func (minter *Minter) mintRequest(ctx actor.Context, in *actor.Inbound, m message.InternalMintRequest) error {
	record := minter.record

	terms := pending.Terms{
		Price:          m.Price,
		Issuer:         ctx.Self(),
		Owner:          m.Owner,
		SignerKey:      record.SignerKey,
		Content:        m.Content,
		ActivationTime: m.ActivationTime,
	}
	expected := pending.Address(record.PendingCode, terms)
	if expected != in.Sender {
		ctx.Log().Warnf("%s: request from: %s  expected: %s", ctx.Self(), in.Sender, expected)
		return fault.AddressMismatch
	}

	if err := policy.Check(record.Gate, ctx.Now()); nil != err {
		return err
	}

	if ctx.Remaining() < m.Price {
		return fault.InsufficientFunds
	}

	record.IssuedCount += 1

	ctx.Send(actor.Outbound{
		Destination: record.Catalog,
		Value:       ctx.Remaining() - m.Price,
		Bounce:      true,
		Body: message.IssueAsset{
			QueryId: m.QueryId,
			Owner:   m.Owner,
			Content: m.Content,
		}.Pack(),
	})

	ctx.Log().Infof("%s: issue #%d for: %s", ctx.Self(), record.IssuedCount, m.Owner)
	return nil
}

// leaves exactly the minimum reserve
func (minter *Minter) claim(ctx actor.Context, m message.AdminClaim) error {
	excess := ctx.Fees().Excess(ctx.Balance())
	if 0 == excess {
		return fault.InsufficientBalance
	}
	ctx.Send(actor.Outbound{
		Destination: minter.record.Admin,
		Value:       excess,
		Bounce:      false,
		Body:        message.Excesses{QueryId: m.QueryId}.Pack(),
	})
	ctx.Log().Infof("%s: claimed: %s", ctx.Self(), excess)
	return nil
}
