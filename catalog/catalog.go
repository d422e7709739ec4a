// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package catalog - minimal asset catalog
//
// keeps an ordered list of issued items; only its owner may issue or
// hand the catalog over
package catalog

import (
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/mintauth/actor"
	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/message"
	"github.com/bitmark-inc/mintauth/stateinit"
	"github.com/bitmark-inc/mintauth/util"
)

// code identification
const (
	CodeName    = "catalog"
	CodeVersion = 1
)

// Code - code template of a catalog
var Code = stateinit.Code{
	Name:    CodeName,
	Version: CodeVersion,
}

// MaximumItems - items held by one catalog, keeps the packed record
// well inside the ledger's account data limit
const MaximumItems = 10000

// Item - one issued asset
type Item struct {
	Index       uint64          `json:"index"`
	Owner       address.Address `json:"owner"`
	ContentHash [32]byte        `json:"contentHash"`
}

// Record - stored data of a catalog
type Record struct {
	Owner     address.Address
	NextIndex uint64
	Items     []Item
}

// Catalog - the catalog actor
type Catalog struct {
	record *Record
}

// StateInit - deployable empty catalog; seed keeps catalogs with the
// same owner apart
func StateInit(owner address.Address, seed uint64) *stateinit.StateInit {
	record := &Record{
		Owner:     owner,
		NextIndex: seed << 32,
	}
	return &stateinit.StateInit{
		Code: Code,
		Data: record.Pack(),
	}
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
	return &Catalog{
		record: record,
	}, nil
}

// Pack - current data
func (c *Catalog) Pack() []byte {
	return c.record.Pack()
}

// Record - copy of the current data
func (c *Catalog) Record() Record {
	return *c.record
}

// Receive - handle one inbound message
func (c *Catalog) Receive(ctx actor.Context, in *actor.Inbound) error {
	if in.Bounced {
		return nil
	}

	body, err := in.Body.Unpack()
	if nil != err {
		return err
	}

	switch m := body.(type) {
	case nil:
		return nil

	case message.IssueAsset:
		if in.Sender != c.record.Owner {
			return fault.NotAdmin
		}
		if len(c.record.Items) >= MaximumItems {
			return fault.CatalogFull
		}
		item := Item{
			Index:       c.record.NextIndex,
			Owner:       m.Owner,
			ContentHash: sha3.Sum256(m.Content),
		}
		c.record.NextIndex += 1
		c.record.Items = append(c.record.Items, item)
		ctx.Log().Infof("%s: issued item: %d to: %s", ctx.Self(), item.Index, item.Owner)

		excess := ctx.Remaining()
		if excess > ctx.Fees().Forward {
			ctx.Send(actor.Outbound{
				Destination: m.Owner,
				Value:       excess,
				Bounce:      false,
				Body:        message.Excesses{QueryId: m.QueryId}.Pack(),
			})
		}
		return nil

	case message.ChangeCatalogOwner:
		if in.Sender != c.record.Owner {
			return fault.NotAdmin
		}
		ctx.Log().Infof("%s: owner: %s -> %s", ctx.Self(), c.record.Owner, m.NewOwner)
		c.record.Owner = m.NewOwner
		return nil

	default:
		return fault.UnknownOperation
	}
}

// Pack - Bytes(owner) Varint(nextIndex) Varint(count) {Varint(index) Bytes(owner) Bytes(hash)}
func (record *Record) Pack() []byte {
	buffer := util.AppendBytes(nil, record.Owner[:])
	buffer = util.AppendVarint64(buffer, record.NextIndex)
	buffer = util.AppendVarint64(buffer, uint64(len(record.Items)))
	for _, item := range record.Items {
		buffer = util.AppendVarint64(buffer, item.Index)
		buffer = util.AppendBytes(buffer, item.Owner[:])
		buffer = util.AppendBytes(buffer, item.ContentHash[:])
	}
	return buffer
}

// UnpackRecord - reverse of Record.Pack
func UnpackRecord(buffer []byte) (*Record, error) {
	r := util.NewReader(buffer)
	record := &Record{}
	copy(record.Owner[:], r.Bytes(address.Length, address.Length))
	record.NextIndex = r.Varint64()
	count := r.Varint64()
	if !r.OK() || count > MaximumItems {
		return nil, fault.NotStatePack
	}
	for i := uint64(0); i < count; i += 1 {
		item := Item{
			Index: r.Varint64(),
		}
		copy(item.Owner[:], r.Bytes(address.Length, address.Length))
		copy(item.ContentHash[:], r.Bytes(32, 32))
		record.Items = append(record.Items, item)
	}
	if !r.AtEnd() {
		return nil, fault.NotStatePack
	}
	return record, nil
}
