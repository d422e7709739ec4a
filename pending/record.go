// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pending

import (
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/message"
	"github.com/bitmark-inc/mintauth/stateinit"
	"github.com/bitmark-inc/mintauth/util"
)

// Terms - the fields that fix the address of an instance
type Terms struct {
	Price          coins.Amount    `json:"price"`
	Issuer         address.Address `json:"issuer"`
	Owner          address.Address `json:"owner"`
	SignerKey      []byte          `json:"signerKey"`
	Content        []byte          `json:"content"`
	ActivationTime uint64          `json:"activationTime"`
}

// Record - stored data of an instance
//
// Content is nil once minted
type Record struct {
	Minted         bool
	Price          coins.Amount
	Issuer         address.Address
	Owner          address.Address
	SignerKey      []byte
	Content        []byte
	ActivationTime uint64
}

// InitialRecord - the unminted record for a set of terms
func InitialRecord(t Terms) *Record {
	return &Record{
		Minted:         false,
		Price:          t.Price,
		Issuer:         t.Issuer,
		Owner:          t.Owner,
		SignerKey:      t.SignerKey,
		Content:        t.Content,
		ActivationTime: t.ActivationTime,
	}
}

// StateInit - code and initial data of the instance for a set of terms
func StateInit(code stateinit.Code, t Terms) *stateinit.StateInit {
	return &stateinit.StateInit{
		Code: code,
		Data: InitialRecord(t).Pack(),
	}
}

// Address - where the instance for a set of terms lives
func Address(code stateinit.Code, t Terms) address.Address {
	return StateInit(code, t).Address()
}

// Pack - Varint(minted) Varint(price) Bytes(issuer) Bytes(owner)
// Bytes(signerKey) Varint(hasContent) [Bytes(content)] Varint(activationTime)
func (record *Record) Pack() []byte {
	buffer := util.ToVarint64(flag(record.Minted))
	buffer = util.AppendVarint64(buffer, record.Price.Uint64())
	buffer = util.AppendBytes(buffer, record.Issuer[:])
	buffer = util.AppendBytes(buffer, record.Owner[:])
	buffer = util.AppendBytes(buffer, record.SignerKey)
	if nil == record.Content {
		buffer = util.AppendVarint64(buffer, 0)
	} else {
		buffer = util.AppendVarint64(buffer, 1)
		buffer = util.AppendBytes(buffer, record.Content)
	}
	return util.AppendVarint64(buffer, record.ActivationTime)
}

// UnpackRecord - reverse of Record.Pack
func UnpackRecord(buffer []byte) (*Record, error) {
	r := util.NewReader(buffer)

	record := &Record{}
	minted := r.Varint64()
	record.Price = coins.Amount(r.Varint64())
	copy(record.Issuer[:], r.Bytes(address.Length, address.Length))
	copy(record.Owner[:], r.Bytes(address.Length, address.Length))
	record.SignerKey = r.Bytes(ed25519.PublicKeySize, ed25519.PublicKeySize)
	hasContent := r.Varint64()
	if 1 == hasContent {
		record.Content = r.Bytes(0, message.MaxContentLength)
	}
	record.ActivationTime = r.Varint64()

	if !r.AtEnd() || minted > 1 || hasContent > 1 {
		return nil, fault.NotStatePack
	}
	record.Minted = 1 == minted
	return record, nil
}

func flag(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
