// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/message"
	"github.com/bitmark-inc/mintauth/util"
)

var owner = address.Address(sha3.Sum256([]byte("owner")))

func TestInternalMintRequestLayout(t *testing.T) {
	m := message.InternalMintRequest{
		QueryId:        7,
		Price:          300,
		Owner:          owner,
		Content:        []byte("abc"),
		ActivationTime: 0,
	}

	expected := []byte{byte(message.InternalMintRequestTag), 0x07, 0xac, 0x02, 0x20}
	expected = append(expected, owner[:]...)
	expected = append(expected, 0x03, 'a', 'b', 'c', 0x00)

	packed := m.Pack()
	assert.Equal(t, message.Packed(expected), packed, "wrong layout")
	assert.Equal(t, message.InternalMintRequestTag, packed.Tag(), "wrong tag")

	body, err := packed.Unpack()
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, m, body, "body changed")
}

func TestUnpackEachType(t *testing.T) {
	bodies := []message.Body{
		message.DeployAndMint{Signature: []byte{1, 2, 3}},
		message.MintItem{QueryId: 1, Signature: []byte{4}},
		message.AdminClaim{QueryId: 2},
		message.AdminTogglePolicy{QueryId: 3, Enabled: true},
		message.AdminSetStartTime{QueryId: 4, StartTime: 1700000000},
		message.AdminTransferCatalogOwnership{QueryId: 5, NewOwner: owner},
		message.IssueAsset{QueryId: 6, Owner: owner, Content: []byte("x")},
		message.ChangeCatalogOwner{QueryId: 7, NewOwner: owner},
		message.Refund{QueryId: 8},
		message.Excesses{QueryId: 9},
	}

	for _, b := range bodies {
		packed := b.Pack()
		back, err := packed.Unpack()
		assert.Nil(t, err, "%s: unpack error", b.Tag())
		assert.Equal(t, b, back, "%s: body changed", b.Tag())

		// every proper prefix must be rejected
		for i := 1; i < len(packed); i += 1 {
			_, err := packed[:i].Unpack()
			assert.NotNil(t, err, "%s: truncated at %d accepted", b.Tag(), i)
		}

		_, err = append(packed, 0x00).Unpack()
		assert.Equal(t, fault.NotMessagePack, err, "%s: trailing data accepted", b.Tag())
	}
}

func TestEmptyIsTransfer(t *testing.T) {
	body, err := message.Packed(nil).Unpack()
	assert.Nil(t, err, "empty body error")
	assert.Nil(t, body, "empty body unpacked")
	assert.True(t, message.Packed{}.IsTransfer(), "not a transfer")
	assert.Equal(t, message.NullTag, message.Packed{}.Tag(), "wrong tag")
}

func TestUnknownOperation(t *testing.T) {
	_, err := message.Packed(util.ToVarint64(uint64(message.InvalidTag))).Unpack()
	assert.Equal(t, fault.UnknownOperation, err, "invalid tag accepted")

	_, err = message.Packed(util.ToVarint64(0x7777)).Unpack()
	assert.Equal(t, fault.UnknownOperation, err, "unknown tag accepted")
	assert.Equal(t, message.InvalidTag, message.Packed(util.ToVarint64(0x7777)).Tag(), "wrong tag")
}

func TestToggleFlagRange(t *testing.T) {
	packed := message.Packed{byte(message.AdminTogglePolicyTag), 0x01, 0x02}
	_, err := packed.Unpack()
	assert.Equal(t, fault.NotMessagePack, err, "flag value 2 accepted")
}
