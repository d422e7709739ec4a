// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stateinit_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/stateinit"
)

func TestPack(t *testing.T) {
	s := &stateinit.StateInit{
		Code: stateinit.Code{
			Name:       "abc",
			Version:    2,
			Parameters: []byte{0x01},
		},
		Data: []byte{0xaa, 0xbb},
	}

	expected := []byte{
		// code
		0x07, 0x03, 'a', 'b', 'c', 0x02, 0x01, 0x01,
		// data
		0x02, 0xaa, 0xbb,
	}
	assert.Equal(t, expected, s.Pack(), "wrong packed state init")

	back, err := stateinit.Unpack(s.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, s, back, "state init changed")
}

func TestUnpackTruncated(t *testing.T) {
	s := &stateinit.StateInit{
		Code: stateinit.Code{Name: "x", Version: 1},
		Data: []byte("some data"),
	}
	packed := s.Pack()
	for i := 0; i < len(packed); i += 1 {
		_, err := stateinit.Unpack(packed[:i])
		assert.NotNil(t, err, "truncated at %d accepted", i)
	}

	_, err := stateinit.Unpack(append(packed, 0x00))
	assert.Equal(t, fault.NotStatePack, err, "trailing byte accepted")
}

func TestAddressIsDeterministic(t *testing.T) {
	build := func(parameters []byte) *stateinit.StateInit {
		return &stateinit.StateInit{
			Code: stateinit.Code{Name: "pending-issuance", Version: 1, Parameters: parameters},
			Data: []byte("initial data"),
		}
	}

	a1 := build([]byte{0}).Address()
	a2 := build([]byte{0}).Address()
	assert.Equal(t, a1, a2, "same inputs gave different addresses")
	assert.True(t, build([]byte{0}).Matches(a1), "matches failed")

	a3 := build([]byte{1}).Address()
	assert.NotEqual(t, a1, a3, "parameters did not change the address")
}

func TestWallet(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, ed25519.SeedSize)
	key := ed25519.NewKeyFromSeed(seed)
	publicKey := key.Public().(ed25519.PublicKey)

	a1, err := stateinit.WalletAddress(publicKey)
	assert.Nil(t, err, "wallet error")
	a2, _ := stateinit.WalletAddress(publicKey)
	assert.Equal(t, a1, a2, "wallet address not stable")

	_, err = stateinit.WalletAddress(publicKey[:10])
	assert.Equal(t, fault.InvalidPublicKey, err, "short key accepted")
}
