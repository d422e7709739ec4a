// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package authorization_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/authorization"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/fault"
)

func makeKey(b byte) ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(bytes.Repeat([]byte{b}, ed25519.SeedSize))
}

func TestSignVerify(t *testing.T) {
	key := makeKey(0x01)
	publicKey := key.Public().(ed25519.PublicKey)
	ownerA := address.Address(sha3.Sum256([]byte("owner A")))
	ownerB := address.Address(sha3.Sum256([]byte("owner B")))
	content := []byte("https://example.com/item/1.json")
	price := coins.Unit

	signature, err := authorization.Sign(key, content, price, ownerA)
	assert.Nil(t, err, "sign error")
	assert.Equal(t, authorization.SignatureLength, len(signature), "signature length")

	err = authorization.Verify(publicKey, content, price, ownerA, signature)
	assert.Nil(t, err, "valid signature rejected")

	tests := []struct {
		title     string
		publicKey []byte
		content   []byte
		price     coins.Amount
		owner     address.Address
		signature []byte
	}{
		{"other owner", publicKey, content, price, ownerB, signature},
		{"other content", publicKey, []byte("https://example.com/item/2.json"), price, ownerA, signature},
		{"other price", publicKey, content, price + 1, ownerA, signature},
		{"other key", makeKey(0x02).Public().(ed25519.PublicKey), content, price, ownerA, signature},
		{"short key", publicKey[:31], content, price, ownerA, signature},
		{"short signature", publicKey, content, price, ownerA, signature[:63]},
		{"corrupt signature", publicKey, content, price, ownerA, corrupt(signature)},
	}

	for _, item := range tests {
		err := authorization.Verify(item.publicKey, item.content, item.price, item.owner, item.signature)
		assert.Equal(t, fault.InvalidSignature, err, "%s: accepted", item.title)
	}
}

func TestDigestIsDeterministic(t *testing.T) {
	owner := address.Address(sha3.Sum256([]byte("owner")))
	d1 := authorization.Digest([]byte("content"), 5, owner)
	d2 := authorization.Digest([]byte("content"), 5, owner)
	assert.Equal(t, d1, d2, "digest not stable")

	// the length prefix keeps content and price from running together
	d3 := authorization.Digest([]byte("content\x05"), 0, owner)
	assert.NotEqual(t, d1, d3, "ambiguous digest")
}

func TestSignBadKey(t *testing.T) {
	_, err := authorization.Sign(ed25519.PrivateKey{1, 2, 3}, nil, 0, address.Zero)
	assert.Equal(t, fault.InvalidPrivateKey, err, "bad key accepted")
}

func corrupt(signature []byte) []byte {
	s := make([]byte, len(signature))
	copy(s, signature)
	s[0] ^= 0xff
	return s
}
