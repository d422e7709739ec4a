// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package authorization - the signer's grant of a one-time mint
//
// digest = SHA3-256(Bytes(content) Varint(price) owner)
//
// the owner is part of the digest so a signature cannot be replayed
// for a different account with the same content and price
package authorization

import (
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/util"
)

// SignatureLength - bytes in an ed25519 signature
const SignatureLength = ed25519.SignatureSize

// Digest - hash of the authorized fields
func Digest(content []byte, price coins.Amount, owner address.Address) [32]byte {
	buffer := util.AppendBytes(nil, content)
	buffer = util.AppendVarint64(buffer, price.Uint64())
	buffer = append(buffer, owner[:]...)
	return sha3.Sum256(buffer)
}

// Sign - produce the signature for a mint of content by owner at price
func Sign(privateKey ed25519.PrivateKey, content []byte, price coins.Amount, owner address.Address) ([]byte, error) {
	if ed25519.PrivateKeySize != len(privateKey) {
		return nil, fault.InvalidPrivateKey
	}
	digest := Digest(content, price, owner)
	return ed25519.Sign(privateKey, digest[:]), nil
}

// Verify - check a signature against the signer's public key
//
// any failure is InvalidSignature
func Verify(publicKey []byte, content []byte, price coins.Amount, owner address.Address, signature []byte) error {
	if ed25519.PublicKeySize != len(publicKey) || SignatureLength != len(signature) {
		return fault.InvalidSignature
	}
	digest := Digest(content, price, owner)
	if !ed25519.Verify(publicKey, digest[:], signature) {
		return fault.InvalidSignature
	}
	return nil
}
