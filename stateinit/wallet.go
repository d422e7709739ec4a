// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stateinit

import (
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/fault"
)

// WalletCodeName - code name of a plain user account
const WalletCodeName = "wallet"

// WalletCode - code template of a plain user account
var WalletCode = Code{
	Name:    WalletCodeName,
	Version: 1,
}

// Wallet - state init of the wallet owned by an ed25519 public key
func Wallet(publicKey []byte) (*StateInit, error) {
	if ed25519.PublicKeySize != len(publicKey) {
		return nil, fault.InvalidPublicKey
	}
	data := make([]byte, len(publicKey))
	copy(data, publicKey)
	return &StateInit{
		Code: WalletCode,
		Data: data,
	}, nil
}

// WalletAddress - address of the wallet owned by an ed25519 public key
func WalletAddress(publicKey []byte) (address.Address, error) {
	s, err := Wallet(publicKey)
	if nil != err {
		return address.Zero, err
	}
	return s.Address(), nil
}
