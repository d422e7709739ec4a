// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address - content derived account identifiers
package address

import (
	"bytes"
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/util"
)

// Length - number of bytes in an address
const Length = 32

// miscellaneous constants
const (
	checksumLength = 4

	// leading byte of the text form
	liveVariant = 0x11
	testVariant = 0x13
)

// Address - SHA3-256 of an account's state init
//
// to convert to bytes just use a[:]
type Address [Length]byte

// Zero - the unset address
var Zero Address

// testing selects the variant byte used by String
var testing = false

// SetTesting - select the test network text form
func SetTesting(test bool) {
	testing = test
}

// FromBytes - convert a 32 byte slice
func FromBytes(buffer []byte) (Address, error) {
	a := Address{}
	if Length != len(buffer) {
		return a, fault.InvalidAddress
	}
	copy(a[:], buffer)
	return a, nil
}

// FromBase58 - decode the text form and check its checksum and variant
func FromBase58(s string) (Address, error) {
	a := Address{}
	buffer := util.FromBase58(s)
	if 1+Length+checksumLength != len(buffer) {
		return a, fault.InvalidAddress
	}

	checksumStart := len(buffer) - checksumLength
	checksum := sha3.Sum256(buffer[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], buffer[checksumStart:]) {
		return a, fault.ChecksumMismatch
	}

	variant := byte(liveVariant)
	if testing {
		variant = testVariant
	}
	if variant != buffer[0] {
		return a, fault.WrongNetworkForAddress
	}

	copy(a[:], buffer[1:checksumStart])
	return a, nil
}

// IsZero - true if the address was never set
func (a Address) IsZero() bool {
	return a == Zero
}

// Bytes - copy of the raw digest
func (a Address) Bytes() []byte {
	b := make([]byte, Length)
	copy(b, a[:])
	return b
}

// String - base58 text form
func (a Address) String() string {
	variant := byte(liveVariant)
	if testing {
		variant = testVariant
	}
	buffer := make([]byte, 0, 1+Length+checksumLength)
	buffer = append(buffer, variant)
	buffer = append(buffer, a[:]...)
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return util.ToBase58(buffer)
}

// GoString - for %#v
func (a Address) GoString() string {
	return "<address:" + hex.EncodeToString(a[:]) + ">"
}

// MarshalText - convert to base58 for JSON
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert from base58 for JSON
func (a *Address) UnmarshalText(s []byte) error {
	v, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*a = v
	return nil
}
