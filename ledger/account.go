// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/stateinit"
	"github.com/bitmark-inc/mintauth/util"
)

// Status - lifecycle of an account
type Status uint64

// account states
const (
	// never seen
	Nonexistent = Status(0)

	// holds value but has no code
	Uninitialised = Status(1)

	// deployed
	Active = Status(2)
)

const (
	maxCodeLength = 2048
	maxDataLength = 1 << 20
)

// Account - stored state of one address
type Account struct {
	Address address.Address `json:"address"`
	Status  Status          `json:"status"`
	Balance coins.Amount    `json:"balance"`
	LastLt  uint64          `json:"lastLt"`
	Code    stateinit.Code  `json:"code"`
	Data    []byte          `json:"-"`
}

func (s Status) String() string {
	switch s {
	case Nonexistent:
		return "nonexistent"
	case Uninitialised:
		return "uninitialised"
	case Active:
		return "active"
	default:
		return "invalid"
	}
}

// MarshalText - status name for JSON
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText - status from its name
func (s *Status) UnmarshalText(b []byte) error {
	for _, v := range []Status{Nonexistent, Uninitialised, Active} {
		if v.String() == string(b) {
			*s = v
			return nil
		}
	}
	return fault.InvalidStructPointer
}

// IsDeployed - true once code is installed
func (account *Account) IsDeployed() bool {
	return Active == account.Status
}

// Pack - Varint(status) Varint(balance) Varint(lastLt) [Bytes(code) Bytes(data)]
func (account *Account) Pack() []byte {
	buffer := util.ToVarint64(uint64(account.Status))
	buffer = util.AppendVarint64(buffer, account.Balance.Uint64())
	buffer = util.AppendVarint64(buffer, account.LastLt)
	if Active == account.Status {
		buffer = util.AppendBytes(buffer, account.Code.Pack())
		buffer = util.AppendBytes(buffer, account.Data)
	}
	return buffer
}

// unpackAccount - reverse of Account.Pack
func unpackAccount(a address.Address, buffer []byte) (*Account, error) {
	r := util.NewReader(buffer)
	account := &Account{
		Address: a,
		Status:  Status(r.Varint64()),
		Balance: coins.Amount(r.Varint64()),
		LastLt:  r.Varint64(),
	}
	switch account.Status {
	case Uninitialised:
	case Active:
		codeBytes := r.Bytes(1, maxCodeLength)
		account.Data = r.Bytes(0, maxDataLength)
		if !r.OK() {
			return nil, fault.NotStatePack
		}
		code, err := stateinit.UnpackCode(codeBytes)
		if nil != err {
			return nil, err
		}
		account.Code = code
	default:
		return nil, fault.NotStatePack
	}
	if !r.AtEnd() {
		return nil, fault.NotStatePack
	}
	return account, nil
}
