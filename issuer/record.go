// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package issuer

import (
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/policy"
	"github.com/bitmark-inc/mintauth/stateinit"
	"github.com/bitmark-inc/mintauth/util"
)

// code identification
const (
	CodeName    = "issuer"
	CodeVersion = 1
)

// Code - code template of an issuer
var Code = stateinit.Code{
	Name:    CodeName,
	Version: CodeVersion,
}

const maxCodeLength = 2048

// Record - stored data of an issuer
type Record struct {
	Admin       address.Address
	Catalog     address.Address
	SignerKey   []byte
	Gate        policy.Gate
	PendingCode stateinit.Code
	IssuedCount uint64
}

// StateInit - deployable issuer
func StateInit(record *Record) *stateinit.StateInit {
	return &stateinit.StateInit{
		Code: Code,
		Data: record.Pack(),
	}
}

// Pack - Bytes(admin) Bytes(catalog) Bytes(signerKey) gate
// Bytes(pendingCode) Varint(issuedCount)
func (record *Record) Pack() []byte {
	buffer := util.AppendBytes(nil, record.Admin[:])
	buffer = util.AppendBytes(buffer, record.Catalog[:])
	buffer = util.AppendBytes(buffer, record.SignerKey)
	buffer = append(buffer, record.Gate.Pack()...)
	buffer = util.AppendBytes(buffer, record.PendingCode.Pack())
	return util.AppendVarint64(buffer, record.IssuedCount)
}

// UnpackRecord - reverse of Record.Pack
func UnpackRecord(buffer []byte) (*Record, error) {
	r := util.NewReader(buffer)

	record := &Record{}
	copy(record.Admin[:], r.Bytes(address.Length, address.Length))
	copy(record.Catalog[:], r.Bytes(address.Length, address.Length))
	record.SignerKey = r.Bytes(ed25519.PublicKeySize, ed25519.PublicKeySize)
	gate, err := policy.Read(r)
	if nil != err {
		return nil, err
	}
	record.Gate = gate
	codeBytes := r.Bytes(1, maxCodeLength)
	record.IssuedCount = r.Varint64()
	if !r.AtEnd() {
		return nil, fault.NotStatePack
	}

	code, err := stateinit.UnpackCode(codeBytes)
	if nil != err {
		return nil, err
	}
	record.PendingCode = code
	return record, nil
}
