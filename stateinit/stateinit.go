// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package stateinit - code template and initial data of an account
//
// the account address is the SHA3-256 of the packed state init so any
// party holding the same code and initial data computes the same
// address before deployment
package stateinit

import (
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/util"
)

// byte sizes for various fields
const (
	maxNameLength       = 64
	maxParametersLength = 1024
	maxCodeLength       = 2048
	maxDataLength       = 8192
)

// Code - identifies the behaviour of an account
//
// Parameters are part of the code, so the same program with different
// parameters has a different address
type Code struct {
	Name       string `json:"name"`
	Version    uint64 `json:"version"`
	Parameters []byte `json:"parameters"`
}

// StateInit - code and initial data
type StateInit struct {
	Code Code   `json:"code"`
	Data []byte `json:"data"`
}

// Pack - Bytes(name) Varint(version) Bytes(parameters)
func (code Code) Pack() []byte {
	buffer := util.AppendBytes(nil, []byte(code.Name))
	buffer = util.AppendVarint64(buffer, code.Version)
	return util.AppendBytes(buffer, code.Parameters)
}

// UnpackCode - reverse of Code.Pack
func UnpackCode(buffer []byte) (Code, error) {
	r := util.NewReader(buffer)
	name := r.Bytes(1, maxNameLength)
	version := r.Varint64()
	parameters := r.Bytes(0, maxParametersLength)
	if !r.AtEnd() {
		return Code{}, fault.InvalidCodeTemplate
	}
	return Code{
		Name:       string(name),
		Version:    version,
		Parameters: parameters,
	}, nil
}

// Pack - Varint(len code) code Varint(len data) data
func (s *StateInit) Pack() []byte {
	buffer := util.AppendBytes(nil, s.Code.Pack())
	return util.AppendBytes(buffer, s.Data)
}

// Unpack - reverse of StateInit.Pack
func Unpack(buffer []byte) (*StateInit, error) {
	r := util.NewReader(buffer)
	codeBytes := r.Bytes(1, maxCodeLength)
	data := r.Bytes(0, maxDataLength)
	if !r.AtEnd() {
		return nil, fault.NotStatePack
	}
	code, err := UnpackCode(codeBytes)
	if nil != err {
		return nil, err
	}
	return &StateInit{
		Code: code,
		Data: data,
	}, nil
}

// Address - content address of this state init
func (s *StateInit) Address() address.Address {
	return address.Address(sha3.Sum256(s.Pack()))
}

// Matches - true if the state init derives to the given address
func (s *StateInit) Matches(a address.Address) bool {
	return s.Address() == a
}
