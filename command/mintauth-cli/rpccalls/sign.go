// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/signer"
)

type batchArguments struct {
	Items []*signer.Request `json:"items"`
}

type addressReply struct {
	Address address.Address `json:"address"`
}

type verifyArguments struct {
	Address address.Address `json:"address"`
}

// VerifyReply - deployment state of an address
type VerifyReply struct {
	Address  address.Address `json:"address"`
	Deployed bool            `json:"deployed"`
}

// Sign - obtain a mint authorization for one item
func (client *Client) Sign(request *signer.Request) (*signer.Authorization, error) {
	var reply signer.Authorization
	if err := client.post("/sign", request, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// BatchSign - obtain authorizations for several items, all or nothing
func (client *Client) BatchSign(requests []*signer.Request) ([]*signer.Authorization, error) {
	var reply []*signer.Authorization
	if err := client.post("/batch-sign", batchArguments{Items: requests}, &reply); nil != err {
		return nil, err
	}
	return reply, nil
}

// CalculateAddress - the pending issuance address of an item without signing
func (client *Client) CalculateAddress(request *signer.Request) (address.Address, error) {
	var reply addressReply
	if err := client.post("/calculate-address", request, &reply); nil != err {
		return address.Address{}, err
	}
	return reply.Address, nil
}

// VerifyDeployment - check whether a contract exists at an address
func (client *Client) VerifyDeployment(a address.Address) (*VerifyReply, error) {
	var reply VerifyReply
	if err := client.post("/verify-deployment", verifyArguments{Address: a}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
