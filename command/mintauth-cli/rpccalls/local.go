// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/ledger"
)

// AccountReply - ledger account state
type AccountReply struct {
	ledger.Account
	Deployed bool `json:"deployed"`
}

// TransferArguments - an external message into the local ledger
type TransferArguments struct {
	From     address.Address `json:"from"`
	To       address.Address `json:"to"`
	Value    coins.Amount    `json:"value"`
	Bounce   *bool           `json:"bounce,omitempty"`
	Body     []byte          `json:"body,omitempty"`
	InitCode []byte          `json:"initCode,omitempty"`
	InitData []byte          `json:"initData,omitempty"`
}

// TransferReply - the transactions caused by a transfer
type TransferReply struct {
	Lt           uint64           `json:"lt"`
	Transactions []*ledger.Record `json:"transactions"`
}

// Account - fetch an account from the local ledger
func (client *Client) Account(a address.Address) (*AccountReply, error) {
	var reply AccountReply
	if err := client.get("/local/account/"+a.String(), &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Transfer - send value and an optional body through the local ledger
func (client *Client) Transfer(arguments *TransferArguments) (*TransferReply, error) {
	var reply TransferReply
	if err := client.post("/local/transfer", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
