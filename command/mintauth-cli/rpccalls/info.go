// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/coins"
)

// HealthReply - liveness of mintauthd
type HealthReply struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// PolicyReply - the mint gate of the issuer
type PolicyReply struct {
	Kind      string `json:"kind"`
	Enabled   bool   `json:"enabled"`
	StartTime uint64 `json:"startTime,omitempty"`
}

// PendingCodeReply - the pending issuance template
type PendingCodeReply struct {
	Name         string       `json:"name"`
	Version      uint64       `json:"version"`
	BouncePolicy string       `json:"bouncePolicy"`
	GasReserve   coins.Amount `json:"gasReserve"`
	Hash         string       `json:"hash"`
}

// InfoReply - signer and collection details
type InfoReply struct {
	Version      string           `json:"version"`
	Uptime       string           `json:"uptime"`
	PublicKey    string           `json:"publicKey"`
	Admin        address.Address  `json:"admin"`
	Issuer       address.Address  `json:"issuer"`
	Catalog      address.Address  `json:"catalog"`
	Policy       PolicyReply      `json:"policy"`
	DefaultPrice coins.Amount     `json:"defaultPrice"`
	PendingCode  PendingCodeReply `json:"pendingCode"`
	Issued       uint64           `json:"issued"`
	Signed       uint64           `json:"signed"`
}

// Health - check mintauthd is running
func (client *Client) Health() (*HealthReply, error) {
	var reply HealthReply
	if err := client.get("/health", &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Info - request the signer details
func (client *Client) Info() (*InfoReply, error) {
	var reply InfoReply
	if err := client.get("/info", &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
