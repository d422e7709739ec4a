// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"net"
	"strings"
)

// defaults for the request limiter
const (
	DefaultRequestsPerSecond = 10
	DefaultBurst             = 20
)

// Configuration - configuration file data for the signer listener
type Configuration struct {
	Listen            []string `gluamapper:"listen" json:"listen"`
	Certificate       string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey        string   `gluamapper:"private_key" json:"private_key"`
	RequestsPerSecond float64  `gluamapper:"requests_per_second" json:"requests_per_second"`
	Burst             int      `gluamapper:"burst" json:"burst"`
	LocalAllow        []string `gluamapper:"local_allow" json:"local_allow"`
}

// create access control list
func parseAllow(addresses []string) ([]*net.IPNet, error) {
	set := make([]*net.IPNet, 0, len(addresses))
	for _, ip := range addresses {
		_, cidr, err := net.ParseCIDR(strings.TrimSpace(ip))
		if nil != err {
			return nil, err
		}
		set = append(set, cidr)
	}
	return set, nil
}
