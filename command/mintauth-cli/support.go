// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/signer"
)

// a required account flag
func checkAccount(c *cli.Context, name string) (address.Address, error) {
	s := strings.TrimSpace(c.String(name))
	if "" == s {
		return address.Address{}, fmt.Errorf("%s: %s", name, fault.MissingParameters)
	}
	a, err := address.FromBase58(s)
	if nil != err {
		return address.Address{}, fmt.Errorf("%s: %s", name, err)
	}
	return a, nil
}

// an optional hex flag
func checkHex(c *cli.Context, name string) ([]byte, error) {
	s := strings.TrimSpace(c.String(name))
	if "" == s {
		return nil, nil
	}
	b, err := hex.DecodeString(s)
	if nil != err {
		return nil, fmt.Errorf("%s: %s", name, err)
	}
	return b, nil
}

// build a signing request from the common request flags
func makeRequest(c *cli.Context) (*signer.Request, error) {

	owner, err := checkAccount(c, "owner")
	if nil != err {
		return nil, err
	}

	text := c.String("text")
	file := c.String("file")

	var content []byte
	switch {
	case "" != text && "" != file:
		return nil, ErrContentTwice
	case "" != text:
		content = []byte(text)
	case "" != file:
		content, err = ioutil.ReadFile(file)
		if nil != err {
			return nil, err
		}
	default:
		return nil, ErrContentIsRequired
	}

	request := &signer.Request{
		Owner:          owner,
		Content:        content,
		ActivationTime: c.Uint64("activation"),
	}

	if s := c.String("price"); "" != s {
		price, err := coins.Parse(s)
		if nil != err {
			return nil, fmt.Errorf("price: %s", err)
		}
		request.Price = &price
	}
	return request, nil
}
