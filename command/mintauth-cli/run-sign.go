// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runSign(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	request, err := makeRequest(c)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", request.Owner)
		fmt.Fprintf(m.e, "content: %d bytes\n", len(request.Content))
	}

	reply, err := m.client.Sign(request)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

type calculateReply struct {
	Address string `json:"pendingIssuanceAddress"`
}

func runCalculateAddress(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	request, err := makeRequest(c)
	if nil != err {
		return err
	}

	a, err := m.client.CalculateAddress(request)
	if nil != err {
		return err
	}

	printJson(m.w, calculateReply{Address: a.String()})
	return nil
}
