// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runVerifyDeployment(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	a, err := checkAccount(c, "address")
	if nil != err {
		return err
	}

	reply, err := m.client.VerifyDeployment(a)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func runAccount(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	a, err := checkAccount(c, "address")
	if nil != err {
		return err
	}

	reply, err := m.client.Account(a)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}
