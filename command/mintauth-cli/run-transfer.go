// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/command/mintauth-cli/rpccalls"
)

func runTransfer(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	from, err := checkAccount(c, "from")
	if nil != err {
		return err
	}
	to, err := checkAccount(c, "to")
	if nil != err {
		return err
	}

	s := c.String("value")
	if "" == s {
		return ErrAmountIsRequired
	}
	value, err := coins.Parse(s)
	if nil != err {
		return fmt.Errorf("value: %s", err)
	}

	arguments := &rpccalls.TransferArguments{
		From:  from,
		To:    to,
		Value: value,
	}
	if c.Bool("no-bounce") {
		bounce := false
		arguments.Bounce = &bounce
	}

	arguments.Body, err = checkHex(c, "body")
	if nil != err {
		return err
	}
	arguments.InitCode, err = checkHex(c, "init-code")
	if nil != err {
		return err
	}
	arguments.InitData, err = checkHex(c, "init-data")
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "%s -> %s  value: %s\n", from, to, value)
	}

	reply, err := m.client.Transfer(arguments)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}
