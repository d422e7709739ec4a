// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runHealth(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	reply, err := m.client.Health()
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	reply, err := m.client.Info()
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}
