// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/command/mintauth-cli/rpccalls"
)

type metadata struct {
	client  *rpccalls.Client
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "mintauth-cli"
	app.Usage = "client for the mintauthd issuance signer"
	app.Version = version
	app.HideVersion = true
	app.Metadata = make(map[string]interface{})

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2160",
			EnvVar: "MINTAUTH_CONNECT",
			Usage:  " mintauthd `HOST:PORT` or URL",
		},
		cli.BoolFlag{
			Name:  "insecure, k",
			Usage: " do not verify the server certificate",
		},
		cli.BoolFlag{
			Name:  "testnet, t",
			Usage: " use test network addresses",
		},
	}

	requestFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "owner, o",
			Value: "",
			Usage: "*account to receive the item `ACCOUNT`",
		},
		cli.StringFlag{
			Name:  "text, x",
			Value: "",
			Usage: "+item content `STRING`",
		},
		cli.StringFlag{
			Name:  "file, f",
			Value: "",
			Usage: "+`FILE` of item content",
		},
		cli.StringFlag{
			Name:  "price, p",
			Value: "",
			Usage: " mint price `AMOUNT` [server default]",
		},
		cli.Uint64Flag{
			Name:  "activation, a",
			Value: 0,
			Usage: " earliest mint time `UNIX-SECONDS`",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:   "health",
			Usage:  "check that mintauthd is running",
			Action: runHealth,
		},
		{
			Name:   "info",
			Usage:  "display signer and collection details",
			Action: runInfo,
		},
		{
			Name:      "sign",
			Usage:     "authorize minting of one item",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags:     requestFlags,
			Action:    runSign,
		},
		{
			Name:      "calculate-address",
			Usage:     "show the pending issuance address of an item",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags:     requestFlags,
			Action:    runCalculateAddress,
		},
		{
			Name:      "batch-sign",
			Usage:     "authorize minting of several items",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*JSON `FILE` of items",
				},
			},
			Action: runBatchSign,
		},
		{
			Name:      "verify-deployment",
			Usage:     "check whether a contract is deployed",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: "*contract `ACCOUNT`",
				},
			},
			Action: runVerifyDeployment,
		},
		{
			Name:      "account",
			Usage:     "display an account of the local ledger",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: "*`ACCOUNT` to display",
				},
			},
			Action: runAccount,
		},
		{
			Name:      "transfer",
			Usage:     "send a message through the local ledger",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "from, f",
					Value: "",
					Usage: "*sending `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "to, t",
					Value: "",
					Usage: "*receiving `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "value, a",
					Value: "",
					Usage: "*value to attach `AMOUNT`",
				},
				cli.BoolFlag{
					Name:  "no-bounce, n",
					Usage: " do not bounce on failure",
				},
				cli.StringFlag{
					Name:  "body, b",
					Value: "",
					Usage: " message body `HEX`",
				},
				cli.StringFlag{
					Name:  "init-code",
					Value: "",
					Usage: " packed code to deploy `HEX`",
				},
				cli.StringFlag{
					Name:  "init-data",
					Value: "",
					Usage: " initial data of deployed code `HEX`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:  "version",
			Usage: "display mintauth-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// connection only, nothing is sent until a command runs
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		address.SetTesting(c.GlobalBool("testnet"))

		connect := c.GlobalString("connect")
		if verbose {
			fmt.Fprintf(e, "connect: %q\n", connect)
		}

		client, err := rpccalls.NewClient(connect, c.GlobalBool("insecure"), verbose, e)
		if nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			client:  client,
			verbose: verbose,
			e:       e,
			w:       w,
		}
		return nil
	}

	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if ok {
			m.client.Close()
		}
		return nil
	}

	return app
}
