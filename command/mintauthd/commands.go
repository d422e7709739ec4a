// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/keypair"
	"github.com/bitmark-inc/mintauth/rpc/certificate"
	"github.com/bitmark-inc/mintauth/util"
)

const (
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"
	signerKeyFilename         = defaultSignerKeyFile
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-signer-key", "key":
		keyFilename := getFilenameWithDirectory(arguments, signerKeyFilename)

		if util.EnsureFileExists(keyFilename) {
			fmt.Printf("generate signer key: %q error: %s\n", keyFilename, fault.KeyFileExists)
			exitwithstatus.Exit(1)
		}

		password := os.Getenv(passwordEnvironment)
		if "" == password {
			fmt.Printf("generate signer key: %q error: %s must be set\n", keyFilename, passwordEnvironment)
			exitwithstatus.Exit(1)
		}

		f, _, err := keypair.Generate(password)
		if nil != err {
			fmt.Printf("generate signer key: %q error: %s\n", keyFilename, err)
			exitwithstatus.Exit(1)
		}
		if err := keypair.Save(keyFilename, f); nil != err {
			fmt.Printf("generate signer key: %q error: %s\n", keyFilename, err)
			exitwithstatus.Exit(1)
		}

		fmt.Printf("generated signer key: %q\n", keyFilename)
		fmt.Printf("public key: %s\n", f.PublicKey)

	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := certificate.Generate("rpc", certificateFilename, privateKeyFilename, addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg", "collection", "addresses":
		return false // defer processing until configuration is read

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-signer-key [DIR]       (key)    - create encrypted signer key in: %q\n", "DIR/"+signerKeyFilename)
		fmt.Printf("                                        password is taken from: %s\n", passwordEnvironment)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR]         (rpc)    - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]         - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  collection                 (addresses) - show the collection addresses\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

type addressesReply struct {
	SignerKey   string `json:"signerKey"`
	Admin       string `json:"admin"`
	Issuer      string `json:"issuer"`
	Catalog     string `json:"catalog"`
	PendingCode string `json:"pendingCode"`
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		printJSON(options)

	case "collection", "addresses":
		settings, err := options.settings()
		if nil != err {
			exitwithstatus.Message("error: %s", err)
		}
		publicKey, err := loadSignerPublicKey(&options.Signer)
		if nil != err {
			exitwithstatus.Message("signer key: %q error: %s", options.Signer.KeyFile, err)
		}
		c, _, err := newCollection(settings, publicKey)
		if nil != err {
			exitwithstatus.Message("error: %s", err)
		}
		printJSON(addressesReply{
			SignerKey:   hex.EncodeToString(c.SignerKey),
			Admin:       c.Admin.String(),
			Issuer:      c.Issuer.String(),
			Catalog:     c.Catalog.String(),
			PendingCode: hex.EncodeToString(c.PendingCode.Pack()),
		})

	default: // unknown commands fall through to the main program
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

func printJSON(data interface{}) {
	b, err := json.Marshal(data)
	if nil != err {
		exitwithstatus.Message("error: %s", err)
	}
	var out bytes.Buffer
	_ = json.Indent(&out, b, "", "  ")
	_, _ = out.WriteTo(os.Stdout)
	_, _ = os.Stdout.WriteString("\n")
}

func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
