// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/mintauth/actor"
	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/background"
	"github.com/bitmark-inc/mintauth/collection"
	"github.com/bitmark-inc/mintauth/ledger"
	"github.com/bitmark-inc/mintauth/rpc"
	"github.com/bitmark-inc/mintauth/rpc/certificate"
	"github.com/bitmark-inc/mintauth/signer"
	"github.com/bitmark-inc/mintauth/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	variables := map[string]string{}
	theConfiguration, err := getConfiguration(configurationFile, variables)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}
	address.SetTesting(theConfiguration.Testing)

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	settings, err := theConfiguration.settings()
	if nil != err {
		log.Criticalf("configuration error: %s", err)
		exitwithstatus.Message("configuration error: %s", err)
	}

	// the signer key is needed before anything derived from the collection
	privateKey, err := loadSignerKey(&theConfiguration.Signer)
	if nil != err {
		log.Criticalf("signer key: %q error: %s", theConfiguration.Signer.KeyFile, err)
		exitwithstatus.Message("signer key: %q error: %s", theConfiguration.Signer.KeyFile, err)
	}

	c, adminInit, err := newCollection(settings, privateKey.Public().(ed25519.PublicKey))
	if nil != err {
		log.Criticalf("collection error: %s", err)
		exitwithstatus.Message("collection error: %s", err)
	}
	log.Infof("admin: %s", c.Admin)
	log.Infof("issuer: %s", c.Issuer)
	log.Infof("catalog: %s", c.Catalog)

	s, err := signer.New(privateKey, c, settings.defaultPrice)
	if nil != err {
		log.Criticalf("signer error: %s", err)
		exitwithstatus.Message("signer error: %s", err)
	}

	// start the data storage
	log.Infof("database: %q", theConfiguration.Database.Name)
	err = storage.Initialise(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// the local ledger
	network, err := ledger.New(actor.DefaultFees(), theConfiguration.Ledger.QueueLimit)
	if nil != err {
		log.Criticalf("ledger initialise error: %s", err)
		exitwithstatus.Message("ledger initialise error: %s", err)
	}
	collection.Register(network)

	err = deployCollection(log, network, c, adminInit, settings)
	if nil != err {
		log.Warnf("collection not deployed: %s", err)
	}

	// HTTPS unless no listen addresses
	var tlsConfiguration *tls.Config
	if len(theConfiguration.RPC.Listen) > 0 {
		tlsConfiguration, _, err = certificate.Get(log, "rpc", theConfiguration.RPC.Certificate, theConfiguration.RPC.PrivateKey)
		if nil != err {
			log.Criticalf("rpc certificate error: %s", err)
			exitwithstatus.Message("rpc certificate error: %s", err)
		}
	}

	server, err := rpc.New(&theConfiguration.RPC, s, network, tlsConfiguration, version)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}

	reload, err := newReloader(configurationFile, variables, s)
	if nil != err {
		log.Criticalf("configuration watcher error: %s", err)
		exitwithstatus.Message("configuration watcher error: %s", err)
	}

	processes := background.Processes{
		ledger.NewRunner(network, theConfiguration.Ledger.DrainLimit),
		server,
		reload,
	}
	bg := background.Start(processes, nil)
	defer bg.Stop()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}
