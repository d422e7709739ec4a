// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/mintauth/actor"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/configuration"
	"github.com/bitmark-inc/mintauth/ledger"
	"github.com/bitmark-inc/mintauth/pending"
	"github.com/bitmark-inc/mintauth/policy"
	"github.com/bitmark-inc/mintauth/rpc"
	"github.com/bitmark-inc/mintauth/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultSignerKeyFile   = "signer.json"
	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "mintauth"

	defaultLogDirectory = "log"
	defaultLogFile      = "mintauthd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultDefaultPrice  = "1"
	defaultIssuerValue   = "0.05"
	defaultCatalogValue  = "0.05"
	defaultGasReserve    = "0.15"
	defaultBouncePolicy  = "refund-only"
	defaultGate          = "toggle"
	defaultDrainLimit    = 1000
	defaultLocalAllowLAN = "127.0.0.1/32"
)

// path expanded or calculated defaults
var (
	defaultLogLevels = map[string]string{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - leveldb location
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// SignerType - the signer key file and pricing
type SignerType struct {
	KeyFile      string `gluamapper:"key_file" json:"key_file"`
	Password     string `gluamapper:"password" json:"-"`
	DefaultPrice string `gluamapper:"default_price" json:"default_price"`
}

// CollectionType - the values that fix the collection addresses
type CollectionType struct {
	AdminKey     string `gluamapper:"admin_key" json:"admin_key"`
	Gate         string `gluamapper:"gate" json:"gate"`
	Enabled      bool   `gluamapper:"enabled" json:"enabled"`
	StartTime    uint64 `gluamapper:"start_time" json:"start_time"`
	BouncePolicy string `gluamapper:"bounce_policy" json:"bounce_policy"`
	GasReserve   string `gluamapper:"gas_reserve" json:"gas_reserve"`
	CatalogSeed  uint64 `gluamapper:"catalog_seed" json:"catalog_seed"`
	IssuerValue  string `gluamapper:"issuer_value" json:"issuer_value"`
	CatalogValue string `gluamapper:"catalog_value" json:"catalog_value"`
}

// LedgerType - the local ledger
type LedgerType struct {
	QueueLimit int    `gluamapper:"queue_limit" json:"queue_limit"`
	DrainLimit int    `gluamapper:"drain_limit" json:"drain_limit"`
	AdminFunds string `gluamapper:"admin_funds" json:"admin_funds"`
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string               `gluamapper:"pidfile" json:"pidfile"`
	Testing       bool                 `gluamapper:"testing" json:"testing"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Signer        SignerType           `gluamapper:"signer" json:"signer"`
	Collection    CollectionType       `gluamapper:"collection" json:"collection"`
	Ledger        LedgerType           `gluamapper:"ledger" json:"ledger"`
	RPC           rpc.Configuration    `gluamapper:"rpc" json:"rpc"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// values derived from the configuration strings
type settings struct {
	adminKey     []byte
	gate         policy.Gate
	pending      pending.Parameters
	defaultPrice coins.Amount
	issuerValue  coins.Amount
	catalogValue coins.Amount
	adminFunds   coins.Amount
	catalogSeed  uint64
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		Signer: SignerType{
			KeyFile:      defaultSignerKeyFile,
			DefaultPrice: defaultDefaultPrice,
		},

		Collection: CollectionType{
			Gate:         defaultGate,
			Enabled:      true,
			BouncePolicy: defaultBouncePolicy,
			GasReserve:   defaultGasReserve,
			IssuerValue:  defaultIssuerValue,
			CatalogValue: defaultCatalogValue,
		},

		Ledger: LedgerType{
			QueueLimit: ledger.DefaultQueueLimit,
			DrainLimit: defaultDrainLimit,
			AdminFunds: "0",
		},

		RPC: rpc.Configuration{
			Certificate:       defaultCertificateFile,
			PrivateKey:        defaultKeyFile,
			RequestsPerSecond: rpc.DefaultRequestsPerSecond,
			Burst:             rpc.DefaultBurst,
			LocalAllow:        []string{defaultLocalAllowLAN},
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Signer.KeyFile,
		&options.RPC.Certificate,
		&options.RPC.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.PidFile {
		options.PidFile = util.EnsureAbsolute(options.DataDirectory, options.PidFile)
	}

	// fail if any of these are not simple file names
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("files: %q is not plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		if err := os.MkdirAll(*d, 0o700); nil != err {
			return nil, err
		}
	}

	// reject bad values before anything starts
	if _, err := options.settings(); nil != err {
		return nil, err
	}

	return options, nil
}

// convert the text values
func (options *Configuration) settings() (*settings, error) {
	s := &settings{
		catalogSeed: options.Collection.CatalogSeed,
	}

	if "" != options.Collection.AdminKey {
		key, err := hex.DecodeString(options.Collection.AdminKey)
		if nil != err {
			return nil, fmt.Errorf("collection.admin_key: %s", err)
		}
		s.adminKey = key
	}

	gate, err := policy.New(options.Collection.Gate, options.Collection.Enabled, options.Collection.StartTime)
	if nil != err {
		return nil, fmt.Errorf("collection.gate: %q: %s", options.Collection.Gate, err)
	}
	s.gate = gate

	bouncePolicy, err := pending.ParseBouncePolicy(options.Collection.BouncePolicy)
	if nil != err {
		return nil, fmt.Errorf("collection.bounce_policy: %q: %s", options.Collection.BouncePolicy, err)
	}
	s.pending.BouncePolicy = bouncePolicy

	amounts := []struct {
		name  string
		text  string
		value *coins.Amount
	}{
		{"collection.gas_reserve", options.Collection.GasReserve, &s.pending.GasReserve},
		{"collection.issuer_value", options.Collection.IssuerValue, &s.issuerValue},
		{"collection.catalog_value", options.Collection.CatalogValue, &s.catalogValue},
		{"signer.default_price", options.Signer.DefaultPrice, &s.defaultPrice},
		{"ledger.admin_funds", options.Ledger.AdminFunds, &s.adminFunds},
	}
	for _, a := range amounts {
		value, err := coins.Parse(a.text)
		if nil != err {
			return nil, fmt.Errorf("%s: %q: %s", a.name, a.text, err)
		}
		*a.value = value
	}
	if 0 == s.defaultPrice {
		return nil, fmt.Errorf("signer.default_price: must be positive")
	}
	if s.pending.GasReserve < actor.DefaultFees().MinimumReserve {
		return nil, fmt.Errorf("collection.gas_reserve: %s is below the minimum reserve", s.pending.GasReserve)
	}

	return s, nil
}
