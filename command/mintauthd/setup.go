// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/mintauth/collection"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/keypair"
	"github.com/bitmark-inc/mintauth/ledger"
	"github.com/bitmark-inc/mintauth/stateinit"
)

// environment variable that overrides signer.password
const passwordEnvironment = "MINTAUTHD_PASSWORD"

func signerPassword(s *SignerType) string {
	if password := os.Getenv(passwordEnvironment); "" != password {
		return password
	}
	return s.Password
}

// read and decrypt the signer key file
func loadSignerKey(s *SignerType) (ed25519.PrivateKey, error) {
	f, err := keypair.Load(s.KeyFile)
	if nil != err {
		return nil, err
	}
	return f.Decrypt(signerPassword(s))
}

// public half of the signer key, no password needed
func loadSignerPublicKey(s *SignerType) (ed25519.PublicKey, error) {
	f, err := keypair.Load(s.KeyFile)
	if nil != err {
		return nil, err
	}
	return f.PublicKeyBytes()
}

// the admin wallet defaults to one owned by the signer key
func newCollection(s *settings, signerKey ed25519.PublicKey) (*collection.Collection, *stateinit.StateInit, error) {
	adminKey := s.adminKey
	if 0 == len(adminKey) {
		adminKey = []byte(signerKey)
	}
	adminInit, err := stateinit.Wallet(adminKey)
	if nil != err {
		return nil, nil, err
	}

	c, err := collection.New(collection.Parameters{
		Admin:       adminInit.Address(),
		SignerKey:   signerKey,
		Gate:        s.gate,
		Pending:     s.pending,
		CatalogSeed: s.catalogSeed,
	})
	if nil != err {
		return nil, nil, err
	}
	return c, adminInit, nil
}

// fund the admin wallet if required then deploy issuer and catalog
func deployCollection(log *logger.L, n *ledger.Network, c *collection.Collection, adminInit *stateinit.StateInit, s *settings) error {
	admin, err := n.Account(c.Admin)
	if nil != err {
		return err
	}

	if !admin.IsDeployed() {
		if 0 == s.adminFunds {
			return fault.UnknownAccount
		}
		log.Infof("funding admin: %s with: %s", c.Admin, s.adminFunds)
		err = n.Fund(c.Admin, adminInit, s.adminFunds)
		if nil != err {
			return err
		}
	}

	return c.Deploy(n, s.issuerValue, s.catalogValue)
}
