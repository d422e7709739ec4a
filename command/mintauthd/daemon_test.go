// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/mintauth/actor"
	"github.com/bitmark-inc/mintauth/actor/actortest"
	"github.com/bitmark-inc/mintauth/background"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/collection"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/keypair"
	"github.com/bitmark-inc/mintauth/ledger"
	"github.com/bitmark-inc/mintauth/signer"
	"github.com/bitmark-inc/mintauth/stateinit"
	"github.com/bitmark-inc/mintauth/storage"
)

const testPassword = "correct horse battery staple"

func testSettings(t *testing.T, dir string, fileName string) (*Configuration, *settings) {
	options, err := getConfiguration(fileName, map[string]string{"data_directory": dir})
	if nil != err {
		t.Fatalf("configuration error: %s", err)
	}
	s, err := options.settings()
	if nil != err {
		t.Fatalf("settings error: %s", err)
	}
	return options, s
}

func TestLoadSignerKey(t *testing.T) {
	dir, fileName, _ := setupDirectory(t, "1")
	defer os.RemoveAll(dir)
	options, _ := testSettings(t, dir, fileName)

	f, privateKey, err := keypair.Generate(testPassword)
	if nil != err {
		t.Fatalf("generate error: %s", err)
	}
	err = keypair.Save(options.Signer.KeyFile, f)
	assert.Nil(t, err, "save error")

	_, err = loadSignerKey(&options.Signer)
	assert.Equal(t, fault.InvalidPassword, err, "configured password accepted")

	os.Setenv(passwordEnvironment, testPassword)
	defer os.Unsetenv(passwordEnvironment)

	key, err := loadSignerKey(&options.Signer)
	assert.Nil(t, err, "load error")
	assert.Equal(t, privateKey, key, "wrong key")

	publicKey, err := loadSignerPublicKey(&options.Signer)
	assert.Nil(t, err, "public key error")
	assert.Equal(t, privateKey.Public(), publicKey, "wrong public key")

	options.Signer.KeyFile = filepath.Join(dir, "missing.json")
	_, err = loadSignerKey(&options.Signer)
	assert.Equal(t, fault.KeyFileNotFound, err, "missing file")
}

func TestNewCollectionAdmin(t *testing.T) {
	dir, fileName, _ := setupDirectory(t, "1")
	defer os.RemoveAll(dir)
	_, s := testSettings(t, dir, fileName)

	signerKey := ed25519.NewKeyFromSeed(make([]byte, ed25519.SeedSize)).Public().(ed25519.PublicKey)

	c, adminInit, err := newCollection(s, signerKey)
	assert.Nil(t, err, "collection error")
	expected, _ := stateinit.WalletAddress(signerKey)
	assert.Equal(t, expected, c.Admin, "admin is not the signer wallet")
	assert.Equal(t, c.Admin, adminInit.Address(), "admin init mismatch")

	adminKey := ed25519.NewKeyFromSeed(append(make([]byte, ed25519.SeedSize-1), 1)).Public().(ed25519.PublicKey)
	s.adminKey = adminKey
	c2, _, err := newCollection(s, signerKey)
	assert.Nil(t, err, "collection error")
	expected, _ = stateinit.WalletAddress(adminKey)
	assert.Equal(t, expected, c2.Admin, "configured admin ignored")
	assert.NotEqual(t, c.Issuer, c2.Issuer, "issuer must depend on admin")

	s.adminKey = []byte{1, 2, 3}
	_, _, err = newCollection(s, signerKey)
	assert.Equal(t, fault.InvalidPublicKey, err, "short admin key accepted")
}

func TestDeployCollection(t *testing.T) {
	dir, fileName, _ := setupDirectory(t, "1")
	defer os.RemoveAll(dir)
	_, s := testSettings(t, dir, fileName)

	err := storage.InitialiseMemory()
	if nil != err {
		t.Fatalf("storage error: %s", err)
	}
	defer storage.Finalise()

	n, err := ledger.New(actor.DefaultFees(), 0)
	if nil != err {
		t.Fatalf("ledger error: %s", err)
	}
	collection.Register(n)

	signerKey := ed25519.NewKeyFromSeed(make([]byte, ed25519.SeedSize)).Public().(ed25519.PublicKey)
	c, adminInit, err := newCollection(s, signerKey)
	if nil != err {
		t.Fatalf("collection error: %s", err)
	}

	log := logger.New(actortest.LogCategory)

	funds := s.adminFunds
	s.adminFunds = 0
	err = deployCollection(log, n, c, adminInit, s)
	assert.Equal(t, fault.UnknownAccount, err, "deployed without admin funds")

	s.adminFunds = funds
	err = deployCollection(log, n, c, adminInit, s)
	assert.Nil(t, err, "deploy error")

	issuer, err := n.Account(c.Issuer)
	assert.Nil(t, err, "issuer account error")
	assert.True(t, issuer.IsDeployed(), "issuer not deployed")

	record, err := c.CatalogRecord(n)
	assert.Nil(t, err, "catalog record error")
	assert.Equal(t, c.Issuer, record.Owner, "catalog not handed over")

	// second start leaves everything alone
	err = deployCollection(log, n, c, adminInit, s)
	assert.Nil(t, err, "redeploy error")
}

func TestReloadDefaultPrice(t *testing.T) {
	dir, fileName, variables := setupDirectory(t, "1")
	defer os.RemoveAll(dir)
	_, s := testSettings(t, dir, fileName)

	privateKey := ed25519.NewKeyFromSeed(make([]byte, ed25519.SeedSize))
	c, _, err := newCollection(s, privateKey.Public().(ed25519.PublicKey))
	if nil != err {
		t.Fatalf("collection error: %s", err)
	}
	ctx, err := signer.New(privateKey, c, s.defaultPrice)
	if nil != err {
		t.Fatalf("signer error: %s", err)
	}

	r, err := newReloader(fileName, variables, ctx)
	if nil != err {
		t.Fatalf("reloader error: %s", err)
	}
	bg := background.Start(background.Processes{r}, nil)
	defer bg.Stop()

	// a broken price is ignored
	writeConfiguration(t, fileName, "zero")
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, coins.Unit, ctx.DefaultPrice(), "bad price applied")

	writeConfiguration(t, fileName, "2.5")
	expected := coins.MustParse("2.5")
	for i := 0; i < 40 && expected != ctx.DefaultPrice(); i += 1 {
		time.Sleep(50 * time.Millisecond)
	}
	assert.Equal(t, expected, ctx.DefaultPrice(), "price not reloaded")
}
