// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/mintauth/actor/actortest"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/rpc/certificate"
)

const testingDirName = "testing"

func TestMain(m *testing.M) {
	actortest.SetupTestLogger(testingDirName)
	result := m.Run()
	actortest.TeardownTestLogger(testingDirName)
	os.Exit(result)
}

func TestGenerateAndGet(t *testing.T) {
	dir, err := ioutil.TempDir("", "certificate")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	cer := filepath.Join(dir, "rpc.crt")
	key := filepath.Join(dir, "rpc.key")

	err = certificate.Generate("test", cer, key, []string{"localhost"})
	assert.Nil(t, err, "wrong Generate")

	err = certificate.Generate("test", cer, key, nil)
	assert.Equal(t, fault.CertificateFileExists, err, "overwrote certificate")

	tlsConfig, fingerprint, err := certificate.Get(logger.New(actortest.LogCategory), "test", cer, key)
	assert.Nil(t, err, "wrong Get")

	pair, _ := tls.LoadX509KeyPair(cer, key)

	assert.Equal(t, sha3.Sum256(pair.Certificate[0]), fingerprint, "wrong fingerprint")
	assert.Equal(t, pair.Certificate, tlsConfig.Certificates[0].Certificate, "wrong config")
}

func TestGetMissingFiles(t *testing.T) {
	_, _, err := certificate.Get(logger.New(actortest.LogCategory), "test", "/nonexistent/rpc.crt", "/nonexistent/rpc.key")
	assert.Equal(t, fault.KeyFileNotFound, err, "wrong error")
}
