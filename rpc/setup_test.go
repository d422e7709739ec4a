// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/mintauth/actor/actortest"
	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/collection"
	"github.com/bitmark-inc/mintauth/pending"
	"github.com/bitmark-inc/mintauth/policy"
	"github.com/bitmark-inc/mintauth/rpc"
	"github.com/bitmark-inc/mintauth/signer"
)

const testingDirName = "testing"

func TestMain(m *testing.M) {
	actortest.SetupTestLogger(testingDirName)
	result := m.Run()
	actortest.TeardownTestLogger(testingDirName)
	os.Exit(result)
}

var (
	signerKey = ed25519.NewKeyFromSeed(bytes.Repeat([]byte{0x5a}, ed25519.SeedSize))
	admin     = address.Address{0x01}
	owner     = address.Address{0x0a, 0x0b}
	content   = []byte("ipfs://QmItem0001/metadata.json")
)

func testSigner(t *testing.T) *signer.Context {
	c, err := collection.New(collection.Parameters{
		Admin:     admin,
		SignerKey: signerKey.Public().(ed25519.PublicKey),
		Gate:      &policy.Toggle{Enabled: true},
		Pending: pending.Parameters{
			BouncePolicy: pending.RefundOnly,
			GasReserve:   pending.DefaultGasReserve,
		},
	})
	if nil != err {
		t.Fatalf("collection error: %s", err)
	}
	s, err := signer.New(signerKey, c, coins.Unit)
	if nil != err {
		t.Fatalf("signer error: %s", err)
	}
	return s
}

// a nil ledger disables the local endpoints
func testServer(t *testing.T, l rpc.Ledger, configuration *rpc.Configuration) (*rpc.Server, *signer.Context) {
	if nil == configuration {
		configuration = &rpc.Configuration{
			Burst:      signer.MaximumBatch,
			LocalAllow: []string{"192.0.2.0/24"},
		}
	}
	s := testSigner(t)
	server, err := rpc.New(configuration, s, l, nil, "test")
	if nil != err {
		t.Fatalf("server error: %s", err)
	}
	return server, s
}

func get(server *rpc.Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	return w
}

func post(server *rpc.Server, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	return w
}

func signRequest(c []byte, price string) string {
	if "" == price {
		return fmt.Sprintf(`{"ownerAccount":%q,"content":%q}`, owner.String(), base64.StdEncoding.EncodeToString(c))
	}
	return fmt.Sprintf(`{"ownerAccount":%q,"content":%q,"price":%q}`, owner.String(), base64.StdEncoding.EncodeToString(c), price)
}

type errorReply struct {
	Error struct {
		Code    uint32 `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorReply {
	var reply errorReply
	err := json.Unmarshal(w.Body.Bytes(), &reply)
	if nil != err {
		t.Fatalf("error reply: %q decode error: %s", w.Body.String(), err)
	}
	return reply
}
