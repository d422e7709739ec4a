// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/issuer"
	"github.com/bitmark-inc/mintauth/ledger"
	"github.com/bitmark-inc/mintauth/policy"
	"github.com/bitmark-inc/mintauth/rpc"
	"github.com/bitmark-inc/mintauth/rpc/mocks"
	"github.com/bitmark-inc/mintauth/signer"
)

func TestNewRejectsBadAllowList(t *testing.T) {
	_, err := rpc.New(&rpc.Configuration{LocalAllow: []string{"not-a-cidr"}}, testSigner(t), nil, nil, "test")
	assert.NotNil(t, err, "bad CIDR accepted")
}

func TestHealth(t *testing.T) {
	server, _ := testServer(t, nil, nil)

	w := get(server, "/health")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status")
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"), "wrong content type")
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"), "missing request id")

	var reply struct {
		Status string `json:"status"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &reply)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, "ok", reply.Status, "wrong health")
}

func TestRequestIDIsEchoed(t *testing.T) {
	server, _ := testServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-Id"), "request id not echoed")
}

func TestUnknownRoute(t *testing.T) {
	server, _ := testServer(t, nil, nil)

	w := get(server, "/nowhere")
	assert.Equal(t, http.StatusNotFound, w.Code, "wrong status")
	assert.Equal(t, fault.ExitFailure, decodeError(t, w).Error.Code, "wrong code")

	w = get(server, "/sign")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code, "wrong status")
}

type infoReply struct {
	PublicKey    string          `json:"publicKey"`
	Issuer       address.Address `json:"issuer"`
	DefaultPrice coins.Amount    `json:"defaultPrice"`
	Issued       uint64          `json:"issued"`
	Policy       struct {
		Kind    string `json:"kind"`
		Enabled bool   `json:"enabled"`
	} `json:"policy"`
	PendingCode struct {
		Name         string `json:"name"`
		BouncePolicy string `json:"bouncePolicy"`
	} `json:"pendingCode"`
}

func TestInfoWithoutIssuer(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	l := mocks.NewMockLedger(ctl)
	server, s := testServer(t, l, nil)
	c := s.Collection()

	l.EXPECT().Inspect(c.Issuer).Return(nil, fault.UnknownAccount).Times(1)

	w := get(server, "/info")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status")

	var reply infoReply
	err := json.Unmarshal(w.Body.Bytes(), &reply)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, hex.EncodeToString(s.PublicKey()), reply.PublicKey, "wrong public key")
	assert.Equal(t, c.Issuer, reply.Issuer, "wrong issuer")
	assert.Equal(t, coins.Unit, reply.DefaultPrice, "wrong default price")
	assert.Equal(t, "toggle", reply.Policy.Kind, "wrong policy")
	assert.True(t, reply.Policy.Enabled, "configured gate not reported")
	assert.Equal(t, "pending-issuance", reply.PendingCode.Name, "wrong code name")
	assert.Equal(t, "refund-only", reply.PendingCode.BouncePolicy, "wrong bounce policy")
}

func TestInfoFromLedger(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	l := mocks.NewMockLedger(ctl)
	server, s := testServer(t, l, nil)
	c := s.Collection()

	record := &issuer.Record{
		Admin:       c.Admin,
		Catalog:     c.Catalog,
		SignerKey:   c.SignerKey,
		Gate:        &policy.Toggle{Enabled: false},
		PendingCode: c.PendingCode,
		IssuedCount: 3,
	}
	minter, err := issuer.New(issuer.Code, record.Pack())
	if nil != err {
		t.Fatalf("issuer error: %s", err)
	}

	l.EXPECT().Inspect(c.Issuer).Return(minter, nil).Times(1)

	w := get(server, "/info")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status")

	var reply infoReply
	err = json.Unmarshal(w.Body.Bytes(), &reply)
	assert.Nil(t, err, "decode error")
	assert.False(t, reply.Policy.Enabled, "live gate not reported")
	assert.Equal(t, uint64(3), reply.Issued, "wrong issued count")
}

func TestSign(t *testing.T) {
	server, s := testServer(t, nil, nil)

	w := post(server, "/sign", signRequest(content, "1.5"))
	assert.Equal(t, http.StatusOK, w.Code, "wrong status: %s", w.Body.String())

	var actual signer.Authorization
	err := json.Unmarshal(w.Body.Bytes(), &actual)
	assert.Nil(t, err, "decode error")

	price := coins.MustParse("1.5")
	expected, err := s.Sign(&signer.Request{
		Owner:   owner,
		Content: content,
		Price:   &price,
	})
	assert.Nil(t, err, "direct sign error")
	assert.Equal(t, *expected, actual, "wrong authorization")
	assert.Equal(t, uint64(2), s.Signed(), "wrong signed count")
}

func TestSignErrors(t *testing.T) {
	server, _ := testServer(t, nil, nil)

	items := []struct {
		body    string
		status  int
		message string
	}{
		{signRequest(nil, ""), http.StatusBadRequest, "missing parameters"},
		{signRequest(content, "0"), http.StatusBadRequest, "invalid amount"},
		{signRequest([]byte(strings.Repeat("x", 3000)), ""), http.StatusBadRequest, "content too long"},
		{`{"ownerAccount":"bad","content":"aGk="}`, http.StatusBadRequest, "invalid request"},
		{`{`, http.StatusBadRequest, "invalid request"},
	}

	for i, item := range items {
		w := post(server, "/sign", item.body)
		assert.Equal(t, item.status, w.Code, "%d: wrong status", i)
		reply := decodeError(t, w)
		assert.Equal(t, fault.ExitFailure, reply.Error.Code, "%d: wrong code", i)
		assert.True(t, strings.HasPrefix(reply.Error.Message, item.message), "%d: wrong message: %q", i, reply.Error.Message)
	}
}

func TestBatchSign(t *testing.T) {
	server, _ := testServer(t, nil, nil)

	body := fmt.Sprintf(`{"items":[%s,%s]}`, signRequest([]byte("item one"), ""), signRequest([]byte("item two"), "2"))
	w := post(server, "/batch-sign", body)
	assert.Equal(t, http.StatusOK, w.Code, "wrong status: %s", w.Body.String())

	var reply []signer.Authorization
	err := json.Unmarshal(w.Body.Bytes(), &reply)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, 2, len(reply), "wrong count")
	assert.NotEqual(t, reply[0].PendingIssuanceAddress, reply[1].PendingIssuanceAddress, "same address for different content")
	assert.Equal(t, coins.Unit, reply[0].Price, "default price not used")
	assert.Equal(t, 2*coins.Unit, reply[1].Price, "explicit price not used")
}

func TestBatchSignLimits(t *testing.T) {
	server, _ := testServer(t, nil, nil)

	w := post(server, "/batch-sign", `{"items":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status")
	assert.Equal(t, "missing parameters", decodeError(t, w).Error.Message, "wrong message")

	items := make([]string, signer.MaximumBatch+1)
	for i := range items {
		items[i] = signRequest([]byte(fmt.Sprintf("item %d", i)), "")
	}
	w = post(server, "/batch-sign", `{"items":[`+strings.Join(items, ",")+`]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status")
	assert.Equal(t, "batch too large", decodeError(t, w).Error.Message, "wrong message")

	// one bad item fails the whole batch
	body := fmt.Sprintf(`{"items":[%s,%s]}`, signRequest([]byte("good"), ""), signRequest(nil, ""))
	w = post(server, "/batch-sign", body)
	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status")
	assert.Equal(t, "missing parameters", decodeError(t, w).Error.Message, "wrong message")
}

func TestCalculateAddress(t *testing.T) {
	server, s := testServer(t, nil, nil)

	w := post(server, "/calculate-address", signRequest(content, ""))
	assert.Equal(t, http.StatusOK, w.Code, "wrong status: %s", w.Body.String())

	var reply struct {
		Address address.Address `json:"address"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &reply)
	assert.Nil(t, err, "decode error")

	expected, err := s.CalculateAddress(&signer.Request{Owner: owner, Content: content})
	assert.Nil(t, err, "direct error")
	assert.Equal(t, expected, reply.Address, "wrong address")
	assert.Equal(t, uint64(0), s.Signed(), "calculate must not sign")
}

func TestRateLimiting(t *testing.T) {
	server, _ := testServer(t, nil, &rpc.Configuration{
		RequestsPerSecond: 0.001,
		Burst:             1,
	})

	w := post(server, "/calculate-address", signRequest(content, ""))
	assert.Equal(t, http.StatusOK, w.Code, "first request limited")

	w = post(server, "/calculate-address", signRequest(content, ""))
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "second request not limited")
	assert.Equal(t, "rate limiting", decodeError(t, w).Error.Message, "wrong message")

	// health is never limited
	w = get(server, "/health")
	assert.Equal(t, http.StatusOK, w.Code, "health limited")
}

func TestVerifyDeployment(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	l := mocks.NewMockLedger(ctl)
	server, _ := testServer(t, l, nil)

	deployed := address.Address{0x33}
	undeployed := address.Address{0x44}
	l.EXPECT().Account(deployed).Return(&ledger.Account{Address: deployed, Status: ledger.Active}, nil).Times(1)
	l.EXPECT().Account(undeployed).Return(&ledger.Account{Address: undeployed, Status: ledger.Uninitialised}, nil).Times(1)

	items := []struct {
		a        address.Address
		deployed bool
	}{
		{deployed, true},
		{undeployed, false},
	}
	for i, item := range items {
		w := post(server, "/verify-deployment", fmt.Sprintf(`{"address":%q}`, item.a.String()))
		assert.Equal(t, http.StatusOK, w.Code, "%d: wrong status", i)

		var reply struct {
			Deployed bool `json:"deployed"`
		}
		err := json.Unmarshal(w.Body.Bytes(), &reply)
		assert.Nil(t, err, "%d: decode error", i)
		assert.Equal(t, item.deployed, reply.Deployed, "%d: wrong deployed", i)
	}

	w := post(server, "/verify-deployment", fmt.Sprintf(`{"address":%q}`, address.Zero.String()))
	assert.Equal(t, http.StatusBadRequest, w.Code, "zero address accepted")
}

func TestVerifyDeploymentWithoutLedger(t *testing.T) {
	server, _ := testServer(t, nil, nil)

	w := post(server, "/verify-deployment", fmt.Sprintf(`{"address":%q}`, owner.String()))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, "wrong status")
}
