// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/pending"
	"github.com/bitmark-inc/mintauth/policy"
	"github.com/bitmark-inc/mintauth/rpc/ratelimit"
	"github.com/bitmark-inc/mintauth/signer"
)

type healthReply struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	sendReply(w, healthReply{
		Status: "ok",
		Uptime: time.Since(s.start).Truncate(time.Second).String(),
	})
}

type policyReply struct {
	Kind      string `json:"kind"`
	Enabled   bool   `json:"enabled"`
	StartTime uint64 `json:"startTime,omitempty"`
}

type pendingCodeReply struct {
	Name         string       `json:"name"`
	Version      uint64       `json:"version"`
	BouncePolicy string       `json:"bouncePolicy"`
	GasReserve   coins.Amount `json:"gasReserve"`
	Hash         string       `json:"hash"`
}

type infoReply struct {
	Version      string           `json:"version"`
	Uptime       string           `json:"uptime"`
	PublicKey    string           `json:"publicKey"`
	Admin        address.Address  `json:"admin"`
	Issuer       address.Address  `json:"issuer"`
	Catalog      address.Address  `json:"catalog"`
	Policy       policyReply      `json:"policy"`
	DefaultPrice coins.Amount     `json:"defaultPrice"`
	PendingCode  pendingCodeReply `json:"pendingCode"`
	Issued       uint64           `json:"issued"`
	Signed       uint64           `json:"signed"`
}

func (s *Server) info(w http.ResponseWriter, r *http.Request) {
	c := s.signer.Collection()

	// prefer the live gate from the ledger over the configured one
	gate := c.Gate
	issued := uint64(0)
	if nil != s.ledger {
		record, err := c.IssuerRecord(s.ledger)
		if nil == err {
			gate = record.Gate
			issued = record.IssuedCount
		} else {
			s.log.Debugf("issuer record: %s", err)
		}
	}

	p := policyReply{
		Kind: gate.String(),
	}
	switch g := gate.(type) {
	case *policy.Toggle:
		p.Kind = "toggle"
		p.Enabled = g.Enabled
	case *policy.TimeGate:
		p.Enabled = g.CanMint(uint64(time.Now().Unix()))
		p.StartTime = g.StartTime
	}

	parameters, err := pending.CodeParameters(c.PendingCode)
	if nil != err {
		sendError(w, err)
		return
	}
	codeHash := sha3.Sum256(c.PendingCode.Pack())

	sendReply(w, infoReply{
		Version:   s.version,
		Uptime:    time.Since(s.start).Truncate(time.Second).String(),
		PublicKey: hex.EncodeToString(s.signer.PublicKey()),
		Admin:     c.Admin,
		Issuer:    c.Issuer,
		Catalog:   c.Catalog,
		Policy:    p,
		PendingCode: pendingCodeReply{
			Name:         c.PendingCode.Name,
			Version:      c.PendingCode.Version,
			BouncePolicy: parameters.BouncePolicy.String(),
			GasReserve:   parameters.GasReserve,
			Hash:         hex.EncodeToString(codeHash[:]),
		},
		DefaultPrice: s.signer.DefaultPrice(),
		Issued:       issued,
		Signed:       s.signer.Signed(),
	})
}

func (s *Server) sign(w http.ResponseWriter, r *http.Request) {
	var req signer.Request
	if !s.decode(w, r, &req) {
		return
	}

	a, err := s.signer.Sign(&req)
	if nil != err {
		sendError(w, err)
		return
	}
	sendReply(w, a)
}

type batchRequest struct {
	Items []*signer.Request `json:"items"`
}

func (s *Server) batchSign(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !s.decode(w, r, &req) {
		return
	}

	err := ratelimit.LimitN(s.limiter, len(req.Items), signer.MaximumBatch)
	switch {
	case fault.InvalidCount == err && 0 == len(req.Items):
		sendError(w, fault.MissingParameters)
		return
	case fault.InvalidCount == err:
		sendError(w, fault.BatchTooLarge)
		return
	case nil != err:
		sendError(w, err)
		return
	}

	result, err := s.signer.BatchSign(req.Items)
	if nil != err {
		sendError(w, err)
		return
	}
	sendReply(w, result)
}

type addressReply struct {
	Address address.Address `json:"address"`
}

func (s *Server) calculateAddress(w http.ResponseWriter, r *http.Request) {
	var req signer.Request
	if !s.decode(w, r, &req) {
		return
	}

	a, err := s.signer.CalculateAddress(&req)
	if nil != err {
		sendError(w, err)
		return
	}
	sendReply(w, addressReply{Address: a})
}

type verifyRequest struct {
	Address address.Address `json:"address"`
}

type verifyReply struct {
	Address  address.Address `json:"address"`
	Deployed bool            `json:"deployed"`
}

func (s *Server) verifyDeployment(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !s.decode(w, r, &req) {
		return
	}
	if nil == s.ledger {
		sendError(w, fault.DatabaseIsNotSet)
		return
	}

	deployed, err := s.signer.VerifyDeployment(chainView{ledger: s.ledger}, req.Address)
	if nil != err {
		sendError(w, err)
		return
	}
	sendReply(w, verifyReply{
		Address:  req.Address,
		Deployed: deployed,
	})
}

// read a size limited JSON body, replying with an error on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, maximumBodySize)
	err := json.NewDecoder(body).Decode(v)
	if nil != err {
		s.log.Debugf("decode %s error: %s", r.URL.Path, err)
		sendStatus(w, http.StatusBadRequest, fault.ExitFailure, fault.InvalidRequest.Error()+": "+err.Error())
		return false
	}
	return true
}

// signer.Chain on top of the ledger
type chainView struct {
	ledger Ledger
}

func (c chainView) IsDeployed(a address.Address) (bool, error) {
	account, err := c.ledger.Account(a)
	if nil != err {
		return false, err
	}
	return account.IsDeployed(), nil
}
