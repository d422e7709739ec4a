// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/ledger"
	"github.com/bitmark-inc/mintauth/stateinit"
)

type accountReply struct {
	*ledger.Account
	Deployed bool `json:"deployed"`
}

func (s *Server) localAccount(w http.ResponseWriter, r *http.Request) {
	if nil == s.ledger {
		sendError(w, fault.DatabaseIsNotSet)
		return
	}

	a, err := address.FromBase58(chi.URLParam(r, "address"))
	if nil != err {
		sendError(w, err)
		return
	}

	account, err := s.ledger.Account(a)
	if nil != err {
		sendError(w, err)
		return
	}
	sendReply(w, accountReply{
		Account:  account,
		Deployed: account.IsDeployed(),
	})
}

// bounce defaults to true
type transferRequest struct {
	From     address.Address `json:"from"`
	To       address.Address `json:"to"`
	Value    coins.Amount    `json:"value"`
	Bounce   *bool           `json:"bounce,omitempty"`
	Body     []byte          `json:"body"`
	InitCode []byte          `json:"initCode"`
	InitData []byte          `json:"initData"`
}

type transferReply struct {
	Lt           uint64           `json:"lt"`
	Transactions []*ledger.Record `json:"transactions"`
}

func (s *Server) localTransfer(w http.ResponseWriter, r *http.Request) {
	if nil == s.ledger {
		sendError(w, fault.DatabaseIsNotSet)
		return
	}

	var req transferRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.From.IsZero() || req.To.IsZero() {
		sendError(w, fault.InvalidAddress)
		return
	}

	var init *stateinit.StateInit
	if 0 != len(req.InitCode) {
		code, err := stateinit.UnpackCode(req.InitCode)
		if nil != err {
			sendError(w, err)
			return
		}
		init = &stateinit.StateInit{
			Code: code,
			Data: req.InitData,
		}
	}

	bounce := true
	if nil != req.Bounce {
		bounce = *req.Bounce
	}

	lt, err := s.ledger.Transfer(req.From, req.To, req.Value, bounce, req.Body, init)
	if nil != err {
		sendError(w, err)
		return
	}

	// the background runner may have applied some of these already
	_, err = s.ledger.Drain(0)
	if nil != err {
		sendError(w, err)
		return
	}

	records, err := s.ledger.Trace(lt)
	if nil != err {
		sendError(w, err)
		return
	}

	s.log.Infof("transfer: %s -> %s  value: %s  lt: %d  transactions: %d", req.From, req.To, req.Value, lt, len(records))
	sendReply(w, transferReply{
		Lt:           lt,
		Transactions: records,
	})
}
