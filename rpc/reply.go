// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/json"
	"net/http"

	"github.com/bitmark-inc/mintauth/fault"
)

// to compose JSON error messages
type errorBody struct {
	Code    uint32 `json:"code"`
	Message string `json:"message"`
}

type errorReply struct {
	Error errorBody `json:"error"`
}

// send a JSON reply with status OK
func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendStatus(w, http.StatusInternalServerError, fault.ExitFailure, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

// send an error with a status determined by its class
func sendError(w http.ResponseWriter, err error) {
	sendStatus(w, statusOf(err), fault.ExitCode(err), err.Error())
}

// selected errors for the router
func sendNotFound(w http.ResponseWriter, _ *http.Request) {
	sendStatus(w, http.StatusNotFound, fault.ExitFailure, "not found")
}

func sendMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	sendStatus(w, http.StatusMethodNotAllowed, fault.ExitFailure, "method not allowed")
}

// output an error with a JSON body
func sendStatus(w http.ResponseWriter, status int, code uint32, message string) {
	text, err := json.Marshal(errorReply{
		Error: errorBody{
			Code:    code,
			Message: message,
		},
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"error":{"code":1,"message":"internal server error"}}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(text)
}

// map an error class to an HTTP status
func statusOf(err error) int {
	switch {
	case fault.IsErrProtocol(err):
		return http.StatusUnprocessableEntity
	case fault.RateLimiting == err:
		return http.StatusTooManyRequests
	case fault.NotAllowed == err:
		return http.StatusForbidden
	case fault.MessageQueueFull == err, fault.DatabaseIsNotSet == err:
		return http.StatusServiceUnavailable
	case fault.IsErrInvalid(err), fault.IsErrLength(err):
		return http.StatusBadRequest
	case fault.IsErrNotFound(err):
		return http.StatusNotFound
	case fault.IsErrExists(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
