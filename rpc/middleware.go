// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/rpc/ratelimit"
)

const requestIDHeader = "X-Request-Id"

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if "" == id {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); nil != rec {
				s.log.Criticalf("%s %s panic: %v", r.Method, r.URL.Path, rec)
				sendStatus(w, http.StatusInternalServerError, fault.ExitFailure, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		id := w.Header().Get(requestIDHeader)
		if rec.status >= http.StatusBadRequest {
			s.log.Warnf("%s %s %s from: %s status: %d in: %s", id, r.Method, r.URL.Path, r.RemoteAddr, rec.status, time.Since(start))
			return
		}
		s.log.Debugf("%s %s %s from: %s status: %d in: %s", id, r.Method, r.URL.Path, r.RemoteAddr, rec.status, time.Since(start))
	})
}

// one token per request
func (s *Server) limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := ratelimit.Limit(s.limiter)
		if nil != err {
			sendError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// only clients inside local_allow
func (s *Server) allowLocal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.isAllowed(r.RemoteAddr) {
			s.log.Warnf("deny access: %q to: %s", r.RemoteAddr, r.URL.Path)
			sendError(w, fault.NotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) isAllowed(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if nil != err {
		host = remoteAddr
	}
	ip := net.ParseIP(host)
	if nil == ip {
		return false
	}
	for _, cidr := range s.allow {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}
