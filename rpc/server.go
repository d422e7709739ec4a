// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/collection"
	"github.com/bitmark-inc/mintauth/ledger"
	"github.com/bitmark-inc/mintauth/message"
	"github.com/bitmark-inc/mintauth/signer"
	"github.com/bitmark-inc/mintauth/stateinit"
)

const (
	readWriteTimeout = 10 * time.Second
	shutdownTimeout  = 5 * time.Second
	maximumBodySize  = 1 << 20
)

// Ledger - the local ledger operations used by the server
//
//go:generate mockgen -destination=mocks/ledger.go -package=mocks github.com/bitmark-inc/mintauth/rpc Ledger
type Ledger interface {
	collection.Inspector
	Account(a address.Address) (*ledger.Account, error)
	Transfer(from address.Address, to address.Address, value coins.Amount, bounce bool, body message.Packed, init *stateinit.StateInit) (uint64, error)
	Drain(limit int) ([]*ledger.Record, error)
	Trace(lt uint64) ([]*ledger.Record, error)
}

// Server - the signer HTTP server
type Server struct {
	log       *logger.L
	signer    *signer.Context
	ledger    Ledger
	limiter   *rate.Limiter
	allow     []*net.IPNet
	listen    []string
	tlsConfig *tls.Config
	start     time.Time
	version   string
	handler   http.Handler
}

// New - create the server; a nil tlsConfig serves plain HTTP
func New(configuration *Configuration, s *signer.Context, l Ledger, tlsConfig *tls.Config, version string) (*Server, error) {
	log := logger.New("rpc")

	allow, err := parseAllow(configuration.LocalAllow)
	if nil != err {
		log.Errorf("invalid local_allow: %s", err)
		return nil, err
	}

	perSecond := configuration.RequestsPerSecond
	if perSecond <= 0 {
		perSecond = DefaultRequestsPerSecond
	}
	burst := configuration.Burst
	if burst <= 0 {
		burst = DefaultBurst
	}
	if burst < signer.MaximumBatch {
		log.Warnf("burst: %d is less than a full batch: %d", burst, signer.MaximumBatch)
	}

	server := &Server{
		log:       log,
		signer:    s,
		ledger:    l,
		limiter:   rate.NewLimiter(rate.Limit(perSecond), burst),
		allow:     allow,
		listen:    configuration.Listen,
		tlsConfig: tlsConfig,
		start:     time.Now(),
		version:   version,
	}
	server.handler = server.router()

	return server, nil
}

// Handler - the routed handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.recoverer)
	r.Use(s.logging)
	r.NotFound(sendNotFound)
	r.MethodNotAllowed(sendMethodNotAllowed)

	r.Get("/health", s.health)

	r.Group(func(r chi.Router) {
		r.Use(s.limit)
		r.Get("/info", s.info)
		r.Post("/sign", s.sign)
		r.Post("/calculate-address", s.calculateAddress)
		r.Post("/verify-deployment", s.verifyDeployment)
	})

	// charged per item
	r.Post("/batch-sign", s.batchSign)

	r.Route("/local", func(r chi.Router) {
		r.Use(s.allowLocal)
		r.Use(s.limit)
		r.Get("/account/{address}", s.localAccount)
		r.Post("/transfer", s.localTransfer)
	})

	return r
}

// Run - background process serving every listen address until shutdown
func (s *Server) Run(args interface{}, shutdown <-chan struct{}) {
	servers := make([]*http.Server, 0, len(s.listen))

	for _, listen := range s.listen {
		if strings.HasPrefix(listen, "*:") {
			// change "*:PORT" to "[::]:PORT"
			// on the assumption that this will listen on tcp4 and tcp6
			listen = "[::]" + listen[1:]
		}

		ln, err := net.Listen("tcp", listen)
		if nil != err {
			s.log.Errorf("listen on: %q error: %s", listen, err)
			continue
		}
		if nil != s.tlsConfig {
			cfg := s.tlsConfig.Clone()
			cfg.NextProtos = []string{"http/1.1"}
			ln = tls.NewListener(ln, cfg)
		}

		srv := &http.Server{
			Handler:        s.handler,
			ReadTimeout:    readWriteTimeout,
			WriteTimeout:   readWriteTimeout,
			MaxHeaderBytes: 1 << 20,
		}
		servers = append(servers, srv)

		s.log.Infof("starting server on: %q  tls: %t", listen, nil != s.tlsConfig)
		go func(srv *http.Server, ln net.Listener, listen string) {
			err := srv.Serve(ln)
			if nil != err && http.ErrServerClosed != err {
				s.log.Errorf("server on: %q error: %s", listen, err)
			}
		}(srv, ln, listen)
	}

	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		_ = srv.Shutdown(ctx)
	}
	s.log.Info("shutdown")
}
