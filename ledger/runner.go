// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"time"
)

// interval between queue checks when nothing signals
const runnerInterval = 5 * time.Second

// Runner - background process delivering queued messages
type Runner struct {
	network *Network
	limit   int
}

// NewRunner - process for background.Start, limit caps each drain
func NewRunner(network *Network, limit int) *Runner {
	return &Runner{
		network: network,
		limit:   limit,
	}
}

// Run - drain on every wake up until shutdown
func (r *Runner) Run(args interface{}, shutdown <-chan struct{}) {
	log := r.network.log
	log.Info("runner: starting…")

	ticker := time.NewTicker(runnerInterval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-r.network.Wake():
		case <-ticker.C:
		}

		records, err := r.network.Drain(r.limit)
		if nil != err {
			log.Errorf("runner: drain error: %s", err)
		} else if len(records) > 0 {
			log.Debugf("runner: applied: %d", len(records))
		}
	}
	log.Info("runner: shutdown")
}
