// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/mintauth/background"
)

type ticker struct {
	count   int64
	stopped bool
}

func (state *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	step := args.(int64)
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(time.Millisecond):
			atomic.AddInt64(&state.count, step)
		}
	}
	state.stopped = true
}

func TestBackground(t *testing.T) {
	proc1 := &ticker{}
	proc2 := &ticker{}

	p := background.Start(background.Processes{proc1, proc2}, int64(3))
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	// Stop waits for Run to return
	assert.True(t, proc1.stopped, "process 1 did not stop")
	assert.True(t, proc2.stopped, "process 2 did not stop")
	assert.True(t, atomic.LoadInt64(&proc1.count) > 0, "process 1 did not run")
	assert.Equal(t, int64(0), atomic.LoadInt64(&proc2.count)%3, "wrong step")
}

func TestStopNil(t *testing.T) {
	var p *background.T
	p.Stop()
}
