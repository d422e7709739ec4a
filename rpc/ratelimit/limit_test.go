// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/rpc/ratelimit"
)

func TestLimit(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(0.001), 2)

	assert.Nil(t, ratelimit.Limit(limiter), "first request limited")
	assert.Nil(t, ratelimit.Limit(limiter), "second request limited")
	assert.Equal(t, fault.RateLimiting, ratelimit.Limit(limiter), "burst not enforced")
}

func TestLimitN(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(0.001), 10)

	assert.Equal(t, fault.InvalidCount, ratelimit.LimitN(limiter, 0, 5), "zero count")
	assert.Equal(t, fault.InvalidCount, ratelimit.LimitN(limiter, 6, 5), "count above maximum")
	assert.Nil(t, ratelimit.LimitN(limiter, 5, 5), "five tokens available")
	assert.Equal(t, fault.RateLimiting, ratelimit.LimitN(limiter, 5, 5), "only three tokens left")
	assert.Nil(t, ratelimit.LimitN(limiter, 3, 5), "three tokens left")
}
