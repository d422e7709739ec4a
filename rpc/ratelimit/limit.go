// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimit - token bucket checks for the signer endpoints
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/mintauth/fault"
)

// Limit - limiting for a single request
func Limit(limiter *rate.Limiter) error {
	if !limiter.Allow() {
		return fault.RateLimiting
	}
	return nil
}

// LimitN - limiting for a multiple request, each item costs one token
func LimitN(limiter *rate.Limiter, count int, maximumCount int) error {
	// invalid count gets limited as a single request
	if count <= 0 || count > maximumCount {
		if !limiter.Allow() {
			return fault.RateLimiting
		}
		return fault.InvalidCount
	}

	if !limiter.AllowN(time.Now(), count) {
		return fault.RateLimiting
	}
	return nil
}
