// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/policy"
)

func TestToggle(t *testing.T) {
	g := &policy.Toggle{Enabled: false}
	assert.False(t, g.CanMint(0), "disabled gate open")
	assert.Equal(t, fault.MintDisabled, policy.Check(g, 12345), "wrong rejection")

	g.Enabled = true
	assert.True(t, g.CanMint(0), "enabled gate closed")
	assert.Nil(t, policy.Check(g, 12345), "enabled gate rejected")
}

func TestTimeGate(t *testing.T) {
	g := &policy.TimeGate{StartTime: 1000}
	assert.Equal(t, fault.NotYetActive, policy.Check(g, 999), "early mint accepted")
	assert.Nil(t, policy.Check(g, 1000), "mint at start rejected")
	assert.Nil(t, policy.Check(g, 1001), "late mint rejected")
}

func TestPackUnpack(t *testing.T) {
	gates := []policy.Gate{
		&policy.Toggle{Enabled: true},
		&policy.Toggle{Enabled: false},
		&policy.TimeGate{StartTime: 1700000000},
	}
	for _, g := range gates {
		back, err := policy.Unpack(g.Pack())
		assert.Nil(t, err, "%s: unpack error", g)
		assert.Equal(t, g, back, "%s: gate changed", g)
	}

	_, err := policy.Unpack([]byte{0x09, 0x00})
	assert.Equal(t, fault.InvalidGateKind, err, "unknown kind accepted")

	_, err = policy.Unpack([]byte{0x01, 0x02})
	assert.Equal(t, fault.InvalidGateKind, err, "toggle value 2 accepted")

	_, err = policy.Unpack([]byte{0x01})
	assert.Equal(t, fault.InvalidGateKind, err, "truncated gate accepted")
}

func TestNew(t *testing.T) {
	g, err := policy.New("start-time", false, 55)
	assert.Nil(t, err, "start-time error")
	assert.Equal(t, &policy.TimeGate{StartTime: 55}, g, "wrong gate")

	g, err = policy.New("toggle", true, 0)
	assert.Nil(t, err, "toggle error")
	assert.Equal(t, &policy.Toggle{Enabled: true}, g, "wrong gate")

	_, err = policy.New("sometimes", true, 0)
	assert.Equal(t, fault.InvalidGateKind, err, "bad kind accepted")
}
