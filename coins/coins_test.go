// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coins_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/fault"
)

func TestParse(t *testing.T) {
	tests := []struct {
		text   string
		amount coins.Amount
		err    error
	}{
		{"0", 0, nil},
		{"1", coins.Unit, nil},
		{"0.15", 150000000, nil},
		{"2.000000001", 2000000001, nil},
		{"0.0000000001", 0, fault.InvalidAmount},
		{"-1", 0, fault.InvalidAmount},
		{"abc", 0, fault.InvalidAmount},
		{"18446744073.709551616", 0, fault.AmountOverflow},
	}

	for i, item := range tests {
		a, err := coins.Parse(item.text)
		assert.Equal(t, item.err, err, "%d: wrong error for %q", i, item.text)
		assert.Equal(t, item.amount, a, "%d: wrong amount for %q", i, item.text)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "0.15", coins.Amount(150000000).String(), "wrong fraction")
	assert.Equal(t, "2", (2 * coins.Unit).String(), "wrong whole")
	assert.Equal(t, "0", coins.Amount(0).String(), "wrong zero")
}

func TestCheckedArithmetic(t *testing.T) {
	_, err := coins.Amount(1).Sub(2)
	assert.Equal(t, fault.AmountUnderflow, err, "underflow not detected")

	_, err = coins.Amount(^uint64(0)).Add(1)
	assert.Equal(t, fault.AmountOverflow, err, "overflow not detected")

	v, err := coins.Unit.Sub(coins.MustParse("0.25"))
	assert.Nil(t, err, "unexpected error")
	assert.Equal(t, coins.MustParse("0.75"), v, "wrong difference")
}

func TestJSON(t *testing.T) {
	item := struct {
		Price coins.Amount `json:"price"`
	}{
		Price: coins.MustParse("1.5"),
	}
	b, err := json.Marshal(item)
	assert.Nil(t, err, "marshal error")
	assert.Equal(t, `{"price":"1.5"}`, string(b), "wrong JSON")

	item.Price = 0
	err = json.Unmarshal([]byte(`{"price":"0.001"}`), &item)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, coins.Amount(1000000), item.Price, "wrong value")
}
