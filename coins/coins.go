// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package coins - native value amounts
//
// amounts are held as an unsigned count of nano-units; the text form
// is a decimal number of whole units
package coins

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/mintauth/fault"
)

// Decimals - number of decimal places in one unit
const Decimals = 9

// Nano - the smallest amount
const Nano = Amount(1)

// Unit - one whole unit
const Unit = Amount(1000000000)

// Amount - count of nano-units
type Amount uint64

var unitScale = decimal.New(1, Decimals)

// Parse - convert a decimal string of units, e.g. "0.15"
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if nil != err {
		return 0, fault.InvalidAmount
	}
	if d.IsNegative() {
		return 0, fault.InvalidAmount
	}
	nano := d.Mul(unitScale)
	if !nano.Equal(nano.Truncate(0)) {
		return 0, fault.InvalidAmount
	}
	n := nano.BigInt()
	if !n.IsUint64() {
		return 0, fault.AmountOverflow
	}
	return Amount(n.Uint64()), nil
}

// MustParse - for constants and tests
func MustParse(s string) Amount {
	a, err := Parse(s)
	if nil != err {
		panic("coins: " + s + ": " + err.Error())
	}
	return a
}

// String - decimal units without trailing zeros
func (a Amount) String() string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(a)), -Decimals).String()
}

// Uint64 - raw nano-unit count
func (a Amount) Uint64() uint64 {
	return uint64(a)
}

// Add - checked addition
func (a Amount) Add(b Amount) (Amount, error) {
	if a > math.MaxUint64-b {
		return 0, fault.AmountOverflow
	}
	return a + b, nil
}

// Sub - checked subtraction, a negative result is an error
func (a Amount) Sub(b Amount) (Amount, error) {
	if b > a {
		return 0, fault.AmountUnderflow
	}
	return a - b, nil
}

// MarshalText - decimal units as JSON string
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - decimal units from JSON string
func (a *Amount) UnmarshalText(s []byte) error {
	v, err := Parse(string(s))
	if nil != err {
		return err
	}
	*a = v
	return nil
}
