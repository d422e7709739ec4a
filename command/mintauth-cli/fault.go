// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/mintauth/fault"
)

// common errors - keep in alphabetic order
const (
	ErrAmountIsRequired  = fault.InvalidError("amount is required")
	ErrBatchFileEmpty    = fault.InvalidError("batch file has no items")
	ErrContentIsRequired = fault.InvalidError("one of text or file is required")
	ErrContentTwice      = fault.InvalidError("only one of text or file is allowed")
	ErrFileIsRequired    = fault.InvalidError("file is required")
)
