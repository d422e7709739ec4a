// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Local errors are string singletons grouped by class so that callers
// can compare directly or test the class with the IsErr… functions.
//
// Contract rejections are *ProtocolError values carrying a numeric
// code; the code is recorded as the exit code of the transaction and
// returned to HTTP clients, so it must stay stable.
package fault
