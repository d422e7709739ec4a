// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk ledger store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the avaiable tables.
//
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. lt           = logical time as big endian uint64 (8 bytes)
// 4. address      = account address as 32 byte SHA3-256(state init)
// 5. *others*     = byte values of various length
//
// Accounts:
//
//   A ++ address               - account state
//                                data: packed account (balance, status, code, data)
//
// Messages:
//
//   M ++ lt                    - queued messages not yet applied
//                                data: packed message
//
// Transactions:
//
//   T ++ lt                    - applied messages
//                                data: packed transaction record
//   X ++ address ++ lt         - transactions of one account
//                                data: empty
//
// Metadata:
//
//   Z ++ key                   - counters and settings
//                                data: big endian uint64 or bytes
package storage
