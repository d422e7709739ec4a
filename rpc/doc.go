// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - HTTPS JSON interface to the issuance signer
//
// public endpoints:
//
//   GET  /health
//   GET  /info
//   POST /sign
//   POST /batch-sign
//   POST /calculate-address
//   POST /verify-deployment
//
// local ledger endpoints, only for clients in the local_allow list:
//
//   GET  /local/account/{address}
//   POST /local/transfer
//
// every error reply is {"error":{"code":N,"message":"..."}} where N is
// the protocol exit code for ledger rejections and 1 otherwise
package rpc
