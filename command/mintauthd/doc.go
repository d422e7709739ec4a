// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// mintauthd - issuance signer with a local ledger
//
// first time setup:
//
//   export MINTAUTHD_PASSWORD=...
//   mintauthd gen-signer-key DIR
//   mintauthd gen-rpc-cert DIR
//   mintauthd --config-file=DIR/mintauthd.conf collection
//
// then run:
//
//   mintauthd --config-file=DIR/mintauthd.conf
package main
