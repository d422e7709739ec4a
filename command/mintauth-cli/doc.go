// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// mintauth-cli - command line client for mintauthd
//
// the server is selected with --connect or MINTAUTH_CONNECT, e.g.
//
//   mintauth-cli --connect=127.0.0.1:2160 --insecure info
//   mintauth-cli sign --owner=ACCOUNT --text='item metadata'
//   mintauth-cli batch-sign --file=items.json
//
// a batch file is a JSON array of items:
//
//   [
//     {"owner": "ACCOUNT", "content": "first", "price": "1.5"},
//     {"owner": "ACCOUNT", "content": "second"}
//   ]
package main
