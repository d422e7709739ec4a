// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/mintauth/actor"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/stateinit"
)

// wallet - plain user account, accepts every inbound message
//
// outbound transfers from a wallet are made with Network.Transfer
type wallet struct {
	publicKey []byte
}

func newWallet(code stateinit.Code, data []byte) (actor.Actor, error) {
	if stateinit.WalletCodeName != code.Name {
		return nil, fault.InvalidCodeTemplate
	}
	return &wallet{
		publicKey: data,
	}, nil
}

func (w *wallet) Receive(ctx actor.Context, in *actor.Inbound) error {
	if in.Bounced {
		ctx.Log().Debugf("%s: bounced %s returned: %s", ctx.Self(), in.Body.Tag(), in.Value)
	} else {
		ctx.Log().Debugf("%s: %s from: %s  value: %s", ctx.Self(), in.Body.Tag(), in.Sender, in.Value)
	}
	return nil
}

func (w *wallet) Pack() []byte {
	return w.publicKey
}
