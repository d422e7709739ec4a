// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/message"
	"github.com/bitmark-inc/mintauth/stateinit"
	"github.com/bitmark-inc/mintauth/util"
)

// Message - a queued value carrying message
//
// Value is what the destination receives; the forward fee was already
// taken when the message was created
type Message struct {
	Lt          uint64
	Source      address.Address
	Destination address.Address
	Value       coins.Amount
	Bounce      bool
	Bounced     bool
	External    bool
	Body        message.Packed
	StateInit   *stateinit.StateInit
}

// flag bits
const (
	bounceFlag   = 0x01
	bouncedFlag  = 0x02
	externalFlag = 0x04
)

const (
	maxBodyLength      = 4096
	maxStateInitLength = 16384
)

// Pack - Varint(lt) Bytes(source) Bytes(destination) Varint(value) Varint(flags)
// Bytes(body) Varint(hasInit) [Bytes(stateInit)]
func (m *Message) Pack() []byte {
	flags := uint64(0)
	if m.Bounce {
		flags |= bounceFlag
	}
	if m.Bounced {
		flags |= bouncedFlag
	}
	if m.External {
		flags |= externalFlag
	}
	buffer := util.ToVarint64(m.Lt)
	buffer = util.AppendBytes(buffer, m.Source[:])
	buffer = util.AppendBytes(buffer, m.Destination[:])
	buffer = util.AppendVarint64(buffer, m.Value.Uint64())
	buffer = util.AppendVarint64(buffer, flags)
	buffer = util.AppendBytes(buffer, m.Body)
	if nil == m.StateInit {
		return util.AppendVarint64(buffer, 0)
	}
	buffer = util.AppendVarint64(buffer, 1)
	return util.AppendBytes(buffer, m.StateInit.Pack())
}

// unpackMessage - reverse of Message.Pack
func unpackMessage(buffer []byte) (*Message, error) {
	r := util.NewReader(buffer)
	m := &Message{
		Lt: r.Varint64(),
	}
	copy(m.Source[:], r.Bytes(address.Length, address.Length))
	copy(m.Destination[:], r.Bytes(address.Length, address.Length))
	m.Value = coins.Amount(r.Varint64())
	flags := r.Varint64()
	m.Body = r.Bytes(0, maxBodyLength)
	hasInit := r.Varint64()
	var initBytes []byte
	if 1 == hasInit {
		initBytes = r.Bytes(1, maxStateInitLength)
	}
	if !r.AtEnd() || hasInit > 1 {
		return nil, fault.NotMessagePack
	}
	if nil != initBytes {
		s, err := stateinit.Unpack(initBytes)
		if nil != err {
			return nil, err
		}
		m.StateInit = s
	}
	m.Bounce = 0 != flags&bounceFlag
	m.Bounced = 0 != flags&bouncedFlag
	m.External = 0 != flags&externalFlag
	return m, nil
}

// big endian lt so that pool order is queue order
func ltKey(lt uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, lt)
	return key
}

func accountLtKey(a address.Address, lt uint64) []byte {
	key := make([]byte, 0, address.Length+8)
	key = append(key, a[:]...)
	return append(key, ltKey(lt)...)
}
