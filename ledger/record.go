// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/message"
	"github.com/bitmark-inc/mintauth/util"
)

// Record - the outcome of applying one message
type Record struct {
	Lt         uint64          `json:"lt"`
	Now        uint64          `json:"now"`
	Account    address.Address `json:"account"`
	Source     address.Address `json:"source"`
	Op         message.TagType `json:"op"`
	InValue    coins.Amount    `json:"inValue"`
	Bounced    bool            `json:"bounced"`
	Deployed   bool            `json:"deployed"`
	Success    bool            `json:"success"`
	ExitCode   uint32          `json:"exitCode"`
	Error      string          `json:"error,omitempty"`
	ComputeFee coins.Amount    `json:"computeFee"`
	Balance    coins.Amount    `json:"balance"`
	Out        []Outgoing      `json:"out"`
}

// Outgoing - summary of a message created by a transaction
type Outgoing struct {
	Lt          uint64          `json:"lt"`
	Destination address.Address `json:"destination"`
	Value       coins.Amount    `json:"value"`
	ForwardFee  coins.Amount    `json:"forwardFee"`
	Bounce      bool            `json:"bounce"`
	Bounced     bool            `json:"bounced"`
	Op          message.TagType `json:"op"`
}

const maxErrorLength = 256

// Pack - binary form for the transaction pool
func (record *Record) Pack() []byte {
	buffer := util.ToVarint64(record.Lt)
	buffer = util.AppendVarint64(buffer, record.Now)
	buffer = util.AppendBytes(buffer, record.Account[:])
	buffer = util.AppendBytes(buffer, record.Source[:])
	buffer = util.AppendVarint64(buffer, uint64(record.Op))
	buffer = util.AppendVarint64(buffer, record.InValue.Uint64())
	buffer = util.AppendVarint64(buffer, flags(record.Bounced, record.Deployed, record.Success))
	buffer = util.AppendVarint64(buffer, uint64(record.ExitCode))
	buffer = util.AppendBytes(buffer, []byte(record.Error))
	buffer = util.AppendVarint64(buffer, record.ComputeFee.Uint64())
	buffer = util.AppendVarint64(buffer, record.Balance.Uint64())
	buffer = util.AppendVarint64(buffer, uint64(len(record.Out)))
	for _, out := range record.Out {
		buffer = util.AppendVarint64(buffer, out.Lt)
		buffer = util.AppendBytes(buffer, out.Destination[:])
		buffer = util.AppendVarint64(buffer, out.Value.Uint64())
		buffer = util.AppendVarint64(buffer, out.ForwardFee.Uint64())
		buffer = util.AppendVarint64(buffer, flags(out.Bounce, out.Bounced))
		buffer = util.AppendVarint64(buffer, uint64(out.Op))
	}
	return buffer
}

// unpackRecord - reverse of Record.Pack
func unpackRecord(buffer []byte) (*Record, error) {
	r := util.NewReader(buffer)
	record := &Record{
		Lt:  r.Varint64(),
		Now: r.Varint64(),
	}
	copy(record.Account[:], r.Bytes(address.Length, address.Length))
	copy(record.Source[:], r.Bytes(address.Length, address.Length))
	record.Op = message.TagType(r.Varint64())
	record.InValue = coins.Amount(r.Varint64())
	f := r.Varint64()
	record.Bounced = 0 != f&0x01
	record.Deployed = 0 != f&0x02
	record.Success = 0 != f&0x04
	record.ExitCode = uint32(r.Varint64())
	record.Error = string(r.Bytes(0, maxErrorLength))
	record.ComputeFee = coins.Amount(r.Varint64())
	record.Balance = coins.Amount(r.Varint64())
	count := r.Varint64()
	if !r.OK() || count > uint64(len(buffer)) {
		return nil, fault.NotStatePack
	}
	for i := uint64(0); i < count; i += 1 {
		out := Outgoing{
			Lt: r.Varint64(),
		}
		copy(out.Destination[:], r.Bytes(address.Length, address.Length))
		out.Value = coins.Amount(r.Varint64())
		out.ForwardFee = coins.Amount(r.Varint64())
		f := r.Varint64()
		out.Bounce = 0 != f&0x01
		out.Bounced = 0 != f&0x02
		out.Op = message.TagType(r.Varint64())
		record.Out = append(record.Out, out)
	}
	if !r.AtEnd() {
		return nil, fault.NotStatePack
	}
	return record, nil
}

// Chain - the records caused by the message with lt, in order
func Chain(records []*Record, lt uint64) []*Record {
	caused := map[uint64]struct{}{
		lt: {},
	}
	result := make([]*Record, 0, len(records))
	for _, record := range records {
		if _, ok := caused[record.Lt]; !ok {
			continue
		}
		result = append(result, record)
		for _, out := range record.Out {
			caused[out.Lt] = struct{}{}
		}
	}
	return result
}

// pack booleans as bits, first argument is bit 0
func flags(bits ...bool) uint64 {
	f := uint64(0)
	for i, b := range bits {
		if b {
			f |= 1 << uint(i)
		}
	}
	return f
}

// error text for a failed transaction
func errorText(err error) string {
	if nil == err {
		return ""
	}
	s := err.Error()
	if len(s) > maxErrorLength {
		return s[:maxErrorLength]
	}
	return s
}
