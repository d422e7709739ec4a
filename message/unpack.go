// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package message

import (
	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/util"
)

// IsTransfer - true for an empty body
func (record Packed) IsTransfer() bool {
	return 0 == len(record)
}

// Tag - the op code without unpacking the fields
//
// an empty body is NullTag, a damaged one InvalidTag
func (record Packed) Tag() TagType {
	if 0 == len(record) {
		return NullTag
	}
	tag, n := util.FromVarint64(record)
	if 0 == n || tag >= uint64(InvalidTag) {
		return InvalidTag
	}
	return TagType(tag)
}

// Unpack - turn a byte slice into a message body
//
// an empty record is a plain transfer and returns nil, nil
// an unknown op code is UnknownOperation; a damaged record is NotMessagePack
func (record Packed) Unpack() (Body, error) {
	if 0 == len(record) {
		return nil, nil
	}

	tag, n := util.FromVarint64(record)
	if 0 == n {
		return nil, fault.NotMessagePack
	}

	r := util.NewReader(record[n:])

	var body Body
	switch TagType(tag) {

	case DeployAndMintTag:
		body = DeployAndMint{
			Signature: r.Bytes(0, maxSignatureLength),
		}

	case MintItemTag:
		body = MintItem{
			QueryId:   r.Varint64(),
			Signature: r.Bytes(0, maxSignatureLength),
		}

	case InternalMintRequestTag:
		m := InternalMintRequest{
			QueryId: r.Varint64(),
			Price:   coins.Amount(r.Varint64()),
		}
		m.Owner = readAddress(r)
		m.Content = r.Bytes(0, maxContentLength)
		m.ActivationTime = r.Varint64()
		body = m

	case AdminClaimTag:
		body = AdminClaim{
			QueryId: r.Varint64(),
		}

	case AdminTogglePolicyTag:
		m := AdminTogglePolicy{
			QueryId: r.Varint64(),
		}
		switch r.Varint64() {
		case 0:
			m.Enabled = false
		case 1:
			m.Enabled = true
		default:
			return nil, fault.NotMessagePack
		}
		body = m

	case AdminSetStartTimeTag:
		body = AdminSetStartTime{
			QueryId:   r.Varint64(),
			StartTime: r.Varint64(),
		}

	case AdminTransferCatalogOwnershipTag:
		m := AdminTransferCatalogOwnership{
			QueryId: r.Varint64(),
		}
		m.NewOwner = readAddress(r)
		body = m

	case IssueAssetTag:
		m := IssueAsset{
			QueryId: r.Varint64(),
		}
		m.Owner = readAddress(r)
		m.Content = r.Bytes(0, maxContentLength)
		body = m

	case ChangeCatalogOwnerTag:
		m := ChangeCatalogOwner{
			QueryId: r.Varint64(),
		}
		m.NewOwner = readAddress(r)
		body = m

	case RefundTag:
		body = Refund{
			QueryId: r.Varint64(),
		}

	case ExcessesTag:
		body = Excesses{
			QueryId: r.Varint64(),
		}

	default:
		return nil, fault.UnknownOperation
	}

	if !r.AtEnd() {
		return nil, fault.NotMessagePack
	}
	return body, nil
}

func readAddress(r *util.Reader) address.Address {
	a := address.Address{}
	copy(a[:], r.Bytes(address.Length, address.Length))
	return a
}
