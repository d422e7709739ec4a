// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package message

import (
	"github.com/bitmark-inc/mintauth/util"
)

// Pack - DeployAndMint
func (m DeployAndMint) Pack() Packed {
	buffer := util.ToVarint64(uint64(DeployAndMintTag))
	return util.AppendBytes(buffer, m.Signature)
}

// Pack - MintItem
func (m MintItem) Pack() Packed {
	buffer := util.ToVarint64(uint64(MintItemTag))
	buffer = util.AppendVarint64(buffer, m.QueryId)
	return util.AppendBytes(buffer, m.Signature)
}

// Pack - InternalMintRequest
func (m InternalMintRequest) Pack() Packed {
	buffer := util.ToVarint64(uint64(InternalMintRequestTag))
	buffer = util.AppendVarint64(buffer, m.QueryId)
	buffer = util.AppendVarint64(buffer, m.Price.Uint64())
	buffer = util.AppendBytes(buffer, m.Owner[:])
	buffer = util.AppendBytes(buffer, m.Content)
	return util.AppendVarint64(buffer, m.ActivationTime)
}

// Pack - AdminClaim
func (m AdminClaim) Pack() Packed {
	return packQueryOnly(AdminClaimTag, m.QueryId)
}

// Pack - AdminTogglePolicy
func (m AdminTogglePolicy) Pack() Packed {
	buffer := util.ToVarint64(uint64(AdminTogglePolicyTag))
	buffer = util.AppendVarint64(buffer, m.QueryId)
	enabled := uint64(0)
	if m.Enabled {
		enabled = 1
	}
	return util.AppendVarint64(buffer, enabled)
}

// Pack - AdminSetStartTime
func (m AdminSetStartTime) Pack() Packed {
	buffer := util.ToVarint64(uint64(AdminSetStartTimeTag))
	buffer = util.AppendVarint64(buffer, m.QueryId)
	return util.AppendVarint64(buffer, m.StartTime)
}

// Pack - AdminTransferCatalogOwnership
func (m AdminTransferCatalogOwnership) Pack() Packed {
	buffer := util.ToVarint64(uint64(AdminTransferCatalogOwnershipTag))
	buffer = util.AppendVarint64(buffer, m.QueryId)
	return util.AppendBytes(buffer, m.NewOwner[:])
}

// Pack - IssueAsset
func (m IssueAsset) Pack() Packed {
	buffer := util.ToVarint64(uint64(IssueAssetTag))
	buffer = util.AppendVarint64(buffer, m.QueryId)
	buffer = util.AppendBytes(buffer, m.Owner[:])
	return util.AppendBytes(buffer, m.Content)
}

// Pack - ChangeCatalogOwner
func (m ChangeCatalogOwner) Pack() Packed {
	buffer := util.ToVarint64(uint64(ChangeCatalogOwnerTag))
	buffer = util.AppendVarint64(buffer, m.QueryId)
	return util.AppendBytes(buffer, m.NewOwner[:])
}

// Pack - Refund
func (m Refund) Pack() Packed {
	return packQueryOnly(RefundTag, m.QueryId)
}

// Pack - Excesses
func (m Excesses) Pack() Packed {
	return packQueryOnly(ExcessesTag, m.QueryId)
}

func packQueryOnly(tag TagType, queryId uint64) Packed {
	buffer := util.ToVarint64(uint64(tag))
	return util.AppendVarint64(buffer, queryId)
}
