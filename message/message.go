// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package message - bodies of the messages exchanged by the actors
//
// every body is a Varint64 tag followed by its fields; fields are
// either Varint64 values or Varint64 length prefixed byte strings.
// an empty body is a plain value transfer
package message

import (
	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/coins"
)

// TagType - op code of a message body
type TagType uint64

// enumerate the possible message types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks an empty body - not used as a message type
	NullTag = TagType(iota)

	DeployAndMintTag                 = TagType(iota) // user -> pending issuance, first message
	MintItemTag                      = TagType(iota) // user -> pending issuance
	InternalMintRequestTag           = TagType(iota) // pending issuance -> issuer
	AdminClaimTag                    = TagType(iota) // admin -> issuer
	AdminTogglePolicyTag             = TagType(iota) // admin -> issuer
	AdminSetStartTimeTag             = TagType(iota) // admin -> issuer
	AdminTransferCatalogOwnershipTag = TagType(iota) // admin -> issuer
	IssueAssetTag                    = TagType(iota) // issuer -> catalog
	ChangeCatalogOwnerTag            = TagType(iota) // issuer -> catalog
	RefundTag                        = TagType(iota) // pending issuance -> owner
	ExcessesTag                      = TagType(iota) // any actor -> originator

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed bodies are just a byte slice
type Packed []byte

// Body - generic message body
type Body interface {
	Tag() TagType
	Pack() Packed
}

// byte sizes for various fields
const (
	maxContentLength   = 2048
	maxSignatureLength = 1024
)

// MaxContentLength - largest content accepted in a mint
const MaxContentLength = maxContentLength

// DeployAndMint - first message to a pending issuance, sent with its state init
type DeployAndMint struct {
	Signature []byte `json:"signature"`
}

// MintItem - mint message to an already deployed pending issuance
type MintItem struct {
	QueryId   uint64 `json:"queryId"`
	Signature []byte `json:"signature"`
}

// InternalMintRequest - pending issuance asking the issuer to issue
//
// carries every field of the pending issuance initial data that the
// issuer cannot supply itself, so the issuer can recompute the sender
type InternalMintRequest struct {
	QueryId        uint64          `json:"queryId"`
	Price          coins.Amount    `json:"price"`
	Owner          address.Address `json:"owner"`
	Content        []byte          `json:"content"`
	ActivationTime uint64          `json:"activationTime"`
}

// AdminClaim - withdraw everything above the minimum reserve
type AdminClaim struct {
	QueryId uint64 `json:"queryId"`
}

// AdminTogglePolicy - enable or disable minting
type AdminTogglePolicy struct {
	QueryId uint64 `json:"queryId"`
	Enabled bool   `json:"enabled"`
}

// AdminSetStartTime - move the start of a time gated collection
type AdminSetStartTime struct {
	QueryId   uint64 `json:"queryId"`
	StartTime uint64 `json:"startTime"`
}

// AdminTransferCatalogOwnership - hand the catalog to a new owner
type AdminTransferCatalogOwnership struct {
	QueryId  uint64          `json:"queryId"`
	NewOwner address.Address `json:"newOwner"`
}

// IssueAsset - issuer command to the catalog
type IssueAsset struct {
	QueryId uint64          `json:"queryId"`
	Owner   address.Address `json:"owner"`
	Content []byte          `json:"content"`
}

// ChangeCatalogOwner - issuer command to the catalog
type ChangeCatalogOwner struct {
	QueryId  uint64          `json:"queryId"`
	NewOwner address.Address `json:"newOwner"`
}

// Refund - value returned to a pending issuance owner
type Refund struct {
	QueryId uint64 `json:"queryId"`
}

// Excesses - unused value returned to the originator
type Excesses struct {
	QueryId uint64 `json:"queryId"`
}

// Tag - op code for each body type
func (DeployAndMint) Tag() TagType                 { return DeployAndMintTag }
func (MintItem) Tag() TagType                      { return MintItemTag }
func (InternalMintRequest) Tag() TagType           { return InternalMintRequestTag }
func (AdminClaim) Tag() TagType                    { return AdminClaimTag }
func (AdminTogglePolicy) Tag() TagType             { return AdminTogglePolicyTag }
func (AdminSetStartTime) Tag() TagType             { return AdminSetStartTimeTag }
func (AdminTransferCatalogOwnership) Tag() TagType { return AdminTransferCatalogOwnershipTag }
func (IssueAsset) Tag() TagType                    { return IssueAssetTag }
func (ChangeCatalogOwner) Tag() TagType            { return ChangeCatalogOwnerTag }
func (Refund) Tag() TagType                        { return RefundTag }
func (Excesses) Tag() TagType                      { return ExcessesTag }

// String - op code name for logging
func (tag TagType) String() string {
	switch tag {
	case NullTag:
		return "Transfer"
	case DeployAndMintTag:
		return "DeployAndMint"
	case MintItemTag:
		return "MintItem"
	case InternalMintRequestTag:
		return "InternalMintRequest"
	case AdminClaimTag:
		return "AdminClaim"
	case AdminTogglePolicyTag:
		return "AdminTogglePolicy"
	case AdminSetStartTimeTag:
		return "AdminSetStartTime"
	case AdminTransferCatalogOwnershipTag:
		return "AdminTransferCatalogOwnership"
	case IssueAssetTag:
		return "IssueAsset"
	case ChangeCatalogOwnerTag:
		return "ChangeCatalogOwner"
	case RefundTag:
		return "Refund"
	case ExcessesTag:
		return "Excesses"
	default:
		return "Invalid"
	}
}

// MarshalText - op code name for JSON
func (tag TagType) MarshalText() ([]byte, error) {
	return []byte(tag.String()), nil
}

// UnmarshalText - op code from its name
func (tag *TagType) UnmarshalText(s []byte) error {
	for t := NullTag; t < InvalidTag; t += 1 {
		if t.String() == string(s) {
			*tag = t
			return nil
		}
	}
	*tag = InvalidTag
	return nil
}
