// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// ProtocolError - rejection of a single message by an actor
//
// the numeric code is stable and is what callers see as the exit code
// of the transaction that processed the message
type ProtocolError struct {
	code    uint32
	message string
}

// protocol rejections - the codes must never be renumbered
var (
	NotYetActive        = &ProtocolError{100, "not yet active"}
	NotOwner            = &ProtocolError{101, "not owner"}
	InsufficientFunds   = &ProtocolError{102, "insufficient funds"}
	AlreadyMinted       = &ProtocolError{103, "already minted"}
	InvalidSignature    = &ProtocolError{104, "invalid signature"}
	AddressMismatch     = &ProtocolError{105, "address mismatch"}
	NotAdmin            = &ProtocolError{106, "not admin"}
	InsufficientBalance = &ProtocolError{107, "insufficient balance"}
	MintDisabled        = &ProtocolError{108, "mint disabled"}
	ContentMissing      = &ProtocolError{109, "content missing"}
	PolicyMismatch      = &ProtocolError{110, "policy mismatch"}
	UnknownOperation    = &ProtocolError{111, "unknown operation"}
	NotDeployed         = &ProtocolError{112, "not deployed"}
	CatalogFull         = &ProtocolError{113, "catalog full"}
)

// ordered list for lookup by code
var protocolErrors = []*ProtocolError{
	NotYetActive,
	NotOwner,
	InsufficientFunds,
	AlreadyMinted,
	InvalidSignature,
	AddressMismatch,
	NotAdmin,
	InsufficientBalance,
	MintDisabled,
	ContentMissing,
	PolicyMismatch,
	UnknownOperation,
	NotDeployed,
	CatalogFull,
}

// ExitSuccess - code recorded for a transaction that completed
const ExitSuccess = uint32(0)

// ExitFailure - code recorded for a failure that is not a protocol rejection
const ExitFailure = uint32(1)

func (e *ProtocolError) Error() string { return e.message }

// Code - the numeric exit code
func (e *ProtocolError) Code() uint32 { return e.code }

// IsErrProtocol - check for a protocol rejection
func IsErrProtocol(e error) bool { _, ok := e.(*ProtocolError); return ok }

// ExitCode - map any error to a transaction exit code
func ExitCode(e error) uint32 {
	if nil == e {
		return ExitSuccess
	}
	if p, ok := e.(*ProtocolError); ok {
		return p.code
	}
	return ExitFailure
}

// FromCode - find the protocol error for a code
func FromCode(code uint32) (*ProtocolError, bool) {
	for _, e := range protocolErrors {
		if code == e.code {
			return e, true
		}
	}
	return nil, false
}
