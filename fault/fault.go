// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised        = ExistsError("already initialised")
	AmountOverflow            = InvalidError("amount overflow")
	AmountUnderflow           = InvalidError("amount underflow")
	BatchTooLarge             = LengthError("batch too large")
	CertificateFileExists     = ExistsError("certificate file already exists")
	ChecksumMismatch          = InvalidError("checksum mismatch")
	ContentTooLong            = LengthError("content too long")
	DatabaseIsNotSet          = ProcessError("database is not set")
	InvalidAddress            = InvalidError("invalid address")
	InvalidAmount             = InvalidError("invalid amount")
	InvalidBouncePolicy       = InvalidError("invalid bounce policy")
	InvalidCodeTemplate       = InvalidError("invalid code template")
	InvalidCount              = InvalidError("invalid count")
	InvalidGateKind           = InvalidError("invalid gate kind")
	InvalidPassword           = InvalidError("invalid password")
	InvalidPrivateKey         = InvalidError("invalid private key")
	InvalidPublicKey          = InvalidError("invalid public key")
	InvalidRequest            = InvalidError("invalid request")
	InvalidStateInit          = InvalidError("invalid state init")
	InvalidStructPointer      = InvalidError("invalid struct pointer")
	KeyFileExists             = ExistsError("key file already exists")
	KeyFileNotFound           = NotFoundError("key file not found")
	MessageQueueFull          = ProcessError("message queue full")
	MissingParameters         = InvalidError("missing parameters")
	NotInitialised            = NotFoundError("not initialised")
	NotAllowed                = ProcessError("not allowed")
	NotMessagePack            = InvalidError("not message pack")
	NotStatePack              = InvalidError("not state pack")
	RateLimiting              = ProcessError("rate limiting")
	SignatureTooLong          = LengthError("signature too long")
	StateTooLarge             = LengthError("state too large")
	TransactionInUse          = ProcessError("transaction already in use")
	UnknownAccount            = NotFoundError("unknown account")
	UnknownContract           = NotFoundError("unknown contract code")
	UnknownTransaction        = NotFoundError("unknown transaction")
	UnsupportedDatabaseFormat = InvalidError("unsupported database format")
	WrongNetworkForAddress    = InvalidError("wrong network for address")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
