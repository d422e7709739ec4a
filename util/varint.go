// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Varint64MaximumBytes - maximum possible number of bytes in Varint64
const Varint64MaximumBytes = 9

// ToVarint64 - convert a 64 bit unsigned integer to Varint64
//
// Structure of the result
// byte 1:  ext | B06 | B05 | B04 | B03 | B02 | B01 | B00
// byte 2:  ext | B13 | B12 | B11 | B10 | B09 | B08 | B07
// …
// byte 8:  ext | B55 | B54 | B53 | B52 | B51 | B50 | B49
// byte 9:  B63 | B62 | B61 | B60 | B59 | B58 | B57 | B56
func ToVarint64(value uint64) []byte {
	return AppendVarint64(make([]byte, 0, Varint64MaximumBytes), value)
}

// AppendVarint64 - append the Varint64 form of value to a buffer
func AppendVarint64(buffer []byte, value uint64) []byte {
	if value < 0x80 {
		return append(buffer, byte(value))
	}

	for i := 0; i < Varint64MaximumBytes && value != 0; i += 1 {
		ext := uint64(0x80)
		if value < 0x80 {
			ext = 0x00
		}
		buffer = append(buffer, byte(value|ext))
		value >>= 7
	}
	return buffer
}

// AppendBytes - append a Varint64(length) prefixed byte field
func AppendBytes(buffer []byte, data []byte) []byte {
	buffer = AppendVarint64(buffer, uint64(len(data)))
	return append(buffer, data...)
}

// FromVarint64 - convert an array of up to Varint64MaximumBytes to a uint64
//
// also return the number of bytes used as second value
// returns 0, 0 if varint64 buffer is truncated
func FromVarint64(buffer []byte) (uint64, int) {
	result := uint64(0)

	shift := uint(0)
	count := 0

	for count < len(buffer) {
		currByte := uint64(buffer[count])
		count += 1
		if count < Varint64MaximumBytes {
			result |= currByte & 0x7f << shift
			if 0 == currByte&0x80 {
				return result, count
			}
		} else {
			result |= currByte << shift
			return result, count
		}
		shift += 7
	}
	return 0, 0
}

// ClippedVarint64 - return a positive clipped value as an int
// any value outside the range minimum..maximum is an error
func ClippedVarint64(buffer []byte, minimum int, maximum int) (int, int) {
	if minimum < 0 || maximum < 0 || minimum >= maximum {
		return 0, 0
	}

	value, count := FromVarint64(buffer)
	if 0 == count {
		return 0, 0
	}
	if value > uint64(maximum) || value < uint64(minimum) {
		return 0, 0
	}
	return int(value), count
}

// Reader - sequential decoder for records built with AppendVarint64
// and AppendBytes
//
// the first failure latches: every later read returns a zero value
// and OK() reports false
type Reader struct {
	buffer []byte
	n      int
	failed bool
}

// NewReader - start reading at the beginning of buffer
func NewReader(buffer []byte) *Reader {
	return &Reader{
		buffer: buffer,
	}
}

// Varint64 - read the next Varint64
func (r *Reader) Varint64() uint64 {
	if r.failed {
		return 0
	}
	value, count := FromVarint64(r.buffer[r.n:])
	if 0 == count {
		r.failed = true
		return 0
	}
	r.n += count
	return value
}

// Bytes - read the next length prefixed field
//
// the result is a copy and the length must be in minimum..maximum
func (r *Reader) Bytes(minimum int, maximum int) []byte {
	if r.failed {
		return nil
	}
	length, count := FromVarint64(r.buffer[r.n:])
	if 0 == count || length < uint64(minimum) || length > uint64(maximum) {
		r.failed = true
		return nil
	}
	r.n += count
	if uint64(len(r.buffer)-r.n) < length {
		r.failed = true
		return nil
	}
	data := make([]byte, length)
	copy(data, r.buffer[r.n:r.n+int(length)])
	r.n += int(length)
	return data
}

// Consumed - number of bytes read so far
func (r *Reader) Consumed() int {
	return r.n
}

// AtEnd - true if the whole buffer was consumed without error
func (r *Reader) AtEnd() bool {
	return !r.failed && r.n == len(r.buffer)
}

// OK - false after any failed read
func (r *Reader) OK() bool {
	return !r.failed
}
