// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/mintauth/util"
)

var varint64Tests = []struct {
	value   uint64
	encoded []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x01}},
	{255, []byte{0xff, 0x01}},
	{16383, []byte{0xff, 0x7f}},
	{16384, []byte{0x80, 0x80, 0x01}},
	{0x7fffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
	{0x8000000000000000, []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80}},
	{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
}

var varint64TruncatedTests = [][]byte{
	{},
	{0x80},
	{0xff},
	{0x80, 0x80},
	{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
}

func TestToVarint64(t *testing.T) {
	for i, item := range varint64Tests {
		if result := util.ToVarint64(item.value); !bytes.Equal(result, item.encoded) {
			t.Errorf("%d: ToVarint64(%x) -> %x  expected: %x", i, item.value, result, item.encoded)
		}
	}
}

func TestFromVarint64(t *testing.T) {
	for i, item := range varint64Tests {
		suffix := []byte{0xff, 0x97, 0x23}
		b := append(append([]byte{}, item.encoded...), suffix...)

		result, count := util.FromVarint64(b)
		if result != item.value || count != len(item.encoded) {
			t.Errorf("%d: FromVarint64(%x) -> %d, %d  expected: %d", i, b, result, count, item.value)
		}
		if !bytes.Equal(suffix, b[count:]) {
			t.Errorf("%d: suffix: %x  expected: %x", i, b[count:], suffix)
		}
	}

	for i, item := range varint64TruncatedTests {
		result, count := util.FromVarint64(item)
		if 0 != result || 0 != count {
			t.Errorf("%d: FromVarint64(%x) -> %d, %d  expected: 0, 0", i, item, result, count)
		}
	}
}

func TestClippedVarint64(t *testing.T) {
	value, count := util.ClippedVarint64([]byte{0x80, 0x01}, 1, 200)
	assert.Equal(t, 128, value, "wrong value")
	assert.Equal(t, 2, count, "wrong count")

	_, count = util.ClippedVarint64([]byte{0x80, 0x01}, 1, 100)
	assert.Equal(t, 0, count, "value above maximum accepted")

	_, count = util.ClippedVarint64([]byte{0x00}, 1, 100)
	assert.Equal(t, 0, count, "value below minimum accepted")
}

func TestReader(t *testing.T) {
	buffer := util.AppendVarint64(nil, 300)
	buffer = util.AppendBytes(buffer, []byte("content"))
	buffer = util.AppendBytes(buffer, []byte{})

	r := util.NewReader(buffer)
	assert.Equal(t, uint64(300), r.Varint64(), "wrong varint")
	assert.Equal(t, []byte("content"), r.Bytes(1, 100), "wrong bytes")
	assert.Equal(t, []byte{}, r.Bytes(0, 100), "wrong empty bytes")
	assert.True(t, r.AtEnd(), "buffer not consumed")
}

func TestReaderFailureLatches(t *testing.T) {
	buffer := util.AppendBytes(nil, []byte("too long"))
	buffer = util.AppendVarint64(buffer, 7)

	r := util.NewReader(buffer)
	assert.Nil(t, r.Bytes(1, 4), "length limit ignored")
	assert.False(t, r.OK(), "failure not reported")
	assert.Equal(t, uint64(0), r.Varint64(), "read after failure")
	assert.False(t, r.AtEnd(), "failed reader cannot be at end")
}

func TestReaderTruncated(t *testing.T) {
	buffer := util.AppendBytes(nil, []byte("abcdef"))

	r := util.NewReader(buffer[:4])
	assert.Nil(t, r.Bytes(0, 100), "truncated field returned")
	assert.False(t, r.OK(), "truncation not reported")
}
