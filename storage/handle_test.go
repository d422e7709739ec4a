// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/storage"
)

func TestPutGetDelete(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.Metadata
	key := []byte("key-one")

	assert.False(t, p.Has(key), "key exists before put")
	assert.Nil(t, p.Get(key), "value before put")

	p.Put(key, []byte("data-one"))
	assert.True(t, p.Has(key), "key missing after put")
	assert.Equal(t, []byte("data-one"), p.Get(key), "wrong value")

	// pools do not see each other's keys
	assert.False(t, storage.Pool.Accounts.Has(key), "key leaked into another pool")

	p.Delete(key)
	assert.False(t, p.Has(key), "key exists after delete")
}

func TestPutN(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.Metadata
	_, found := p.GetN([]byte("counter"))
	assert.False(t, found, "counter before put")

	p.PutN([]byte("counter"), 0x0102030405060708)
	n, found := p.GetN([]byte("counter"))
	assert.True(t, found, "counter not found")
	assert.Equal(t, uint64(0x0102030405060708), n, "wrong counter")
}

func TestLastElement(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.Transactions
	_, found := p.LastElement()
	assert.False(t, found, "empty pool has last element")

	p.Put([]byte{0, 1}, []byte("a"))
	p.Put([]byte{0, 3}, []byte("c"))
	p.Put([]byte{0, 2}, []byte("b"))
	storage.Pool.AccountTransactions.Put([]byte{0xff}, []byte("other pool"))

	e, found := p.LastElement()
	assert.True(t, found, "last element not found")
	assert.Equal(t, []byte{0, 3}, e.Key, "wrong key")
	assert.Equal(t, []byte("c"), e.Value, "wrong value")
}

func TestReopen(t *testing.T) {
	setup(t)
	storage.Pool.Metadata.Put([]byte("persist"), []byte("yes"))
	storage.Finalise()

	err := storage.Initialise(databaseFileName, storage.ReadOnly)
	assert.Nil(t, err, "reopen error")
	assert.Equal(t, []byte("yes"), storage.Pool.Metadata.Get([]byte("persist")), "value lost")

	err = storage.Initialise(databaseFileName, storage.ReadOnly)
	assert.Equal(t, fault.AlreadyInitialised, err, "double initialise")
	storage.Finalise()
}

func TestMemory(t *testing.T) {
	err := storage.InitialiseMemory()
	assert.Nil(t, err, "memory initialise error")
	defer storage.Finalise()

	storage.Pool.Accounts.Put([]byte("a"), []byte("b"))
	assert.Equal(t, []byte("b"), storage.Pool.Accounts.Get([]byte("a")), "memory value lost")
}
