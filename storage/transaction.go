// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/mintauth/fault"
)

// Transaction - a single atomic batch of writes across pools
//
// reads through the transaction see its own uncommitted writes
type Transaction interface {
	Begin() error
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	Commit() error
	Abort()
	InUse() bool
}

// TransactionData - the only Transaction implementation
type TransactionData struct {
	sync.Mutex
	inUse bool
	db    *leveldb.DB
	batch *leveldb.Batch
	cache Cache
}

func newTransaction(db *leveldb.DB) *TransactionData {
	return &TransactionData{
		inUse: false,
		db:    db,
		batch: new(leveldb.Batch),
		cache: newCache(),
	}
}

// Begin - claim the batch
func (t *TransactionData) Begin() error {
	t.Lock()
	defer t.Unlock()

	if t.inUse {
		return fault.TransactionInUse
	}
	t.inUse = true
	return nil
}

// Put - queue a write
func (t *TransactionData) Put(handle *PoolHandle, key []byte, value []byte) {
	k := handle.prefixKey(key)
	t.cache.Set(dbPut, string(k), value)
	t.batch.Put(k, value)
}

// PutN - queue a write of an 8 byte big endian value
func (t *TransactionData) PutN(handle *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	t.Put(handle, key, buffer)
}

// Delete - queue a delete
func (t *TransactionData) Delete(handle *PoolHandle, key []byte) {
	k := handle.prefixKey(key)
	t.cache.Set(dbDelete, string(k), nil)
	t.batch.Delete(k)
}

// Get - uncommitted value if any, otherwise the stored one
func (t *TransactionData) Get(handle *PoolHandle, key []byte) []byte {
	value, found, deleted := t.cache.Get(string(handle.prefixKey(key)))
	if deleted {
		return nil
	}
	if found {
		return value
	}
	return handle.Get(key)
}

// GetN - uint64 view of Get
func (t *TransactionData) GetN(handle *PoolHandle, key []byte) (uint64, bool) {
	buffer := t.Get(handle, key)
	if len(buffer) < 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(buffer[:8]), true
}

// Has - check for a key including uncommitted writes
func (t *TransactionData) Has(handle *PoolHandle, key []byte) bool {
	_, found, deleted := t.cache.Get(string(handle.prefixKey(key)))
	if deleted {
		return false
	}
	if found {
		return true
	}
	return handle.Has(key)
}

// Commit - write the batch atomically and release it
func (t *TransactionData) Commit() error {
	t.Lock()
	defer t.Unlock()

	err := t.db.Write(t.batch, nil)
	t.batch.Reset()
	t.cache.Clear()
	t.inUse = false
	return err
}

// Abort - drop every queued write and release the batch
func (t *TransactionData) Abort() {
	t.Lock()
	defer t.Unlock()

	t.batch.Reset()
	t.cache.Clear()
	t.inUse = false
}

// InUse - true between Begin and Commit/Abort
func (t *TransactionData) InUse() bool {
	t.Lock()
	defer t.Unlock()
	return t.inUse
}
