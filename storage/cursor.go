// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/mintauth/fault"
)

// FetchCursor - resumable walk over one pool's keys
type FetchCursor struct {
	pool     *PoolHandle
	maxRange ldb_util.Range
}

// NewFetchCursor - cursor over every key of the pool
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		maxRange: ldb_util.Range{
			Start: []byte{p.prefix},
			Limit: p.limit,
		},
	}
}

// Seek - start at key, or the first key after it
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.maxRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Prefix - restrict the cursor to keys beginning with key
func (cursor *FetchCursor) Prefix(key []byte) *FetchCursor {
	cursor.maxRange = *ldb_util.BytesPrefix(cursor.pool.prefixKey(key))
	return cursor
}

// Fetch - up to count elements, the next call continues after the last
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	results := make([]Element, 0, count)
	err := cursor.walk(func(e Element) bool {
		results = append(results, e)
		return len(results) < count
	})

	if n := len(results); n > 0 {
		// the least key greater than the last one returned
		last := cursor.pool.prefixKey(results[n-1].Key)
		cursor.maxRange.Start = append(last, 0x00)
	}
	return results, err
}

// Map - run f on every element in the range, stopping at its first error
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	var mapErr error
	err := cursor.walk(func(e Element) bool {
		mapErr = f(e.Key, e.Value)
		return nil == mapErr
	})
	if nil != mapErr {
		return mapErr
	}
	return err
}

// iterate the range handing each element, unprefixed and copied, to
// more until it returns false
func (cursor *FetchCursor) walk(more func(Element) bool) error {
	db := cursor.pool.database
	if nil == db {
		return fault.DatabaseIsNotSet
	}

	iter := db.NewIterator(&cursor.maxRange, nil)
	defer iter.Release()

	for iter.Next() {
		// iterator slices are reused by the next call
		e := Element{
			Key:   append([]byte{}, iter.Key()[1:]...),
			Value: append([]byte{}, iter.Value()...),
		}
		if !more(e) {
			break
		}
	}
	return iter.Error()
}
