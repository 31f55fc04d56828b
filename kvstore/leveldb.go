// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package kvstore

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// levelDBStore is the on-disk Store backing a long-running chain
// validator, wrapping *leveldb.DB.
type levelDBStore struct {
	db *leveldb.DB
}

// OpenLevelDB opens (creating if absent) a goleveldb database at path.
// cacheMB is a memory budget (at least 16) of which half becomes block
// cache and a quarter the write buffer; handles (at least 16) caps open
// file descriptors.
func OpenLevelDB(path string, cacheMB, handles int) (Store, error) {
	if cacheMB < 16 {
		cacheMB = 16
	}
	if handles < 16 {
		handles = 16
	}
	options := &opt.Options{
		OpenFilesCacheCapacity: handles,
		BlockCacheCapacity:     cacheMB / 2 * opt.MiB,
		WriteBuffer:            cacheMB / 4 * opt.MiB,
		Filter:                 nil,
	}
	db, err := leveldb.OpenFile(path, options)
	if isCorrupted(err) {
		db, err = leveldb.RecoverFile(path, options)
	}
	if err != nil {
		return nil, err
	}
	return &levelDBStore{db: db}, nil
}

func (s *levelDBStore) Get(key []byte) ([]byte, error) {
	v, err := s.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, ErrNotFound{}
	}
	return v, err
}

func (s *levelDBStore) Has(key []byte) (bool, error) {
	return s.db.Has(key, nil)
}

func (s *levelDBStore) Put(key, value []byte) error {
	return s.db.Put(key, value, nil)
}

func (s *levelDBStore) Delete(key []byte) error {
	return s.db.Delete(key, nil)
}

func (s *levelDBStore) Close() error {
	return s.db.Close()
}

func (s *levelDBStore) NewBatch() Batch {
	return &levelDBBatch{db: s.db, b: new(leveldb.Batch)}
}

type levelDBBatch struct {
	db   *leveldb.DB
	b    *leveldb.Batch
	size int
}

func (b *levelDBBatch) Put(key, value []byte) error {
	b.b.Put(key, value)
	b.size += len(key) + len(value)
	return nil
}

func (b *levelDBBatch) Delete(key []byte) error {
	b.b.Delete(key)
	b.size += len(key)
	return nil
}

func (b *levelDBBatch) Write() error {
	return b.db.Write(b.b, nil)
}

func (b *levelDBBatch) Reset() {
	b.b.Reset()
	b.size = 0
}

func (b *levelDBBatch) ValueSize() int { return b.size }

// isCorrupted reports whether err indicates on-disk corruption, the
// condition under which a caller might choose to attempt repair via
// leveldb.RecoverFile instead of treating the open as fatal.
func isCorrupted(err error) bool {
	_, ok := err.(*errors.ErrCorrupted)
	return ok
}
