// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package kvstore provides a byte-keyed, byte-valued storage backend.
// The chain package is the only consumer inside this module; the
// interpreter never touches it directly, since persistent key/value
// storage is out of scope for the interpreter itself.
package kvstore

// Store is the minimal byte-keyed key/value contract the header chain and
// block chain facade require. Both the in-memory and the goleveldb-backed
// implementation satisfy it identically, so callers can swap one for the
// other without touching chain package code.
type Store interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Put(key, value []byte) error
	Delete(key []byte) error

	// NewBatch returns a write batch whose accumulated operations become
	// visible atomically when Write is called.
	NewBatch() Batch

	Close() error
}

// Batch collects a sequence of writes for atomic application. Nothing
// written through a Batch is visible to Store.Get until Write succeeds.
type Batch interface {
	Put(key, value []byte) error
	Delete(key []byte) error
	Write() error
	Reset()
	ValueSize() int
}

// ErrNotFound is returned by Get when the requested key is absent.
type ErrNotFound struct{}

func (ErrNotFound) Error() string { return "kvstore: key not found" }
