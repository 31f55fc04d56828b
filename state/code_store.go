// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

import (
	"github.com/coreweave-chain/evmkernel/kvstore"
	"github.com/coreweave-chain/evmkernel/vm"
)

// CodeStore persists contract code keyed by its own hash, the same
// content-addressed scheme go-probe's rawdb.ReadCode/WriteCode use
// (core/rawdb/accessors_state.go): code never changes once deployed, so
// two accounts that happen to deploy byte-identical code share one
// on-disk copy.
type CodeStore struct {
	store kvstore.Store
}

// NewCodeStore wraps store as a content-addressed code cache.
func NewCodeStore(store kvstore.Store) *CodeStore {
	return &CodeStore{store: store}
}

// ReadCode retrieves the code for hash, or nil if it was never written.
func (c *CodeStore) ReadCode(hash vm.Hash) []byte {
	data, err := c.store.Get(hash[:])
	if err != nil {
		return nil
	}
	return data
}

// WriteCode persists code under its own Keccak256 hash and returns that
// hash, so SetCode callers can store only the hash inline and defer the
// byte lookup until the code actually runs.
func (c *CodeStore) WriteCode(code []byte) vm.Hash {
	hash := vm.Keccak256(code)
	if len(code) == 0 {
		return hash
	}
	_ = c.store.Put(hash[:], code)
	return hash
}
