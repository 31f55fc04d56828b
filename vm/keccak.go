// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package vm

import (
	"sync"

	"golang.org/x/crypto/sha3"
)

type keccakHasher interface {
	Write([]byte) (int, error)
	Read([]byte) (int, error)
	Reset()
}

var keccakHasherPool = sync.Pool{New: func() any { return sha3.NewLegacyKeccak256().(keccakHasher) }}

// Keccak256 hashes data with the pure-Go Keccak256 implementation; a
// cgo-backed variant is not portable to a cgo-free module (see
// DESIGN.md) so every call here goes through x/crypto/sha3.
func Keccak256(data []byte) Hash {
	hasher := keccakHasherPool.Get().(keccakHasher)
	defer keccakHasherPool.Put(hasher)
	hasher.Reset()
	_, _ = hasher.Write(data)
	var out Hash
	_, _ = hasher.Read(out[:])
	return out
}
