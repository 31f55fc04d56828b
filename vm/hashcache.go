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
	"github.com/VictoriaMetrics/fastcache"
)

// sha3Cache memoizes SHA3 over the handful of input sizes (32 and 64
// bytes: hashing a single word or a mapping key/slot pair) that dominate
// real contract execution. It is backed by fastcache, already a
// transitive dependency through go-ethereum, giving fixed-memory,
// concurrency-safe caching without a second implementation to maintain.
type sha3Cache struct {
	cache *fastcache.Cache
}

func newSha3Cache(maxBytes int) *sha3Cache {
	return &sha3Cache{cache: fastcache.New(maxBytes)}
}

func (c *sha3Cache) hash(data []byte) Hash {
	if len(data) != 32 && len(data) != 64 {
		return Keccak256(data)
	}
	if v, ok := c.cache.HasGet(nil, data); ok && len(v) == 32 {
		var out Hash
		copy(out[:], v)
		return out
	}
	out := Keccak256(data)
	c.cache.Set(append([]byte(nil), data...), out[:])
	return out
}
