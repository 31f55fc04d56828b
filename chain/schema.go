// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package chain

import (
	"encoding/binary"

	"github.com/coreweave-chain/evmkernel/vm"
)

// Persisted key layout:
//
//	"head"                          -> encoded head header
//	"genesis"                       -> encoded genesis header (reserved)
//	"h" || hash                     -> encoded header
//	"h" || hash || "t"              -> encoded total difficulty
//	"h" || big_endian(number) || "n" -> canonical hash at that height
//	"b" || hash                     -> encoded block
var (
	headKeyLiteral    = []byte("head")
	genesisKeyLiteral = []byte("genesis")

	headerPrefix = []byte("h")
	tdSuffix     = []byte("t")
	numberSuffix = []byte("n")
	blockPrefix  = []byte("b")
)

func headKey() []byte    { return headKeyLiteral }
func genesisKey() []byte { return genesisKeyLiteral }

func headerKey(hash vm.Hash) []byte {
	return append(append([]byte{}, headerPrefix...), hash[:]...)
}

func tdKey(hash vm.Hash) []byte {
	return append(headerKey(hash), tdSuffix...)
}

// numberKey encodes number as 8 big-endian bytes, the same fixed-width
// encoding go-ethereum-family chains use so the height index sorts
// lexicographically in number order.
func numberKey(number uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], number)
	return buf[:]
}

func hashByNumberKey(number uint64) []byte {
	key := append(append([]byte{}, headerPrefix...), numberKey(number)...)
	return append(key, numberSuffix...)
}

func blockKey(hash vm.Hash) []byte {
	return append(append([]byte{}, blockPrefix...), hash[:]...)
}
