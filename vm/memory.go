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
	"math"

	"github.com/holiman/uint256"
)

// maxMemoryExpansionSize bounds the memory a frame may grow to, matching
// the point at which quadratic expansion cost would overflow gas
// accounting (see ExpansionCost).
const maxMemoryExpansionSize = 0x1FFFFFFFE0

// Memory is a word-addressable, zero-filled byte buffer. Its tracked
// length is always a multiple of 32 (the "active word count"),
// growing only through extend/expand calls so MSIZE can report it
// directly.
type Memory struct {
	store []byte
}

// NewMemory returns an empty memory region.
func NewMemory() *Memory {
	return &Memory{}
}

// Len returns the active byte length, always a multiple of 32.
func (m *Memory) Len() uint64 {
	return uint64(len(m.store))
}

// sizeInWords rounds size up to the next multiple of 32, expressed as a
// word count.
func sizeInWords(size uint64) uint64 {
	return (size + 31) / 32
}

func toValidMemorySize(size uint64) uint64 {
	words := sizeInWords(size) * 32
	if size != 0 && words < size {
		return math.MaxUint64
	}
	return words
}

// words is the number of 32-byte words currently allocated.
func (m *Memory) words() uint64 {
	return m.Len() / 32
}

// ExpansionCost returns the incremental quadratic gas cost of growing the
// memory to cover `size` bytes, or 0 if it already does.
func (m *Memory) ExpansionCost(size uint64) uint64 {
	if m.Len() >= size {
		return 0
	}
	size = toValidMemorySize(size)
	if size > maxMemoryExpansionSize {
		return math.MaxUint64
	}
	newWords := sizeInWords(size)
	oldWords := m.words()
	cost := func(w uint64) uint64 { return w*w/512 + 3*w }
	return cost(newWords) - cost(oldWords)
}

// Extend grows the memory, if needed, so that bytes [offset, offset+size)
// are addressable, zero-filling the new region. A size of 0 is a no-op
// regardless of offset. Returns ErrGasUintOverflow if
// offset+size overflows uint64.
func (m *Memory) Extend(offset, size uint64) error {
	if size == 0 {
		return nil
	}
	needed := offset + size
	if needed < offset {
		return ErrGasUintOverflow
	}
	if m.Len() >= needed {
		return nil
	}
	needed = toValidMemorySize(needed)
	if needed > uint64(len(m.store)) {
		m.store = append(m.store, make([]byte, needed-uint64(len(m.store)))...)
	}
	return nil
}

// Store writes exactly size bytes at offset. If data is shorter it is
// right-zero-padded; if longer, only the first size bytes are used. The
// caller must have already extended the memory to cover [offset, size).
func (m *Memory) Store(offset, size uint64, data []byte) error {
	if size == 0 {
		return nil
	}
	if offset+size > m.Len() {
		return ErrGasUintOverflow
	}
	n := copy(m.store[offset:offset+size], data)
	for i := offset + uint64(n); i < offset+size; i++ {
		m.store[i] = 0
	}
	return nil
}

// SetWord writes a 32-byte big-endian word at offset (MSTORE semantics).
func (m *Memory) SetWord(offset uint64, v *uint256.Int) error {
	b := v.Bytes32()
	return m.Store(offset, 32, b[:])
}

// SetByte writes a single byte at offset (MSTORE8 semantics).
func (m *Memory) SetByte(offset uint64, value byte) error {
	return m.Store(offset, 1, []byte{value})
}

// Fetch returns a copy of size bytes starting at offset. The region must
// already be covered by a prior Extend; Fetch does not grow memory.
func (m *Memory) Fetch(offset, size uint64) []byte {
	out := make([]byte, size)
	if size == 0 {
		return out
	}
	if m.Len() <= offset {
		return out
	}
	n := copy(out, m.store[offset:])
	_ = n
	return out
}

// Slice returns the live backing bytes for [offset, offset+size), without
// copying, or nil if that range is not already covered.
func (m *Memory) Slice(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	if m.Len() < offset+size {
		return nil
	}
	return m.store[offset : offset+size]
}

// GetWord reads a 32-byte word at offset into dst (MLOAD semantics). The
// region must already be covered by a prior Extend.
func (m *Memory) GetWord(offset uint64, dst *uint256.Int) error {
	if m.Len() < offset+32 {
		return ErrGasUintOverflow
	}
	dst.SetBytes32(m.store[offset : offset+32])
	return nil
}
