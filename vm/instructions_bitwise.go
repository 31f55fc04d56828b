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

import "github.com/holiman/uint256"

func registerComparisonAndBitwiseOps() {
	newOp(LT, 2, 1, opLt)
	newOp(GT, 2, 1, opGt)
	newOp(SLT, 2, 1, opSlt)
	newOp(SGT, 2, 1, opSgt)
	newOp(EQ, 2, 1, opEq)
	newOp(ISZERO, 1, 1, opIsZero)
	newOp(AND, 2, 1, opAnd)
	newOp(OR, 2, 1, opOr)
	newOp(XOR, 2, 1, opXor)
	newOp(NOT, 1, 1, opNot)
	newOp(BYTE, 2, 1, opByte)

	newOp(SHA3, 2, 1, opSha3)
}

func opLt(f *Frame, e *EVM) error {
	a, _ := f.Stack.Pop()
	b, _ := f.Stack.Peek()
	if a.Lt(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
	return nil
}

func opGt(f *Frame, e *EVM) error {
	a, _ := f.Stack.Pop()
	b, _ := f.Stack.Peek()
	if a.Gt(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
	return nil
}

func opSlt(f *Frame, e *EVM) error {
	a, _ := f.Stack.Pop()
	b, _ := f.Stack.Peek()
	if a.Slt(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
	return nil
}

func opSgt(f *Frame, e *EVM) error {
	a, _ := f.Stack.Pop()
	b, _ := f.Stack.Peek()
	if a.Sgt(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
	return nil
}

func opEq(f *Frame, e *EVM) error {
	a, _ := f.Stack.Pop()
	b, _ := f.Stack.Peek()
	if a.Eq(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
	return nil
}

func opIsZero(f *Frame, e *EVM) error {
	a, _ := f.Stack.Peek()
	if a.IsZero() {
		a.SetOne()
	} else {
		a.Clear()
	}
	return nil
}

func opAnd(f *Frame, e *EVM) error {
	a, _ := f.Stack.Pop()
	b, _ := f.Stack.Peek()
	b.And(a, b)
	return nil
}

func opOr(f *Frame, e *EVM) error {
	a, _ := f.Stack.Pop()
	b, _ := f.Stack.Peek()
	b.Or(a, b)
	return nil
}

func opXor(f *Frame, e *EVM) error {
	a, _ := f.Stack.Pop()
	b, _ := f.Stack.Peek()
	b.Xor(a, b)
	return nil
}

func opNot(f *Frame, e *EVM) error {
	a, _ := f.Stack.Peek()
	a.Not(a)
	return nil
}

func opByte(f *Frame, e *EVM) error {
	th, _ := f.Stack.Pop()
	val, _ := f.Stack.Peek()
	val.Byte(th)
	return nil
}

func opSha3(f *Frame, e *EVM) error {
	offset, _ := f.Stack.Pop()
	size, _ := f.Stack.Peek()

	off, sz, err := asMemoryRange(offset, size)
	if err != nil {
		return err
	}
	if cost, err := memoryExpansionGas(f.Memory, off, sz); err != nil {
		return err
	} else if err := f.UseGas(cost); err != nil {
		return err
	}
	if err := f.Memory.Extend(off, sz); err != nil {
		return err
	}
	data := f.Memory.Fetch(off, sz)

	if err := f.UseGas(gasSha3(sz)); err != nil {
		return err
	}

	hash := e.hashCache.hash(data)
	size.SetBytes32(hash[:])
	return nil
}

// asMemoryRange validates and converts a (offset, size) stack pair into
// uint64 operands, rejecting values that cannot possibly address real
// memory without ever allocating based on an attacker-controlled 256-bit
// size.
func asMemoryRange(offset, size *uint256.Int) (uint64, uint64, error) {
	if size.IsZero() {
		return 0, 0, nil
	}
	if !offset.IsUint64() || !size.IsUint64() {
		return 0, 0, ErrGasUintOverflow
	}
	return offset.Uint64(), size.Uint64(), nil
}
