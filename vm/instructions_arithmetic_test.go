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
	"testing"

	"github.com/holiman/uint256"
)

func runOp(t *testing.T, op OpCode, operands ...*uint256.Int) *Stack {
	t.Helper()
	s := NewStack()
	t.Cleanup(func() { ReturnStack(s) })
	for _, v := range operands {
		if err := s.Push(v); err != nil {
			t.Fatal(err)
		}
	}
	f := &Frame{Stack: s, Gas: 1_000_000}
	desc, ok := opTable[op]
	if !ok {
		t.Fatalf("opcode %s not registered", op)
	}
	if err := desc.execute(f, &EVM{}); err != nil {
		t.Fatalf("%s execute: %v", op, err)
	}
	return s
}

// TestDivisionByZeroYieldsZero checks that DIV/SDIV/MOD/SMOD by zero
// yield 0 rather than faulting.
func TestDivisionByZeroYieldsZero(t *testing.T) {
	for _, op := range []OpCode{DIV, SDIV, MOD, SMOD} {
		// push order bottom-to-top: divisor then dividend, so the top of
		// stack (dividend) is 7 and the divisor beneath it is zero.
		s := runOp(t, op, uint256.NewInt(0), uint256.NewInt(7))
		top, _ := s.Peek()
		if !top.IsZero() {
			t.Fatalf("%s(7, 0) = %s, want 0", op, top)
		}
	}
}

func TestNotIsInvolution(t *testing.T) {
	v := uint256.NewInt(0x1234)
	s := runOp(t, NOT, new(uint256.Int).Set(v))
	once, _ := s.Pop()

	s2 := runOp(t, NOT, once)
	twice, _ := s2.Peek()
	if !twice.Eq(v) {
		t.Fatalf("NOT(NOT(x)) = %s, want %s", twice, v)
	}
}

func TestXorSelfIsZero(t *testing.T) {
	v := uint256.NewInt(0xdeadbeef)
	s := runOp(t, XOR, v, new(uint256.Int).Set(v))
	top, _ := s.Peek()
	if !top.IsZero() {
		t.Fatalf("XOR(a,a) = %s, want 0", top)
	}
}

func TestAndWithMaxIsIdentity(t *testing.T) {
	max := new(uint256.Int).Not(uint256.NewInt(0)) // 2^256 - 1
	v := uint256.NewInt(0xcafe)
	s := runOp(t, AND, max, new(uint256.Int).Set(v))
	top, _ := s.Peek()
	if !top.Eq(v) {
		t.Fatalf("AND(a, 2^256-1) = %s, want %s", top, v)
	}
}

func TestSignExtendBeyond32BytesIsIdentity(t *testing.T) {
	v := uint256.NewInt(0x7fff)
	s := runOp(t, SIGNEXTEND, new(uint256.Int).Set(v), uint256.NewInt(32))
	top, _ := s.Peek()
	if !top.Eq(v) {
		t.Fatalf("SIGNEXTEND(32, v) = %s, want v unchanged (%s)", top, v)
	}
}

func TestSignExtendNegativeBit(t *testing.T) {
	// byte 0 of 0xff is the sign byte; SIGNEXTEND(0, 0xff) must sign-extend
	// to all ones (2^256 - 1).
	s := runOp(t, SIGNEXTEND, uint256.NewInt(0xff), uint256.NewInt(0))
	top, _ := s.Peek()
	want := new(uint256.Int).Not(uint256.NewInt(0))
	if !top.Eq(want) {
		t.Fatalf("SIGNEXTEND(0, 0xff) = %s, want %s", top, want)
	}
}
