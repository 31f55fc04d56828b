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

func newRunFrame(code []byte) *Frame {
	f := NewFrame(CallKindCall, 0,
		&BlockContext{GetHash: func(uint64) Hash { return Hash{} }},
		&TransactionContext{GasPrice: uint256.NewInt(0)},
	)
	f.Code = code
	f.Gas = 1_000_000
	return f
}

// TestTruncatedPushReadsZero checks that a PUSH1 whose immediate byte
// falls off the end of the code pushes 0 rather than faulting.
func TestTruncatedPushReadsZero(t *testing.T) {
	code := []byte{byte(PUSH1), 0x01, byte(PUSH1), 0x01, byte(ADD), byte(PUSH1)}
	f := newRunFrame(code)
	e := &EVM{}

	e.run(f)
	if f.Err != nil {
		t.Fatalf("run() failed: %v", f.Err)
	}
	if f.Stack.Len() != 2 {
		t.Fatalf("stack depth = %d, want 2 (ADD result, then the truncated push)", f.Stack.Len())
	}
	top, _ := f.Stack.Peek()
	if !top.IsZero() {
		t.Fatalf("top of stack = %s, want 0 from the truncated PUSH1", top)
	}
	second, _ := f.Stack.PeekN(1)
	if !second.Eq(uint256.NewInt(2)) {
		t.Fatalf("second from top = %s, want 2 (1+1 from ADD)", second)
	}
}

// TestJumpRejectsPushImmediateData checks that a byte inside a PUSH's
// immediate data is never a valid jump target even when its value
// equals 0x5b (JUMPDEST).
func TestJumpRejectsPushImmediateData(t *testing.T) {
	// PUSH1 0x5b (the pushed byte looks like JUMPDEST but is data, at
	// index 1), then PUSH1 1, JUMP to offset 1.
	code := []byte{byte(PUSH1), 0x5b, byte(PUSH1), 0x01, byte(JUMP), byte(STOP)}
	f := newRunFrame(code)
	e := &EVM{}

	e.run(f)
	if f.Err != ErrInvalidJump {
		t.Fatalf("run() err = %v, want ErrInvalidJump", f.Err)
	}
}

func TestJumpToJumpdestSucceeds(t *testing.T) {
	// PUSH1 4, JUMP, (skip), JUMPDEST, STOP
	code := []byte{byte(PUSH1), 0x04, byte(JUMP), byte(INVALID), byte(JUMPDEST), byte(STOP)}
	f := newRunFrame(code)
	e := &EVM{}

	e.run(f)
	if f.Err != nil {
		t.Fatalf("run() failed: %v", f.Err)
	}
}

func TestStackUnderflowStopsRun(t *testing.T) {
	code := []byte{byte(ADD)} // no operands pushed
	f := newRunFrame(code)
	e := &EVM{}

	e.run(f)
	if f.Err != ErrStackUnderflow {
		t.Fatalf("run() err = %v, want ErrStackUnderflow", f.Err)
	}
}

func TestOutOfGasDuringRun(t *testing.T) {
	code := []byte{byte(PUSH1), 0x01, byte(PUSH1), 0x01, byte(ADD)}
	f := newRunFrame(code)
	f.Gas = 1 // far too little to cover even the first PUSH1

	e := &EVM{}
	e.run(f)
	if f.Err != ErrOutOfGas {
		t.Fatalf("run() err = %v, want ErrOutOfGas", f.Err)
	}
}
