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

func TestStackPushPopRoundTrip(t *testing.T) {
	s := NewStack()
	defer ReturnStack(s)

	if err := s.Push(uint256.NewInt(42)); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	got, err := s.Pop()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Eq(uint256.NewInt(42)) {
		t.Fatalf("Pop() = %s, want 42", got.String())
	}
	if s.Len() != 0 {
		t.Fatalf("Len() after pop = %d, want 0", s.Len())
	}
}

// TestStackBoundAt1024 checks that pushing up to capacity never errors,
// and the 1025th push does.
func TestStackBoundAt1024(t *testing.T) {
	s := NewStack()
	defer ReturnStack(s)

	for i := 0; i < MaxStackDepth; i++ {
		if err := s.Push(uint256.NewInt(uint64(i))); err != nil {
			t.Fatalf("Push() at depth %d: %v", i, err)
		}
	}
	if s.Len() != MaxStackDepth {
		t.Fatalf("Len() = %d, want %d", s.Len(), MaxStackDepth)
	}
	if err := s.Push(uint256.NewInt(1)); err != ErrStackOverflow {
		t.Fatalf("Push() past capacity = %v, want ErrStackOverflow", err)
	}
}

func TestStackPopUnderflow(t *testing.T) {
	s := NewStack()
	defer ReturnStack(s)

	if _, err := s.Pop(); err != ErrStackUnderflow {
		t.Fatalf("Pop() on empty stack = %v, want ErrStackUnderflow", err)
	}
}

func TestStackSwapAndDup(t *testing.T) {
	s := NewStack()
	defer ReturnStack(s)

	_ = s.Push(uint256.NewInt(1))
	_ = s.Push(uint256.NewInt(2))
	if err := s.Swap(1); err != nil {
		t.Fatal(err)
	}
	top, _ := s.Peek()
	if !top.Eq(uint256.NewInt(1)) {
		t.Fatalf("top after Swap(1) = %s, want 1", top.String())
	}

	if err := s.Dup(2); err != nil {
		t.Fatal(err)
	}
	top, _ = s.Peek()
	if !top.Eq(uint256.NewInt(2)) {
		t.Fatalf("top after Dup(2) = %s, want 2", top.String())
	}
	if s.Len() != 3 {
		t.Fatalf("Len() after Dup = %d, want 3", s.Len())
	}
}
