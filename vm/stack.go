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
	"fmt"
	"strings"
	"sync"

	"github.com/holiman/uint256"
)

// MaxStackDepth is the maximum number of elements the operand stack may
// hold at any point during execution.
const MaxStackDepth = 1024

// Stack is the 1024-element 256-bit word-wide operand stack used by a
// frame. It is a fixed-size array to avoid reallocation during execution.
// Each operation checks its own bounds and returns ErrStackOverflow or
// ErrStackUnderflow; the interpreter also validates depth against each
// opcode's arity before dispatching.
type Stack struct {
	data         [MaxStackDepth]uint256.Int
	stackPointer int
}

var stackPool = sync.Pool{
	New: func() any { return &Stack{} },
}

// NewStack returns a zero-length stack from a reuse pool.
func NewStack() *Stack {
	return stackPool.Get().(*Stack)
}

// ReturnStack resets s and returns it to the reuse pool. A stack must not
// be used again after being returned.
func ReturnStack(s *Stack) {
	s.stackPointer = 0
	stackPool.Put(s)
}

// Len returns the number of elements currently on the stack.
func (s *Stack) Len() int {
	return s.stackPointer
}

// Push fails with ErrStackOverflow if the stack is already at capacity.
func (s *Stack) Push(v *uint256.Int) error {
	if s.stackPointer >= MaxStackDepth {
		return ErrStackOverflow
	}
	s.data[s.stackPointer] = *v
	s.stackPointer++
	return nil
}

// PushUndefined reserves a new top-of-stack slot and returns a pointer to
// it so the caller can fill it in directly without an extra copy.
func (s *Stack) PushUndefined() (*uint256.Int, error) {
	if s.stackPointer >= MaxStackDepth {
		return nil, ErrStackOverflow
	}
	s.stackPointer++
	return &s.data[s.stackPointer-1], nil
}

// Pop removes and returns the top element. The returned pointer is only
// valid until the next mutating stack operation.
func (s *Stack) Pop() (*uint256.Int, error) {
	if s.stackPointer == 0 {
		return nil, ErrStackUnderflow
	}
	s.stackPointer--
	return &s.data[s.stackPointer], nil
}

// PopN returns the top n values in pop order (closest to the top first).
func (s *Stack) PopN(n int) ([]*uint256.Int, error) {
	if s.stackPointer < n {
		return nil, ErrStackUnderflow
	}
	out := make([]*uint256.Int, n)
	for i := 0; i < n; i++ {
		s.stackPointer--
		out[i] = &s.data[s.stackPointer]
	}
	return out, nil
}

// Peek returns the top element without removing it.
func (s *Stack) Peek() (*uint256.Int, error) {
	return s.PeekN(0)
}

// PeekN returns the n-th element from the top (0 is the top element).
func (s *Stack) PeekN(n int) (*uint256.Int, error) {
	if s.stackPointer-n-1 < 0 {
		return nil, ErrStackUnderflow
	}
	return &s.data[s.stackPointer-n-1], nil
}

// Swap exchanges the top element with the n-th element below it. swap(0)
// exchanges the top with itself below; SWAP1 calls Swap(1).
func (s *Stack) Swap(n int) error {
	if s.stackPointer-n-1 < 0 {
		return ErrStackUnderflow
	}
	top := s.stackPointer - 1
	s.data[top], s.data[top-n] = s.data[top-n], s.data[top]
	return nil
}

// Dup duplicates the n-th element from the top (1-indexed, as in DUPn) and
// pushes the copy.
func (s *Stack) Dup(n int) error {
	if s.stackPointer-n < 0 {
		return ErrStackUnderflow
	}
	if s.stackPointer >= MaxStackDepth {
		return ErrStackOverflow
	}
	s.data[s.stackPointer] = s.data[s.stackPointer-n]
	s.stackPointer++
	return nil
}

func (s *Stack) String() string {
	b := strings.Builder{}
	for i := 0; i < s.Len(); i++ {
		v := s.data[s.stackPointer-i-1]
		b.WriteString(fmt.Sprintf("    [%4d] 0x%x\n", s.Len()-i-1, v.Bytes32()))
	}
	return b.String()
}
