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

// CallKind distinguishes the four ways a frame may have been entered,
// each with slightly different value-transfer and code/storage-context
// rules.
type CallKind int

const (
	CallKindCall CallKind = iota
	CallKindCallCode
	CallKindDelegateCall
	CallKindCreate
)

func (k CallKind) String() string {
	switch k {
	case CallKindCall:
		return "CALL"
	case CallKindCallCode:
		return "CALLCODE"
	case CallKindDelegateCall:
		return "DELEGATECALL"
	case CallKindCreate:
		return "CREATE"
	}
	return "unknown"
}

// BlockContext carries the block-scoped values exposed by the COINBASE,
// TIMESTAMP, NUMBER, DIFFICULTY, GASLIMIT and BLOCKHASH opcodes. It is
// shared, unmodified, by every frame of a single execution.
type BlockContext struct {
	Coinbase    Address
	GasLimit    uint64
	BlockNumber uint64
	Timestamp   uint64
	Difficulty  *uint256.Int

	// GetHash resolves the hash of one of the 256 most recent ancestor
	// blocks, or the zero hash if number is out of that window.
	GetHash func(number uint64) Hash
}

// TransactionContext carries the transaction-scoped values exposed by the
// ORIGIN and GASPRICE opcodes. It is shared, unmodified, by every frame of
// a single execution.
type TransactionContext struct {
	Origin   Address
	GasPrice *uint256.Int
}

// Frame is the per-call execution context: its own stack, memory,
// program counter and gas meter, plus the parameters the executing code
// observes via the ADDRESS/CALLER/CALLVALUE/CALLDATA* family of opcodes.
// A CALL/CALLCODE/DELEGATECALL/CREATE pushes a new Frame onto the EVM's
// explicit frame stack rather than recursing into the host language's
// call stack.
type Frame struct {
	Block *BlockContext
	Tx    *TransactionContext

	Kind  CallKind
	Depth int

	// Address is the account whose storage and code this frame executes
	// against. For DELEGATECALL and CALLCODE this is the caller's own
	// address even though Code was fetched from a different account.
	Address Address
	Caller  Address
	// CodeOwner is the account whose code is running; equal to Address
	// except under DELEGATECALL/CALLCODE.
	CodeOwner Address

	Value    *uint256.Int
	Input    []byte
	Code     []byte
	CodeHash Hash

	Static bool

	Gas      Gas
	GasUsed  Gas
	PC       uint64
	Stack    *Stack
	Memory   *Memory
	Analysis *CodeAnalysis

	ReturnData []byte
	Output     []byte
	Reverted   bool
	Err        error

	// Logs accumulated by LOGn in this frame, held until the call
	// returns successfully and the EVM adds them to State; discarded
	// entirely on revert.
	Logs []Log

	// Selfdestructed and SelfdestructBenefic are set by SELFDESTRUCT and
	// drained by the EVM orchestrator after the frame finishes executing.
	Selfdestructed      bool
	SelfdestructBenefic Address

	// snapshot is the State checkpoint taken when this frame was
	// entered, so the orchestrator can roll back every state mutation
	// performed by this frame and its descendants on revert or failure.
	snapshot int

	parent *Frame
}

// NewFrame allocates a frame ready to execute code, pulling its stack
// from the package pool and allocating a fresh, empty memory.
func NewFrame(kind CallKind, depth int, block *BlockContext, tx *TransactionContext) *Frame {
	return &Frame{
		Block:  block,
		Tx:     tx,
		Kind:   kind,
		Depth:  depth,
		Stack:  NewStack(),
		Memory: NewMemory(),
	}
}

// Release returns the frame's stack to the shared pool. Memory is left to
// the garbage collector since its size varies too widely to pool well;
// only the fixed-size stack is worth pooling.
func (f *Frame) Release() {
	ReturnStack(f.Stack)
	f.Stack = nil
}

// UseGas deducts amount from the frame's remaining gas, failing with
// ErrOutOfGas (and leaving Gas at 0) if insufficient.
func (f *Frame) UseGas(amount Gas) error {
	if amount < 0 {
		panic("vm: negative gas charge")
	}
	if f.Gas < amount {
		f.Gas = 0
		return ErrOutOfGas
	}
	f.Gas -= amount
	f.GasUsed += amount
	return nil
}

// RefundGas returns unused gas to the frame, used when a child call
// returns leftover gas to its caller.
func (f *Frame) RefundGas(amount Gas) {
	f.Gas += amount
}
