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

// opHandler executes a single instruction against the current top-of-call
// frame. e provides access to the rest of the frame stack and the State
// collaborator for instructions (CALL, CREATE, SSTORE, ...) that reach
// outside the current frame. Returning an error aborts the frame exactly
// as if the instruction had signaled INVALID, unless the error is
// errJumped, errStopExecution or errRevert, which are control-flow
// signals rather than faults (see interpreter.go).
type opHandler func(f *Frame, e *EVM) error

// opDescriptor is one row of the dispatch table: the static stack arity
// the interpreter checks before invoking the handler, and the handler
// itself. Gas is charged separately via staticGasCost plus whatever
// dynamic cost the handler itself charges.
type opDescriptor struct {
	name     string
	minStack int // stack items required to be present
	maxStack int // MaxStackDepth - (items pushed - items popped)
	execute  opHandler
}

// opTable is keyed by opcode byte value; an opcode with no entry is
// undefined and causes an ErrInvalidCode abort, exactly like INVALID.
var opTable = map[OpCode]opDescriptor{}

func newOp(op OpCode, pop, push int, fn opHandler) {
	opTable[op] = opDescriptor{
		name:     op.String(),
		minStack: pop,
		maxStack: MaxStackDepth - push + pop,
		execute:  fn,
	}
}

func init() {
	registerArithmeticOps()
	registerComparisonAndBitwiseOps()
	registerEnvironmentOps()
	registerBlockOps()
	registerStackMemoryStorageFlowOps()
	registerLogOps()
	registerSystemOps()
}
