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

// errStopExecution and errRevert are control-flow signals returned by
// STOP/RETURN and REVERT respectively; neither represents a fault, so
// run distinguishes them from real instruction errors before they would
// otherwise be mistaken for an aborted frame.
const (
	errStopExecution = ConstError("internal: stop")
	errRevert        = ConstError("internal: revert")
)

// run executes f.Code against f, starting at f.PC, until the code runs
// off its own end (implicit STOP), a STOP/RETURN/REVERT/INVALID/
// SELFDESTRUCT is reached, or gas runs out. It never recurses into a
// child call itself; CALL/CREATE-family handlers ask the owning EVM to
// push a new Frame instead.
func (e *EVM) run(f *Frame) {
	if f.Analysis == nil {
		f.Analysis = Analyze(f.Code)
	}

	for {
		if f.PC >= uint64(len(f.Code)) {
			return
		}

		op := OpCode(f.Code[f.PC])
		desc, ok := opTable[op]
		if !ok {
			f.Err = ErrInvalidCode
			return
		}

		if f.Stack.Len() < desc.minStack {
			f.Err = ErrStackUnderflow
			return
		}
		if f.Stack.Len() > desc.maxStack {
			f.Err = ErrStackOverflow
			return
		}

		if err := f.UseGas(staticGasCost[op]); err != nil {
			f.Err = err
			return
		}

		err := desc.execute(f, e)
		switch err {
		case nil:
			f.PC++
		case errJumped:
			// handler already repositioned f.PC.
		case errStopExecution:
			return
		case errRevert:
			f.Reverted = true
			return
		default:
			f.Err = err
			return
		}
	}
}
