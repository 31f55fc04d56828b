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

// errJumped is a control-flow signal (not a fault) returned by JUMP/JUMPI
// to tell the interpreter loop that f.PC already holds the next
// instruction to execute and must not be auto-advanced.
const errJumped = ConstError("internal: jump taken")

func registerStackMemoryStorageFlowOps() {
	newOp(POP, 1, 0, opPop)
	newOp(MLOAD, 1, 1, opMLoad)
	newOp(MSTORE, 2, 0, opMStore)
	newOp(MSTORE8, 2, 0, opMStore8)
	newOp(SLOAD, 1, 1, opSLoad)
	newOp(SSTORE, 2, 0, opSStore)
	newOp(JUMP, 1, 0, opJump)
	newOp(JUMPI, 2, 0, opJumpi)
	newOp(PC, 0, 1, opPC)
	newOp(MSIZE, 0, 1, opMSize)
	newOp(GAS, 0, 1, opGas)
	newOp(JUMPDEST, 0, 0, opJumpdest)

	for n := 1; n <= 32; n++ {
		op := PUSH1 + OpCode(n-1)
		size := n
		newOp(op, 0, 1, makePush(size))
	}
	for n := 1; n <= 16; n++ {
		op := DUP1 + OpCode(n-1)
		pos := n
		newOp(op, pos, pos+1, makeDup(pos))
	}
	for n := 1; n <= 16; n++ {
		op := SWAP1 + OpCode(n-1)
		pos := n
		newOp(op, pos+1, pos+1, makeSwap(pos))
	}
}

func opPop(f *Frame, e *EVM) error {
	_, err := f.Stack.Pop()
	return err
}

func opMLoad(f *Frame, e *EVM) error {
	top, _ := f.Stack.Peek()
	offset, overflow := top.Uint64WithOverflow()
	if overflow {
		return ErrGasUintOverflow
	}
	if cost, err := memoryExpansionGas(f.Memory, offset, 32); err != nil {
		return err
	} else if err := f.UseGas(cost); err != nil {
		return err
	}
	if err := f.Memory.Extend(offset, 32); err != nil {
		return err
	}
	return f.Memory.GetWord(offset, top)
}

func opMStore(f *Frame, e *EVM) error {
	offsetW, _ := f.Stack.Pop()
	val, _ := f.Stack.Pop()
	offset, overflow := offsetW.Uint64WithOverflow()
	if overflow {
		return ErrGasUintOverflow
	}
	if cost, err := memoryExpansionGas(f.Memory, offset, 32); err != nil {
		return err
	} else if err := f.UseGas(cost); err != nil {
		return err
	}
	if err := f.Memory.Extend(offset, 32); err != nil {
		return err
	}
	return f.Memory.SetWord(offset, val)
}

func opMStore8(f *Frame, e *EVM) error {
	offsetW, _ := f.Stack.Pop()
	val, _ := f.Stack.Pop()
	offset, overflow := offsetW.Uint64WithOverflow()
	if overflow {
		return ErrGasUintOverflow
	}
	if cost, err := memoryExpansionGas(f.Memory, offset, 1); err != nil {
		return err
	} else if err := f.UseGas(cost); err != nil {
		return err
	}
	if err := f.Memory.Extend(offset, 1); err != nil {
		return err
	}
	return f.Memory.SetByte(offset, byte(val.Uint64()))
}

func opSLoad(f *Frame, e *EVM) error {
	top, _ := f.Stack.Peek()
	key := Hash(top.Bytes32())
	val := e.State.GetStorage(f.Address, key)
	top.SetBytes32(val[:])
	return nil
}

func opSStore(f *Frame, e *EVM) error {
	if f.Static {
		return ErrWriteProtection
	}
	keyW, _ := f.Stack.Pop()
	valW, _ := f.Stack.Pop()
	key := Hash(keyW.Bytes32())
	newVal := Hash(valW.Bytes32())
	current := e.State.GetStorage(f.Address, key)

	cost, refund := gasSStore(isZeroHash(current), isZeroHash(newVal))
	if err := f.UseGas(cost); err != nil {
		return err
	}
	if refund > 0 {
		e.State.AddRefund(uint64(refund))
	}
	e.State.SetStorage(f.Address, key, newVal)
	return nil
}

func isZeroHash(h Hash) bool {
	return h == Hash{}
}

func opJump(f *Frame, e *EVM) error {
	destW, _ := f.Stack.Pop()
	if !destW.IsUint64() {
		return ErrInvalidJump
	}
	dest := destW.Uint64()
	if !f.Analysis.IsJumpDest(f.Code, dest) {
		return ErrInvalidJump
	}
	f.PC = dest
	return errJumped
}

func opJumpi(f *Frame, e *EVM) error {
	destW, _ := f.Stack.Pop()
	cond, _ := f.Stack.Pop()
	if cond.IsZero() {
		return nil
	}
	if !destW.IsUint64() {
		return ErrInvalidJump
	}
	dest := destW.Uint64()
	if !f.Analysis.IsJumpDest(f.Code, dest) {
		return ErrInvalidJump
	}
	f.PC = dest
	return errJumped
}

func opPC(f *Frame, e *EVM) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetUint64(f.PC)
	return nil
}

func opMSize(f *Frame, e *EVM) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetUint64(f.Memory.Len())
	return nil
}

func opGas(f *Frame, e *EVM) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetUint64(uint64(f.Gas))
	return nil
}

func opJumpdest(f *Frame, e *EVM) error {
	return nil
}

// makePush returns a handler that pushes the next size bytes of code,
// immediately following the opcode itself, as a big-endian value
// zero-padded on the right when code runs out (PUSH1..PUSH32).
func makePush(size int) opHandler {
	return func(f *Frame, e *EVM) error {
		v, err := f.Stack.PushUndefined()
		if err != nil {
			return err
		}
		start := f.PC + 1
		var buf [32]byte
		for i := 0; i < size; i++ {
			pos := start + uint64(i)
			if pos < uint64(len(f.Code)) {
				buf[i] = f.Code[pos]
			}
		}
		v.SetBytes(buf[:size])
		f.PC = start + uint64(size)
		return errJumped
	}
}

func makeDup(pos int) opHandler {
	return func(f *Frame, e *EVM) error {
		return f.Stack.Dup(pos)
	}
}

func makeSwap(pos int) opHandler {
	return func(f *Frame, e *EVM) error {
		return f.Stack.Swap(pos)
	}
}
