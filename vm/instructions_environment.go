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

func registerEnvironmentOps() {
	newOp(ADDRESS, 0, 1, opAddress)
	newOp(BALANCE, 1, 1, opBalance)
	newOp(ORIGIN, 0, 1, opOrigin)
	newOp(CALLER, 0, 1, opCaller)
	newOp(CALLVALUE, 0, 1, opCallValue)
	newOp(CALLDATALOAD, 1, 1, opCallDataLoad)
	newOp(CALLDATASIZE, 0, 1, opCallDataSize)
	newOp(CALLDATACOPY, 3, 0, opCallDataCopy)
	newOp(CODESIZE, 0, 1, opCodeSize)
	newOp(CODECOPY, 3, 0, opCodeCopy)
	newOp(GASPRICE, 0, 1, opGasPrice)
	newOp(EXTCODESIZE, 1, 1, opExtCodeSize)
	newOp(EXTCODECOPY, 4, 0, opExtCodeCopy)
	newOp(RETURNDATASIZE, 0, 1, opReturnDataSize)
	newOp(RETURNDATACOPY, 3, 0, opReturnDataCopy)
}

func opAddress(f *Frame, e *EVM) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetBytes(f.Address[:])
	return nil
}

func opBalance(f *Frame, e *EVM) error {
	top, _ := f.Stack.Peek()
	addr := Address(top.Bytes20())
	bal := e.State.GetBalance(addr)
	top.Set(bal)
	return nil
}

func opOrigin(f *Frame, e *EVM) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetBytes(f.Tx.Origin[:])
	return nil
}

func opCaller(f *Frame, e *EVM) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetBytes(f.Caller[:])
	return nil
}

func opCallValue(f *Frame, e *EVM) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.Set(f.Value)
	return nil
}

func opCallDataSize(f *Frame, e *EVM) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetUint64(uint64(len(f.Input)))
	return nil
}

func opCallDataLoad(f *Frame, e *EVM) error {
	top, _ := f.Stack.Peek()
	if !top.IsUint64() {
		top.Clear()
		return nil
	}
	offset := top.Uint64()
	top.SetBytes32(readPadded(f.Input, offset, 32))
	return nil
}

func opCallDataCopy(f *Frame, e *EVM) error {
	return copyToMemory(f, f.Input)
}

func opCodeSize(f *Frame, e *EVM) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetUint64(uint64(len(f.Code)))
	return nil
}

func opCodeCopy(f *Frame, e *EVM) error {
	return copyToMemory(f, f.Code)
}

func opGasPrice(f *Frame, e *EVM) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.Set(f.Tx.GasPrice)
	return nil
}

func opExtCodeSize(f *Frame, e *EVM) error {
	top, _ := f.Stack.Peek()
	addr := Address(top.Bytes20())
	top.SetUint64(uint64(e.State.GetCodeSize(addr)))
	return nil
}

func opExtCodeCopy(f *Frame, e *EVM) error {
	addrWord, _ := f.Stack.Pop()
	addr := Address(addrWord.Bytes20())
	code := e.State.GetCode(addr)
	return copyToMemory(f, code)
}

func opReturnDataSize(f *Frame, e *EVM) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetUint64(uint64(len(f.ReturnData)))
	return nil
}

func opReturnDataCopy(f *Frame, e *EVM) error {
	memOffset, _ := f.Stack.Pop()
	dataOffset, _ := f.Stack.Pop()
	length, _ := f.Stack.Pop()

	dataOff, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		return ErrGasUintOverflow
	}
	length64, overflow := length.Uint64WithOverflow()
	if overflow {
		return ErrGasUintOverflow
	}
	if dataOff+length64 > uint64(len(f.ReturnData)) || dataOff+length64 < dataOff {
		return ErrReturnDataOutOfBounds
	}

	memOff, overflow := memOffset.Uint64WithOverflow()
	if overflow {
		return ErrGasUintOverflow
	}

	if cost, err := memoryExpansionGas(f.Memory, memOff, length64); err != nil {
		return err
	} else if err := f.UseGas(cost); err != nil {
		return err
	}
	if err := f.UseGas(gasCopy(length64)); err != nil {
		return err
	}
	if err := f.Memory.Extend(memOff, length64); err != nil {
		return err
	}
	return f.Memory.Store(memOff, length64, f.ReturnData[dataOff:dataOff+length64])
}

// copyToMemory implements the shared CALLDATACOPY/CODECOPY/EXTCODECOPY
// pattern: pop (destOffset, srcOffset, size), pay for memory expansion
// and the per-word copy cost, then write a zero-padded slice of src.
func copyToMemory(f *Frame, src []byte) error {
	memOffset, _ := f.Stack.Pop()
	srcOffset, _ := f.Stack.Pop()
	length, _ := f.Stack.Pop()

	srcOff, overflow := srcOffset.Uint64WithOverflow()
	if overflow {
		srcOff = ^uint64(0)
	}
	length64, overflow := length.Uint64WithOverflow()
	if overflow || length64+31 < length64 {
		return ErrGasUintOverflow
	}
	memOff, overflow := memOffset.Uint64WithOverflow()
	if overflow {
		return ErrGasUintOverflow
	}

	if cost, err := memoryExpansionGas(f.Memory, memOff, length64); err != nil {
		return err
	} else if err := f.UseGas(cost); err != nil {
		return err
	}
	if err := f.UseGas(gasCopy(length64)); err != nil {
		return err
	}
	if err := f.Memory.Extend(memOff, length64); err != nil {
		return err
	}
	return f.Memory.Store(memOff, length64, readPadded(src, srcOff, length64))
}

// readPadded returns size bytes starting at offset within src, the tail
// zero-filled where src is shorter, matching the EVM convention that
// CALLDATA/CODE reads past the end return zero rather than faulting.
func readPadded(src []byte, offset, size uint64) []byte {
	out := make([]byte, size)
	if offset >= uint64(len(src)) {
		return out
	}
	copy(out, src[offset:])
	return out
}

