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

func registerSystemOps() {
	newOp(CREATE, 3, 1, opCreate)
	newOp(CALL, 7, 1, opCall)
	newOp(CALLCODE, 7, 1, opCallCode)
	newOp(RETURN, 2, 0, opReturn)
	newOp(DELEGATECALL, 6, 1, opDelegateCall)
	newOp(REVERT, 2, 0, opRevert)
	newOp(INVALID, 0, 0, opInvalid)
	newOp(SELFDESTRUCT, 1, 0, opSelfdestruct)
}

func opReturn(f *Frame, e *EVM) error {
	offset, _ := f.Stack.Pop()
	size, _ := f.Stack.Pop()
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
	f.Output = f.Memory.Fetch(off, sz)
	return errStopExecution
}

func opRevert(f *Frame, e *EVM) error {
	offset, _ := f.Stack.Pop()
	size, _ := f.Stack.Pop()
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
	f.Output = f.Memory.Fetch(off, sz)
	return errRevert
}

func opInvalid(f *Frame, e *EVM) error {
	return ErrInvalidCode
}

func opSelfdestruct(f *Frame, e *EVM) error {
	if f.Static {
		return ErrWriteProtection
	}
	beneficiaryW, _ := f.Stack.Pop()
	beneficiary := Address(beneficiaryW.Bytes20())

	if !e.State.HasSelfdestructed(f.Address) {
		e.State.AddRefund(uint64(selfdestructRefundGas))
	}
	f.Selfdestructed = true
	f.SelfdestructBenefic = beneficiary
	return errStopExecution
}

func opCreate(f *Frame, e *EVM) error {
	if f.Static {
		return ErrWriteProtection
	}
	value, _ := f.Stack.Pop()
	offset, _ := f.Stack.Pop()
	size, _ := f.Stack.Pop()

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
	initCode := append([]byte(nil), f.Memory.Fetch(off, sz)...)

	gas := retainedCallGas(f.Gas, f.Gas)
	if err := f.UseGas(gas); err != nil {
		return err
	}

	addr, output, gasLeft, success := e.Create(f, CreateParams{
		Caller:   f.Address,
		Value:    value,
		InitCode: initCode,
		Gas:      gas,
	})
	f.RefundGas(gasLeft)

	result, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	if success {
		result.SetBytes(addr[:])
		f.ReturnData = nil
	} else {
		result.Clear()
		f.ReturnData = output
	}
	return nil
}

func opCall(f *Frame, e *EVM) error {
	return genericCall(f, e, CallKindCall)
}

func opCallCode(f *Frame, e *EVM) error {
	return genericCall(f, e, CallKindCallCode)
}

func opDelegateCall(f *Frame, e *EVM) error {
	return genericCall(f, e, CallKindDelegateCall)
}

// genericCall implements the shared CALL/CALLCODE/DELEGATECALL argument
// layout and gas accounting; the three opcodes differ only in which
// address supplies storage/balance versus code, and whether a value
// argument is present at all.
func genericCall(f *Frame, e *EVM, kind CallKind) error {
	gasW, _ := f.Stack.Pop()
	addrW, _ := f.Stack.Pop()

	value := uint256.NewInt(0)
	if kind == CallKindCall || kind == CallKindCallCode {
		value, _ = f.Stack.Pop()
	}
	if kind == CallKindCall && f.Static && !value.IsZero() {
		return ErrWriteProtection
	}

	inOffset, _ := f.Stack.Pop()
	inSize, _ := f.Stack.Pop()
	retOffset, _ := f.Stack.Pop()
	retSize, _ := f.Stack.Pop()

	inOff, inSz, err := asMemoryRange(inOffset, inSize)
	if err != nil {
		return err
	}
	retOff, retSz, err := asMemoryRange(retOffset, retSize)
	if err != nil {
		return err
	}

	needed := inOff + inSz
	if retOff+retSz > needed {
		needed = retOff + retSz
	}
	if cost, err := memoryExpansionGas(f.Memory, 0, needed); err != nil {
		return err
	} else if err := f.UseGas(cost); err != nil {
		return err
	}

	if !value.IsZero() {
		if err := f.UseGas(callValueTransferGas); err != nil {
			return err
		}
	}

	codeAddr := Address(addrW.Bytes20())
	target := codeAddr
	caller := f.Address
	if kind == CallKindCallCode || kind == CallKindDelegateCall {
		target = f.Address
	}
	if kind == CallKindDelegateCall {
		caller = f.Caller
		value = f.Value
	}

	if kind == CallKindCall && !value.IsZero() && !e.State.Exist(codeAddr) {
		if err := f.UseGas(callNewAccountGas); err != nil {
			return err
		}
	}

	if err := f.Memory.Extend(inOff, inSz); err != nil {
		return err
	}
	if err := f.Memory.Extend(retOff, retSz); err != nil {
		return err
	}
	input := append([]byte(nil), f.Memory.Fetch(inOff, inSz)...)

	requestedGas, overflow := gasW.Uint64WithOverflow()
	if overflow {
		requestedGas = ^uint64(0)
	}
	gas := retainedCallGas(f.Gas, Gas(requestedGas))
	if err := f.UseGas(gas); err != nil {
		return err
	}
	if !value.IsZero() {
		gas += callStipend
	}

	output, gasLeft, success := e.Call(f, CallParams{
		Kind:        kind,
		Caller:      caller,
		Address:     target,
		CodeAddress: codeAddr,
		Value:       value,
		Input:       input,
		Gas:         gas,
		Static:      f.Static,
	})
	f.RefundGas(gasLeft)
	f.ReturnData = output

	if success {
		if err := f.Memory.Store(retOff, minU64(retSz, uint64(len(output))), output); err != nil {
			return err
		}
	}

	result, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	if success {
		result.SetOne()
	} else {
		result.Clear()
	}
	return nil
}

func minU64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
