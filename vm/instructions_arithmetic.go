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

func registerArithmeticOps() {
	newOp(STOP, 0, 0, opStop)

	newOp(ADD, 2, 1, opAdd)
	newOp(MUL, 2, 1, opMul)
	newOp(SUB, 2, 1, opSub)
	newOp(DIV, 2, 1, opDiv)
	newOp(SDIV, 2, 1, opSDiv)
	newOp(MOD, 2, 1, opMod)
	newOp(SMOD, 2, 1, opSMod)
	newOp(ADDMOD, 3, 1, opAddMod)
	newOp(MULMOD, 3, 1, opMulMod)
	newOp(EXP, 2, 1, opExp)
	newOp(SIGNEXTEND, 2, 1, opSignExtend)
}

func opStop(f *Frame, e *EVM) error {
	return errStopExecution
}

func opAdd(f *Frame, e *EVM) error {
	a, _ := f.Stack.Pop()
	b, _ := f.Stack.Peek()
	b.Add(a, b)
	return nil
}

func opMul(f *Frame, e *EVM) error {
	a, _ := f.Stack.Pop()
	b, _ := f.Stack.Peek()
	b.Mul(a, b)
	return nil
}

func opSub(f *Frame, e *EVM) error {
	a, _ := f.Stack.Pop()
	b, _ := f.Stack.Peek()
	b.Sub(a, b)
	return nil
}

// opDiv implements EVM division: division by zero yields 0, not a fault
// resulting in 0.
func opDiv(f *Frame, e *EVM) error {
	a, _ := f.Stack.Pop()
	b, _ := f.Stack.Peek()
	b.Div(a, b)
	return nil
}

func opSDiv(f *Frame, e *EVM) error {
	a, _ := f.Stack.Pop()
	b, _ := f.Stack.Peek()
	b.SDiv(a, b)
	return nil
}

func opMod(f *Frame, e *EVM) error {
	a, _ := f.Stack.Pop()
	b, _ := f.Stack.Peek()
	b.Mod(a, b)
	return nil
}

func opSMod(f *Frame, e *EVM) error {
	a, _ := f.Stack.Pop()
	b, _ := f.Stack.Peek()
	b.SMod(a, b)
	return nil
}

func opAddMod(f *Frame, e *EVM) error {
	a, _ := f.Stack.Pop()
	b, _ := f.Stack.Pop()
	n, _ := f.Stack.Peek()
	n.AddMod(a, b, n)
	return nil
}

func opMulMod(f *Frame, e *EVM) error {
	a, _ := f.Stack.Pop()
	b, _ := f.Stack.Pop()
	n, _ := f.Stack.Peek()
	n.MulMod(a, b, n)
	return nil
}

func opExp(f *Frame, e *EVM) error {
	base, _ := f.Stack.Pop()
	exponent, _ := f.Stack.Peek()
	if err := f.UseGas(gasExp(exponent.ByteLen())); err != nil {
		return err
	}
	exponent.Exp(base, exponent)
	return nil
}

func opSignExtend(f *Frame, e *EVM) error {
	back, _ := f.Stack.Pop()
	num, _ := f.Stack.Peek()
	num.ExtendSign(num, back)
	return nil
}
