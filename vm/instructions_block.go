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

func registerBlockOps() {
	newOp(BLOCKHASH, 1, 1, opBlockHash)
	newOp(COINBASE, 0, 1, opCoinbase)
	newOp(TIMESTAMP, 0, 1, opTimestamp)
	newOp(NUMBER, 0, 1, opNumber)
	newOp(DIFFICULTY, 0, 1, opDifficulty)
	newOp(GASLIMIT, 0, 1, opGasLimit)
}

func opBlockHash(f *Frame, e *EVM) error {
	top, _ := f.Stack.Peek()
	if !top.IsUint64() {
		top.Clear()
		return nil
	}
	num := top.Uint64()
	if num >= f.Block.BlockNumber || f.Block.BlockNumber-num > 256 {
		top.Clear()
		return nil
	}
	h := f.Block.GetHash(num)
	top.SetBytes32(h[:])
	return nil
}

func opCoinbase(f *Frame, e *EVM) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetBytes(f.Block.Coinbase[:])
	return nil
}

func opTimestamp(f *Frame, e *EVM) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetUint64(f.Block.Timestamp)
	return nil
}

func opNumber(f *Frame, e *EVM) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetUint64(f.Block.BlockNumber)
	return nil
}

func opDifficulty(f *Frame, e *EVM) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.Set(f.Block.Difficulty)
	return nil
}

func opGasLimit(f *Frame, e *EVM) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetUint64(f.Block.GasLimit)
	return nil
}
