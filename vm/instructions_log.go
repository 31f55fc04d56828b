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

func registerLogOps() {
	for n := 0; n <= 4; n++ {
		op := LOG0 + OpCode(n)
		topics := n
		newOp(op, topics+2, 0, makeLog(topics))
	}
}

// makeLog returns a handler for LOGn: pop (offset, size, topic_1..topic_n)
// and append a Log record to the frame, to be adopted by State only once
// the enclosing call returns successfully.
func makeLog(numTopics int) opHandler {
	return func(f *Frame, e *EVM) error {
		if f.Static {
			return ErrWriteProtection
		}
		offsetW, _ := f.Stack.Pop()
		sizeW, _ := f.Stack.Pop()

		off, sz, err := asMemoryRange(offsetW, sizeW)
		if err != nil {
			return err
		}
		if cost, err := memoryExpansionGas(f.Memory, off, sz); err != nil {
			return err
		} else if err := f.UseGas(cost); err != nil {
			return err
		}
		if err := f.UseGas(Gas(sz) * logDataGasPerByte); err != nil {
			return err
		}
		if err := f.Memory.Extend(off, sz); err != nil {
			return err
		}
		data := f.Memory.Fetch(off, sz)

		topics := make([]Hash, numTopics)
		for i := 0; i < numTopics; i++ {
			w, _ := f.Stack.Pop()
			topics[i] = Hash(w.Bytes32())
		}

		f.Logs = append(f.Logs, Log{
			Address: f.Address,
			Topics:  topics,
			Data:    data,
		})
		return nil
	}
}
