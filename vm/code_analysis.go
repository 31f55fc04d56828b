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

// CodeAnalysis precomputes, once per piece of code, which positions fall
// inside a PUSH instruction's immediate data (and must therefore never be
// treated as an opcode, even if the byte value happens to match JUMPDEST's
// 0x5b); IsJumpDest combines that with the code byte at query time. This
// depends only on the code itself, so a Frame built to run the same
// code repeatedly (e.g. a CALL into an already-running contract) can reuse
// one analysis.
type CodeAnalysis struct {
	// pushData marks every byte index that is immediate data of a PUSH
	// instruction rather than an opcode.
	pushData []bool
}

// Analyze walks code once, marking PUSH immediate-data bytes so that
// IsJumpDest can reject jumps into them even though their byte value might
// equal 0x5b.
func Analyze(code []byte) *CodeAnalysis {
	a := &CodeAnalysis{pushData: make([]bool, len(code))}
	for pc := 0; pc < len(code); {
		op := OpCode(code[pc])
		pc++
		if n := op.PushSize(); n > 0 {
			for i := 0; i < n && pc < len(code); i++ {
				a.pushData[pc] = true
				pc++
			}
		}
	}
	return a
}

// IsJumpDest reports whether pc is both within bounds, holds a JUMPDEST
// opcode, and is not PUSH immediate data.
func (a *CodeAnalysis) IsJumpDest(code []byte, pc uint64) bool {
	if pc >= uint64(len(code)) {
		return false
	}
	if int(pc) < len(a.pushData) && a.pushData[pc] {
		return false
	}
	return OpCode(code[pc]) == JUMPDEST
}
