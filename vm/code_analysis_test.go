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

import "testing"

func TestAnalyzeRejectsPushDataAsJumpdest(t *testing.T) {
	// PUSH1 0x5b, JUMPDEST
	code := []byte{byte(PUSH1), 0x5b, byte(JUMPDEST)}
	a := Analyze(code)

	if a.IsJumpDest(code, 1) {
		t.Fatal("offset 1 is PUSH1's immediate data, must not be a jump destination")
	}
	if !a.IsJumpDest(code, 2) {
		t.Fatal("offset 2 holds a real JUMPDEST, must be a valid jump destination")
	}
}

func TestAnalyzeRejectsOutOfBounds(t *testing.T) {
	code := []byte{byte(JUMPDEST)}
	a := Analyze(code)
	if a.IsJumpDest(code, 5) {
		t.Fatal("out-of-bounds offset must never be a valid jump destination")
	}
}

func TestAnalyzeHandlesPush32AtCodeEnd(t *testing.T) {
	code := append([]byte{byte(PUSH32)}, make([]byte, 10)...) // truncated immediate data
	a := Analyze(code)
	for i := 1; i < len(code); i++ {
		if !a.pushData[i] {
			t.Fatalf("offset %d should be marked as push data", i)
		}
	}
}
