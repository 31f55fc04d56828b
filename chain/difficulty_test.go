// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package chain

import (
	"math/big"
	"testing"
)

// TestCalculateDifficultyFastBlockRaisesDifficulty checks a child mined 5
// seconds after its parent against the expected adjusted difficulty.
func TestCalculateDifficultyFastBlockRaisesDifficulty(t *testing.T) {
	parent := &Header{
		Number:     big.NewInt(0),
		Difficulty: big.NewInt(131072),
		Time:       0,
	}
	h := &Header{
		Number:     big.NewInt(1),
		Time:       5,
		OmmersHash: EmptyOmmersHash,
	}

	got := calculateDifficulty(h, parent)
	want := big.NewInt(131136)
	if got.Cmp(want) != 0 {
		t.Fatalf("calculateDifficulty() = %s, want %s", got, want)
	}
}

func TestCalculateDifficultyGenesisKeepsOwnValue(t *testing.T) {
	h := &Header{Number: big.NewInt(0), Difficulty: big.NewInt(17_179_869_184)}
	got := calculateDifficulty(h, h)
	if got.Cmp(h.Difficulty) != 0 {
		t.Fatalf("genesis difficulty changed: got %s, want %s", got, h.Difficulty)
	}
}

func TestCalculateDifficultyHasOmmerPenalty(t *testing.T) {
	parent := &Header{Number: big.NewInt(0), Difficulty: big.NewInt(131072), Time: 0}
	withOmmers := &Header{Number: big.NewInt(1), Time: 5, OmmersHash: [32]byte{0x01}}
	noOmmers := &Header{Number: big.NewInt(1), Time: 5, OmmersHash: EmptyOmmersHash}

	dWith := calculateDifficulty(withOmmers, parent)
	dWithout := calculateDifficulty(noOmmers, parent)
	if dWith.Cmp(dWithout) <= 0 {
		t.Fatalf("expected ommer-bearing header to raise difficulty more: with=%s without=%s", dWith, dWithout)
	}
}

func TestCalculateDifficultyNeverBelowFloor(t *testing.T) {
	parent := &Header{Number: big.NewInt(0), Difficulty: big.NewInt(131072), Time: 0}
	// A huge timestamp gap drives the time factor to its -99 clamp,
	// which would otherwise push the result below the protocol floor.
	h := &Header{Number: big.NewInt(1), Time: 100_000, OmmersHash: EmptyOmmersHash}

	got := calculateDifficulty(h, parent)
	if got.Cmp(difficultyFloor) < 0 {
		t.Fatalf("calculateDifficulty() = %s, below floor %s", got, difficultyFloor)
	}
}

func TestCalculateDifficultyDeterministic(t *testing.T) {
	parent := &Header{Number: big.NewInt(9), Difficulty: big.NewInt(2_000_000_000), Time: 1000}
	h := &Header{Number: big.NewInt(10), Time: 1013, OmmersHash: EmptyOmmersHash}

	a := calculateDifficulty(h, parent)
	b := calculateDifficulty(h, parent)
	if a.Cmp(b) != 0 {
		t.Fatalf("calculateDifficulty() not deterministic: %s vs %s", a, b)
	}
}
