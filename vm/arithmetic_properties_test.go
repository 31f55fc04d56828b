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

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"pgregory.net/rand"
)

func randomWord(r *rand.Rand) *uint256.Int {
	var b [32]byte
	r.Read(b[:])
	return new(uint256.Int).SetBytes(b[:])
}

// TestAddSubModularAcrossRandomWords checks ADD(a,b) ≡ (a+b) mod 2^256,
// symmetrically for SUB, across randomly sampled operands rather than a
// handful of fixed cases.
func TestAddSubModularAcrossRandomWords(t *testing.T) {
	r := rand.New(1)
	mod := new(big.Int).Lsh(big.NewInt(1), 256)

	for i := 0; i < 256; i++ {
		a, b := randomWord(r), randomWord(r)

		gotAdd := runOp(t, ADD, new(uint256.Int).Set(a), new(uint256.Int).Set(b))
		top, _ := gotAdd.Peek()
		wantAdd := new(big.Int).Mod(new(big.Int).Add(a.ToBig(), b.ToBig()), mod)
		if top.ToBig().Cmp(wantAdd) != 0 {
			t.Fatalf("ADD(%s, %s) = %s, want %s", a, b, top, wantAdd)
		}

		// runOp pushes a then b, leaving b on top; SUB computes top minus
		// second (b - a), the same μs[0]-μs[1] convention used elsewhere.
		gotSub := runOp(t, SUB, new(uint256.Int).Set(a), new(uint256.Int).Set(b))
		top, _ = gotSub.Peek()
		wantSub := new(big.Int).Mod(new(big.Int).Sub(b.ToBig(), a.ToBig()), mod)
		if top.ToBig().Cmp(wantSub) != 0 {
			t.Fatalf("SUB(%s, %s) = %s, want %s", b, a, top, wantSub)
		}
	}
}

// TestMulModularAcrossRandomWords checks MUL against the same
// modular-arithmetic invariant.
func TestMulModularAcrossRandomWords(t *testing.T) {
	r := rand.New(2)
	mod := new(big.Int).Lsh(big.NewInt(1), 256)

	for i := 0; i < 256; i++ {
		a, b := randomWord(r), randomWord(r)

		got := runOp(t, MUL, new(uint256.Int).Set(a), new(uint256.Int).Set(b))
		top, _ := got.Peek()
		want := new(big.Int).Mod(new(big.Int).Mul(a.ToBig(), b.ToBig()), mod)
		if top.ToBig().Cmp(want) != 0 {
			t.Fatalf("MUL(%s, %s) = %s, want %s", a, b, top, want)
		}
	}
}
