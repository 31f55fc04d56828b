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

	"github.com/ethereum/go-ethereum/params"
)

// difficultyFloor is the protocol-constant lower clamp calculateDifficulty
// never returns below: the real Frontier minimum-difficulty constant,
// rather than the candidate header's own difficulty.
var difficultyFloor = new(big.Int).Set(params.MinimumDifficulty)

var (
	big1            = big.NewInt(1)
	big9            = big.NewInt(9)
	big99           = big.NewInt(-99)
	big2048         = big.NewInt(2048)
	bigBombDivisor  = big.NewInt(100000)
	bigBombStart    = big.NewInt(3000000)
	bigBombStartAdj = big.NewInt(2)
)

// calculateDifficulty computes a header's expected difficulty: the
// genesis header keeps its own recorded difficulty, every later header's
// difficulty is derived from its parent plus a time-adjustment term and
// the difficulty-bomb exponential, clamped below by difficultyFloor.
func calculateDifficulty(h, p *Header) *big.Int {
	if h.Number.Sign() == 0 {
		return new(big.Int).Set(h.Difficulty)
	}

	x := new(big.Int).Div(p.Difficulty, big2048)

	y := big.NewInt(2)
	if h.OmmersHash == EmptyOmmersHash {
		y = big.NewInt(1)
	}

	timeDelta := new(big.Int).SetUint64(h.Time)
	timeDelta.Sub(timeDelta, new(big.Int).SetUint64(p.Time))
	timeDelta.Div(timeDelta, big9)

	timeFactor := new(big.Int).Sub(y, timeDelta)
	if timeFactor.Cmp(big99) < 0 {
		timeFactor.Set(big99)
	}

	x.Mul(x, timeFactor)

	diff := new(big.Int).Add(p.Difficulty, x)
	diff.Add(diff, difficultyBomb(h.Number))

	if diff.Cmp(difficultyFloor) < 0 {
		diff.Set(difficultyFloor)
	}
	return diff
}

// difficultyBomb computes the exponential "ice age" term: 2^(fakeHeight/
// 100000 - 2), or 0 if that exponent would be negative.
func difficultyBomb(number *big.Int) *big.Int {
	fakeHeight := new(big.Int).Sub(number, bigBombStart)
	if fakeHeight.Sign() < 0 {
		fakeHeight.SetUint64(0)
	}
	periodCount := new(big.Int).Div(fakeHeight, bigBombDivisor)
	exp := new(big.Int).Sub(periodCount, bigBombStartAdj)
	if exp.Sign() < 0 {
		return new(big.Int)
	}
	if !exp.IsUint64() || exp.Uint64() > 1024 {
		// Overflow guard: no real chain reaches an exponent this large
		// before the floor/consensus rules would already have forked.
		return new(big.Int)
	}
	return new(big.Int).Lsh(big1, uint(exp.Uint64()))
}
