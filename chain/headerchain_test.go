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

	"github.com/coreweave-chain/evmkernel/kvstore"
)

func newTestGenesis() *Header {
	return &Header{
		Number:     big.NewInt(0),
		Difficulty: big.NewInt(131072),
		GasLimit:   5_000_000,
		Time:       0,
		OmmersHash: EmptyOmmersHash,
	}
}

func childOf(t *testing.T, parent *Header, extra byte) *Header {
	t.Helper()
	h := &Header{
		ParentHash: parent.Hash(),
		Number:     new(big.Int).Add(parent.Number, big.NewInt(1)),
		GasLimit:   parent.GasLimit,
		Time:       parent.Time + 10,
		OmmersHash: EmptyOmmersHash,
		Extra:      []byte{extra},
	}
	h.Difficulty = calculateDifficulty(h, parent)
	return h
}

func TestHeaderChainGenesisIsHead(t *testing.T) {
	genesis := newTestGenesis()
	hc, err := NewHeaderChain(kvstore.NewMemory(), genesis)
	if err != nil {
		t.Fatal(err)
	}
	head, err := hc.Head()
	if err != nil {
		t.Fatal(err)
	}
	if head.Hash() != genesis.Hash() {
		t.Fatalf("head = %x, want genesis %x", head.Hash(), genesis.Hash())
	}
	td, err := hc.GetTd(genesis.Hash())
	if err != nil {
		t.Fatal(err)
	}
	if td.Cmp(genesis.Difficulty) != 0 {
		t.Fatalf("genesis TD = %s, want %s", td, genesis.Difficulty)
	}
}

func TestHeaderChainRejectsUnknownParent(t *testing.T) {
	genesis := newTestGenesis()
	hc, err := NewHeaderChain(kvstore.NewMemory(), genesis)
	if err != nil {
		t.Fatal(err)
	}
	orphan := &Header{
		ParentHash: [32]byte{0xff},
		Number:     big.NewInt(1),
		GasLimit:   genesis.GasLimit,
		Time:       1,
	}
	if err := hc.InsertHeader(orphan); err == nil {
		t.Fatal("expected error for unknown parent, got nil")
	}
}

func TestHeaderChainTotalDifficultyAccumulates(t *testing.T) {
	genesis := newTestGenesis()
	hc, err := NewHeaderChain(kvstore.NewMemory(), genesis)
	if err != nil {
		t.Fatal(err)
	}
	h1 := childOf(t, genesis, 0x01)
	if err := hc.InsertHeader(h1); err != nil {
		t.Fatal(err)
	}
	td1, err := hc.GetTd(h1.Hash())
	if err != nil {
		t.Fatal(err)
	}
	want := new(big.Int).Add(genesis.Difficulty, h1.Difficulty)
	if td1.Cmp(want) != 0 {
		t.Fatalf("TD(h1) = %s, want %s", td1, want)
	}
}

// TestHeaderChainForkChoicePicksGreaterTD checks that, of two sibling
// headers at the same height, HEAD follows the one with greater total
// difficulty, and the height index points at it.
func TestHeaderChainForkChoicePicksGreaterTD(t *testing.T) {
	genesis := newTestGenesis()
	hc, err := NewHeaderChain(kvstore.NewMemory(), genesis)
	if err != nil {
		t.Fatal(err)
	}

	weak := childOf(t, genesis, 0xAA)
	if err := hc.InsertHeader(weak); err != nil {
		t.Fatal(err)
	}

	// A sibling mined 1 second after genesis (instead of 10) earns a higher
	// calculated difficulty, so its total difficulty exceeds weak's and it
	// must overtake weak as HEAD.
	strong := childOf(t, genesis, 0xBB)
	strong.Time = genesis.Time + 1
	strong.Difficulty = calculateDifficulty(strong, genesis)
	if err := hc.InsertHeader(strong); err != nil {
		t.Fatal(err)
	}

	head, err := hc.Head()
	if err != nil {
		t.Fatal(err)
	}
	if head.Hash() != strong.Hash() {
		t.Fatalf("head = %x, want strong sibling %x", head.Hash(), strong.Hash())
	}

	canonical := hc.GetCanonicalHash(1)
	if canonical != strong.Hash() {
		t.Fatalf("GetHeaderByNumber(1) hash = %x, want %x", canonical, strong.Hash())
	}
}

func TestHeaderChainRejectsBadGasLimitDrift(t *testing.T) {
	genesis := newTestGenesis()
	hc, err := NewHeaderChain(kvstore.NewMemory(), genesis)
	if err != nil {
		t.Fatal(err)
	}
	h := childOf(t, genesis, 0x01)
	h.GasLimit = genesis.GasLimit * 2 // far outside the 1/1024 bound
	if err := hc.InsertHeader(h); err == nil {
		t.Fatal("expected gas limit drift error, got nil")
	}
}

func TestHeaderChainRejectsNonMonotonicTimestamp(t *testing.T) {
	genesis := newTestGenesis()
	hc, err := NewHeaderChain(kvstore.NewMemory(), genesis)
	if err != nil {
		t.Fatal(err)
	}
	h := childOf(t, genesis, 0x01)
	h.Time = genesis.Time
	if err := hc.InsertHeader(h); err == nil {
		t.Fatal("expected non-monotonic timestamp error, got nil")
	}
}
