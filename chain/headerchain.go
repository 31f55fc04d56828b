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
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/params"
	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/coreweave-chain/evmkernel/kvstore"
	"github.com/coreweave-chain/evmkernel/vm"
)

const headerCacheSize = 512

// HeaderChain is a content-addressed header store: a hash-keyed store
// with auxiliary height and total-difficulty indices and a HEAD pointer
// that always names the header with the greatest known total difficulty
// (the heaviest-chain fork-choice rule).
type HeaderChain struct {
	store kvstore.Store

	headerCache *lru.Cache[vm.Hash, *Header]
	tdCache     *lru.Cache[vm.Hash, *big.Int]

	head *Header
}

// NewHeaderChain opens a HeaderChain over store, writing genesis as both
// the genesis and head header if the store has no existing head (fresh
// chain); otherwise it loads the persisted head.
func NewHeaderChain(store kvstore.Store, genesis *Header) (*HeaderChain, error) {
	headerCache, err := lru.New[vm.Hash, *Header](headerCacheSize)
	if err != nil {
		return nil, err
	}
	tdCache, err := lru.New[vm.Hash, *big.Int](headerCacheSize)
	if err != nil {
		return nil, err
	}
	hc := &HeaderChain{store: store, headerCache: headerCache, tdCache: tdCache}

	if _, err := store.Get(headKey()); err != nil {
		if genesis == nil {
			return nil, ErrNoGenesis
		}
		if err := hc.writeGenesis(genesis); err != nil {
			return nil, err
		}
		return hc, nil
	}

	head, err := hc.Head()
	if err != nil {
		return nil, err
	}
	hc.head = head
	return hc, nil
}

func (hc *HeaderChain) writeGenesis(genesis *Header) error {
	hash := genesis.Hash()
	encoded, err := rlp.EncodeToBytes(genesis)
	if err != nil {
		return err
	}
	td := new(big.Int).Set(genesis.Difficulty)
	tdBytes, err := rlp.EncodeToBytes(td)
	if err != nil {
		return err
	}

	batch := hc.store.NewBatch()
	_ = batch.Put(genesisKey(), encoded)
	_ = batch.Put(headerKey(hash), encoded)
	_ = batch.Put(tdKey(hash), tdBytes)
	_ = batch.Put(hashByNumberKey(genesis.NumberU64()), hash[:])
	_ = batch.Put(headKey(), encoded)
	if err := batch.Write(); err != nil {
		return err
	}

	hc.head = genesis
	hc.headerCache.Add(hash, genesis)
	hc.tdCache.Add(hash, td)
	return nil
}

// GetHeaderByHash returns the header stored under hash.
func (hc *HeaderChain) GetHeaderByHash(hash vm.Hash) (*Header, error) {
	if h, ok := hc.headerCache.Get(hash); ok {
		return h, nil
	}
	data, err := hc.store.Get(headerKey(hash))
	if err != nil {
		return nil, err
	}
	var h Header
	if err := rlp.DecodeBytes(data, &h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHeaderDecodeFailure, err)
	}
	hc.headerCache.Add(hash, &h)
	return &h, nil
}

// GetHeaderByNumber returns the canonical header at the given height.
func (hc *HeaderChain) GetHeaderByNumber(number uint64) (*Header, error) {
	hashBytes, err := hc.store.Get(hashByNumberKey(number))
	if err != nil {
		return nil, err
	}
	var hash vm.Hash
	copy(hash[:], hashBytes)
	return hc.GetHeaderByHash(hash)
}

// GetCanonicalHash returns the canonical hash at the given height, or the
// zero hash if none is recorded.
func (hc *HeaderChain) GetCanonicalHash(number uint64) vm.Hash {
	hashBytes, err := hc.store.Get(hashByNumberKey(number))
	if err != nil {
		return vm.Hash{}
	}
	var hash vm.Hash
	copy(hash[:], hashBytes)
	return hash
}

// GetTd returns the total difficulty recorded for hash.
func (hc *HeaderChain) GetTd(hash vm.Hash) (*big.Int, error) {
	if td, ok := hc.tdCache.Get(hash); ok {
		return new(big.Int).Set(td), nil
	}
	data, err := hc.store.Get(tdKey(hash))
	if err != nil {
		return nil, err
	}
	td := new(big.Int)
	if err := rlp.DecodeBytes(data, td); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHeaderDecodeFailure, err)
	}
	hc.tdCache.Add(hash, td)
	return new(big.Int).Set(td), nil
}

// Head returns the current HEAD header: the one with the greatest total
// difficulty known to the chain.
func (hc *HeaderChain) Head() (*Header, error) {
	if hc.head != nil {
		return hc.head, nil
	}
	data, err := hc.store.Get(headKey())
	if err != nil {
		return nil, err
	}
	var h Header
	if err := rlp.DecodeBytes(data, &h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHeaderDecodeFailure, err)
	}
	hc.head = &h
	return &h, nil
}

// ValidateHeader checks h against parent without touching the store. It
// is exposed so callers (the CLI, a future block-level validator) can
// pre-flight a header before attempting InsertHeader.
func ValidateHeader(h, parent *Header) error {
	return validate(h, parent)
}

// validate checks h's number, timestamp, gas limit and difficulty against
// parent.
func validate(h, parent *Header) error {
	if parent.Number.Uint64()+1 != h.Number.Uint64() {
		return ErrInvalidNumber
	}
	if h.Time <= parent.Time {
		return ErrNonMonotonicTime
	}
	if h.GasLimit < params.MinGasLimit {
		return ErrGasLimitTooLow
	}
	bound := parent.GasLimit / params.GasLimitBoundDivisor
	var diff uint64
	if h.GasLimit > parent.GasLimit {
		diff = h.GasLimit - parent.GasLimit
	} else {
		diff = parent.GasLimit - h.GasLimit
	}
	if diff >= bound {
		return ErrGasLimitDrift
	}
	want := calculateDifficulty(h, parent)
	if want.Cmp(h.Difficulty) != 0 {
		return ErrInvalidDifficulty
	}
	return nil
}

// InsertHeader validates h against its already-stored parent, computes
// its total difficulty, and persists it. If the new total difficulty
// strictly exceeds the current head's, HEAD moves to h and the canonical
// height index is rewritten along h's ancestor chain back to the point it
// rejoins the previously canonical chain.
func (hc *HeaderChain) InsertHeader(h *Header) error {
	parent, err := hc.GetHeaderByHash(h.ParentHash)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownParent, err)
	}
	if err := validate(h, parent); err != nil {
		return err
	}

	parentTd, err := hc.GetTd(h.ParentHash)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownParent, err)
	}
	td := new(big.Int).Add(parentTd, h.Difficulty)

	hash := h.Hash()
	encoded, err := rlp.EncodeToBytes(h)
	if err != nil {
		return err
	}
	tdBytes, err := rlp.EncodeToBytes(td)
	if err != nil {
		return err
	}

	batch := hc.store.NewBatch()
	_ = batch.Put(headerKey(hash), encoded)
	_ = batch.Put(tdKey(hash), tdBytes)

	headTd := big.NewInt(0)
	if hc.head != nil {
		if t, err := hc.GetTd(hc.head.Hash()); err == nil {
			headTd = t
		}
	}
	reorg := td.Cmp(headTd) > 0
	if reorg {
		if err := hc.planReorg(batch, h, hash); err != nil {
			return err
		}
		_ = batch.Put(headKey(), encoded)
	}

	if err := batch.Write(); err != nil {
		return err
	}

	hc.headerCache.Add(hash, h)
	hc.tdCache.Add(hash, td)
	if reorg {
		hc.head = h
	}
	return nil
}

// planReorg rewrites the canonical height index along newHead's ancestry
// until it reaches a height whose canonical hash already matches (the
// point the new branch rejoins the old canonical chain, or genesis).
func (hc *HeaderChain) planReorg(batch kvstore.Batch, newHead *Header, newHeadHash vm.Hash) error {
	cursor := newHead
	cursorHash := newHeadHash
	for {
		existing := hc.GetCanonicalHash(cursor.NumberU64())
		if existing == cursorHash {
			return nil
		}
		if err := batch.Put(hashByNumberKey(cursor.NumberU64()), cursorHash[:]); err != nil {
			return err
		}
		if cursor.NumberU64() == 0 {
			return nil
		}
		parent, err := hc.GetHeaderByHash(cursor.ParentHash)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnknownParent, err)
		}
		cursor = parent
		cursorHash = cursor.Hash()
	}
}
