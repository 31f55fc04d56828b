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

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/coreweave-chain/evmkernel/kvstore"
	"github.com/coreweave-chain/evmkernel/vm"
)

// BlockChain wraps a HeaderChain, adds a block-by-hash store, and
// initializes the genesis block on first use. It does not implement
// block-level re-execution or total-difficulty-driven block (as opposed
// to header) reorg; those belong to a higher layer.
type BlockChain struct {
	headers *HeaderChain
	store   kvstore.Store
}

// NewBlockChain opens a BlockChain over store. If the store has no
// existing head, genesis is written as both the genesis header and the
// genesis block.
func NewBlockChain(store kvstore.Store, genesis *Block) (*BlockChain, error) {
	var genesisHeader *Header
	if genesis != nil {
		genesisHeader = genesis.Header
	}
	hc, err := NewHeaderChain(store, genesisHeader)
	if err != nil {
		return nil, err
	}
	bc := &BlockChain{headers: hc, store: store}

	if genesis != nil {
		if _, err := store.Get(blockKey(genesis.Hash())); err != nil {
			if err := bc.writeBlock(genesis); err != nil {
				return nil, err
			}
		}
	}
	return bc, nil
}

// Headers exposes the underlying HeaderChain for callers that only need
// header-level queries.
func (bc *BlockChain) Headers() *HeaderChain { return bc.headers }

func (bc *BlockChain) writeBlock(b *Block) error {
	encoded, err := rlp.EncodeToBytes(b)
	if err != nil {
		return err
	}
	return bc.store.Put(blockKey(b.Hash()), encoded)
}

// GetBlockByHash returns the block stored under hash.
func (bc *BlockChain) GetBlockByHash(hash vm.Hash) (*Block, error) {
	data, err := bc.store.Get(blockKey(hash))
	if err != nil {
		return nil, err
	}
	var b Block
	if err := rlp.DecodeBytes(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBlockDecodeFailure, err)
	}
	return &b, nil
}

// GetBlockByNumber returns the canonical block at the given height.
func (bc *BlockChain) GetBlockByNumber(number uint64) (*Block, error) {
	hash := bc.headers.GetCanonicalHash(number)
	if hash == (vm.Hash{}) {
		return nil, ErrUnknownBlockParent
	}
	return bc.GetBlockByHash(hash)
}

// CurrentHeader returns the chain's HEAD header.
func (bc *BlockChain) CurrentHeader() (*Header, error) {
	return bc.headers.Head()
}

// GetTd delegates to the header chain.
func (bc *BlockChain) GetTd(hash vm.Hash) (*big.Int, error) {
	return bc.headers.GetTd(hash)
}

// InsertBlocks validates and persists each block in order: its header is
// checked and inserted via the header chain (which may trigger a reorg of
// the canonical height index), then the block body is written keyed by
// hash. A header failing validation aborts the whole call without
// persisting that block or any after it; blocks earlier in the same
// slice that were already inserted remain committed.
func (bc *BlockChain) InsertBlocks(blocks []*Block) error {
	for i, b := range blocks {
		if err := bc.headers.InsertHeader(b.Header); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		if err := bc.writeBlock(b); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
	}
	return nil
}
