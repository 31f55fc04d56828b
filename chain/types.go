// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package chain implements a header-chain validator and block-chain
// facade: a content-addressed header store with auxiliary height and
// total-difficulty indices, plus a thin block store built on top of it.
// Transaction execution, state-trie roots and wire decoding of
// transactions themselves remain external collaborators; this package
// only decodes/encodes the header and block envelope.
package chain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/coreweave-chain/evmkernel/vm"
)

// Bloom is the 2048-bit log bloom filter carried by every header. This
// module never populates it from actual log data (that belongs to a
// transaction-execution orchestrator outside this module); it exists so
// headers round-trip through RLP with the exact field layout real
// Ethereum headers use.
type Bloom [256]byte

// BlockNonce is the 64-bit value a PoW miner finds; this module never
// verifies it but must still encode/decode it faithfully to compute a
// header's hash.
type BlockNonce [8]byte

// Header is the immutable block header the header chain validates,
// hashes and stores.
type Header struct {
	ParentHash  vm.Hash    `json:"parentHash"`
	OmmersHash  vm.Hash    `json:"sha3Uncles"`
	Coinbase    vm.Address `json:"miner"`
	StateRoot   vm.Hash    `json:"stateRoot"`
	TxHash      vm.Hash    `json:"transactionsRoot"`
	ReceiptHash vm.Hash    `json:"receiptsRoot"`
	Bloom       Bloom      `json:"logsBloom"`
	Difficulty  *big.Int   `json:"difficulty"`
	Number      *big.Int   `json:"number"`
	GasLimit    uint64     `json:"gasLimit"`
	GasUsed     uint64     `json:"gasUsed"`
	Time        uint64     `json:"timestamp"`
	Extra       []byte     `json:"extraData"`
	MixHash     vm.Hash    `json:"mixHash"`
	Nonce       BlockNonce `json:"nonce"`
}

// EmptyOmmersHash is keccak256(RLP(empty list)), the ommers-hash value a
// block with no ommers must carry; calculateDifficulty's ommer-presence
// factor compares against exactly this constant.
var EmptyOmmersHash = rlpHash([]*Header(nil))

func rlpHash(v any) vm.Hash {
	data, err := rlp.EncodeToBytes(v)
	if err != nil {
		panic("chain: rlp encode of internal constant failed: " + err.Error())
	}
	return vm.Keccak256(data)
}

// Hash returns the Keccak256 hash of h's canonical RLP encoding, the
// content address every store key in this package is built from.
func (h *Header) Hash() vm.Hash {
	return rlpHash(h)
}

// Copy returns a deep-enough copy of h for a caller that wants to mutate
// fields of a header it does not own (e.g. building a child header from a
// parent).
func (h *Header) Copy() *Header {
	cpy := *h
	if h.Difficulty != nil {
		cpy.Difficulty = new(big.Int).Set(h.Difficulty)
	}
	if h.Number != nil {
		cpy.Number = new(big.Int).Set(h.Number)
	}
	if len(h.Extra) > 0 {
		cpy.Extra = append([]byte(nil), h.Extra...)
	}
	return &cpy
}

// Block pairs a Header with its transactions and ommers. Transactions are
// kept as opaque, already-RLP-encoded values: decoding the transaction
// envelope itself is an external collaborator's job.
type Block struct {
	Header       *Header
	Transactions []rlp.RawValue
	Ommers       []*Header
}

// Hash returns the hash of the block's header, the key every store
// operation in this package addresses a block by.
func (b *Block) Hash() vm.Hash {
	return b.Header.Hash()
}

// NumberU64 returns the block number as a uint64, panicking if Number is
// nil (every header this package persists must have one).
func (h *Header) NumberU64() uint64 {
	return h.Number.Uint64()
}
