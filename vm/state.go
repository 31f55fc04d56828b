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

import "github.com/holiman/uint256"

//go:generate mockgen -source state.go -destination state_mock.go -package vm

// Address is the 160-bit account address.
type Address [20]byte

// Hash is a 256-bit hash, also used as a storage key or a 32-byte log topic.
type Hash [32]byte

// Log is a single LOGn record emitted by a frame, buffered until the
// enclosing call commits.
type Log struct {
	Address Address
	Topics  []Hash
	Data    []byte
}

// State is the external collaborator the interpreter reads and mutates
// account and storage data through. It is supplied by the caller (a block
// processor, a transaction pool simulation, or a test harness) and is
// never implemented by the vm package itself: state lives outside the
// interpreter's own module boundary.
type State interface {
	// Exist reports whether addr currently has an entry in the state,
	// including accounts that are empty but not yet destroyed.
	Exist(addr Address) bool
	CreateAccount(addr Address)

	GetBalance(addr Address) *uint256.Int
	AddBalance(addr Address, amount *uint256.Int)
	SubBalance(addr Address, amount *uint256.Int)
	SetBalance(addr Address, amount *uint256.Int)

	GetNonce(addr Address) uint64
	SetNonce(addr Address, nonce uint64)

	GetCode(addr Address) []byte
	SetCode(addr Address, code []byte)
	GetCodeHash(addr Address) Hash
	GetCodeSize(addr Address) int

	GetStorage(addr Address, key Hash) Hash
	SetStorage(addr Address, key Hash, value Hash)

	AddRefund(gas uint64)
	SubRefund(gas uint64)
	GetRefund() uint64

	// Selfdestruct marks addr for destruction at the end of the
	// enclosing transaction and transfers its balance to beneficiary.
	// It returns false if addr was already marked.
	Selfdestruct(addr Address, beneficiary Address) bool
	HasSelfdestructed(addr Address) bool

	AddLog(log Log)

	GetBlockHash(number uint64) Hash

	// Snapshot returns an opaque identifier for the current state that
	// can later be passed to RevertToSnapshot to undo every mutation
	// made since, backing the CALL/CREATE child-frame commit-or-discard
	// contract.
	Snapshot() int
	RevertToSnapshot(id int)
}
