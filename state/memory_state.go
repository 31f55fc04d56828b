// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package state is a concrete vm.State implementation: an in-memory world
// state with journaled mutations so Snapshot/RevertToSnapshot can undo any
// suffix of changes, the way a CALL/CREATE child frame's effects are
// discarded on failure.
package state

import (
	"github.com/holiman/uint256"

	"github.com/coreweave-chain/evmkernel/vm"
)

type account struct {
	balance  *uint256.Int
	nonce    uint64
	code     []byte
	codeHash vm.Hash
	storage  map[vm.Hash]vm.Hash

	// exist distinguishes an account the caller explicitly created from
	// one only touched for a zero-value read: absent accounts are
	// observationally equivalent to the zero account, but Exist must
	// still report accurately.
	exist      bool
	destructed bool
}

func newAccount() *account {
	return &account{balance: uint256.NewInt(0), storage: make(map[vm.Hash]vm.Hash)}
}

// journalEntry is a recorded pre-image of one mutation, replayed in
// reverse by RevertToSnapshot.
type journalEntry func(s *MemoryState)

// MemoryState is a journaling, in-memory implementation of vm.State.
// It is not safe for concurrent use: the EVM orchestrator itself
// requires exclusive access to its State for the duration of a single
// execution.
type MemoryState struct {
	accounts  map[vm.Address]*account
	refund    uint64
	logs      []vm.Log
	journal   []journalEntry
	getHash   func(number uint64) vm.Hash
	codeStore *CodeStore
}

// New returns an empty world state. getHash resolves BLOCKHASH lookups;
// pass nil to always return the zero hash (suitable for bytecode that
// never touches BLOCKHASH).
func New(getHash func(number uint64) vm.Hash) *MemoryState {
	return &MemoryState{
		accounts: make(map[vm.Address]*account),
		getHash:  getHash,
	}
}

// NewPersistent is like New but spills deployed contract code into codeStore
// instead of keeping it only in memory, so a long-running validator's
// accumulated contract code can outlive the process. Balances, nonces and
// storage slots remain in-memory only; only the content-addressed,
// immutable code blobs are worth persisting here.
func NewPersistent(getHash func(number uint64) vm.Hash, codeStore *CodeStore) *MemoryState {
	s := New(getHash)
	s.codeStore = codeStore
	return s
}

func (s *MemoryState) get(addr vm.Address) *account {
	a, ok := s.accounts[addr]
	if !ok {
		a = newAccount()
		s.accounts[addr] = a
	}
	return a
}

func (s *MemoryState) Exist(addr vm.Address) bool {
	a, ok := s.accounts[addr]
	return ok && a.exist && !a.destructed
}

func (s *MemoryState) CreateAccount(addr vm.Address) {
	prev, existed := s.accounts[addr]
	s.journal = append(s.journal, func(s *MemoryState) {
		if existed {
			s.accounts[addr] = prev
		} else {
			delete(s.accounts, addr)
		}
	})
	a := newAccount()
	if existed {
		// Preserve any balance the account already accrued (e.g. value
		// sent to an address before its contract is deployed).
		a.balance.Set(prev.balance)
	}
	a.exist = true
	s.accounts[addr] = a
}

func (s *MemoryState) GetBalance(addr vm.Address) *uint256.Int {
	if a, ok := s.accounts[addr]; ok {
		return new(uint256.Int).Set(a.balance)
	}
	return uint256.NewInt(0)
}

func (s *MemoryState) SetBalance(addr vm.Address, amount *uint256.Int) {
	a := s.get(addr)
	old := new(uint256.Int).Set(a.balance)
	s.journal = append(s.journal, func(s *MemoryState) { s.get(addr).balance = old })
	a.balance = new(uint256.Int).Set(amount)
	a.exist = true
}

func (s *MemoryState) AddBalance(addr vm.Address, amount *uint256.Int) {
	a := s.get(addr)
	old := new(uint256.Int).Set(a.balance)
	s.journal = append(s.journal, func(s *MemoryState) { s.get(addr).balance = old })
	a.balance.Add(a.balance, amount)
	a.exist = true
}

func (s *MemoryState) SubBalance(addr vm.Address, amount *uint256.Int) {
	a := s.get(addr)
	old := new(uint256.Int).Set(a.balance)
	s.journal = append(s.journal, func(s *MemoryState) { s.get(addr).balance = old })
	a.balance.Sub(a.balance, amount)
}

func (s *MemoryState) GetNonce(addr vm.Address) uint64 {
	if a, ok := s.accounts[addr]; ok {
		return a.nonce
	}
	return 0
}

func (s *MemoryState) SetNonce(addr vm.Address, nonce uint64) {
	a := s.get(addr)
	old := a.nonce
	s.journal = append(s.journal, func(s *MemoryState) { s.get(addr).nonce = old })
	a.nonce = nonce
	a.exist = true
}

func (s *MemoryState) GetCode(addr vm.Address) []byte {
	a, ok := s.accounts[addr]
	if !ok {
		return nil
	}
	if a.code != nil || s.codeStore == nil {
		return a.code
	}
	return s.codeStore.ReadCode(a.codeHash)
}

func (s *MemoryState) SetCode(addr vm.Address, code []byte) {
	a := s.get(addr)
	oldCode, oldHash := a.code, a.codeHash
	s.journal = append(s.journal, func(s *MemoryState) {
		ac := s.get(addr)
		ac.code, ac.codeHash = oldCode, oldHash
	})
	if s.codeStore != nil {
		a.codeHash = s.codeStore.WriteCode(code)
		a.code = nil
	} else {
		a.code = code
		a.codeHash = vm.Keccak256(code)
	}
	a.exist = true
}

func (s *MemoryState) GetCodeHash(addr vm.Address) vm.Hash {
	if a, ok := s.accounts[addr]; ok {
		return a.codeHash
	}
	return vm.Hash{}
}

func (s *MemoryState) GetCodeSize(addr vm.Address) int {
	return len(s.GetCode(addr))
}

func (s *MemoryState) GetStorage(addr vm.Address, key vm.Hash) vm.Hash {
	if a, ok := s.accounts[addr]; ok {
		return a.storage[key]
	}
	return vm.Hash{}
}

func (s *MemoryState) SetStorage(addr vm.Address, key vm.Hash, value vm.Hash) {
	a := s.get(addr)
	old, had := a.storage[key]
	s.journal = append(s.journal, func(s *MemoryState) {
		ac := s.get(addr)
		if had {
			ac.storage[key] = old
		} else {
			delete(ac.storage, key)
		}
	})
	if value == (vm.Hash{}) {
		delete(a.storage, key)
	} else {
		a.storage[key] = value
	}
	a.exist = true
}

func (s *MemoryState) AddRefund(gas uint64) {
	old := s.refund
	s.journal = append(s.journal, func(s *MemoryState) { s.refund = old })
	s.refund += gas
}

func (s *MemoryState) SubRefund(gas uint64) {
	old := s.refund
	s.journal = append(s.journal, func(s *MemoryState) { s.refund = old })
	if gas > s.refund {
		panic("state: refund counter below zero")
	}
	s.refund -= gas
}

func (s *MemoryState) GetRefund() uint64 { return s.refund }

func (s *MemoryState) Selfdestruct(addr vm.Address, beneficiary vm.Address) bool {
	a := s.get(addr)
	if a.destructed {
		return false
	}
	oldBalance := new(uint256.Int).Set(a.balance)
	wasDestructed := a.destructed
	s.journal = append(s.journal, func(s *MemoryState) {
		ac := s.get(addr)
		ac.destructed = wasDestructed
		ac.balance = oldBalance
	})
	if addr != beneficiary {
		s.AddBalance(beneficiary, a.balance)
		a.balance = uint256.NewInt(0)
	}
	a.destructed = true
	return true
}

func (s *MemoryState) HasSelfdestructed(addr vm.Address) bool {
	a, ok := s.accounts[addr]
	return ok && a.destructed
}

func (s *MemoryState) AddLog(log vm.Log) {
	idx := len(s.logs)
	s.journal = append(s.journal, func(s *MemoryState) { s.logs = s.logs[:idx] })
	s.logs = append(s.logs, log)
}

// Logs returns every log accumulated since the state was created, in
// emission order, net of any reverted sub-calls.
func (s *MemoryState) Logs() []vm.Log { return s.logs }

func (s *MemoryState) GetBlockHash(number uint64) vm.Hash {
	if s.getHash == nil {
		return vm.Hash{}
	}
	return s.getHash(number)
}

func (s *MemoryState) Snapshot() int { return len(s.journal) }

func (s *MemoryState) RevertToSnapshot(id int) {
	for i := len(s.journal) - 1; i >= id; i-- {
		s.journal[i](s)
	}
	s.journal = s.journal[:id]
}

var _ vm.State = (*MemoryState)(nil)
