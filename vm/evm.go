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
	"github.com/ethereum/go-ethereum/params"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// MaxCallDepth is the deepest a chain of CALL/CALLCODE/DELEGATECALL/CREATE
// frames may recurse before further calls are rejected outright.
const MaxCallDepth = int(params.CallCreateDepth)

// MaxCodeSize is the largest a contract's deployed code may be; CREATE and
// CREATE-like operations that would deploy more than this fail the
// creation without reverting the gas already spent running the init code.
const MaxCodeSize = params.MaxCodeSize

// EVM is the explicit frame-stack orchestrator: it owns the chain of
// Frames produced by CALL/CALLCODE/DELEGATECALL/CREATE and drives each in
// turn through the interpreter loop, rather than recursing through Go's
// own call stack.
type EVM struct {
	State     State
	hashCache *sha3Cache

	frames []*Frame
}

// NewEVM constructs an orchestrator bound to the given State collaborator.
func NewEVM(state State) *EVM {
	return &EVM{
		State:     state,
		hashCache: newSha3Cache(32 << 20),
	}
}

// CallParams describes a CALL/CALLCODE/DELEGATECALL/STATICCALL-family
// invocation.
type CallParams struct {
	Kind CallKind

	// Caller is the account whose context is charged for value transfer
	// and observed via the CALLER opcode.
	Caller Address
	// Address is the account whose storage and balance the new frame
	// operates on.
	Address Address
	// CodeAddress is the account whose code actually runs; equal to
	// Address except for CALLCODE/DELEGATECALL.
	CodeAddress Address

	Value  *uint256.Int
	Input  []byte
	Gas    Gas
	Static bool
}

// Call pushes a new frame for a CALL-family invocation, runs it to
// completion, and folds its outcome back into the parent: gas refunded on
// success or failure alike, logs and self-destructs adopted only on
// success, and every state mutation discarded via State.RevertToSnapshot
// on failure.
func (e *EVM) Call(parent *Frame, p CallParams) (output []byte, gasLeft Gas, success bool) {
	if parent.Depth+1 > MaxCallDepth {
		return nil, p.Gas, false
	}

	code := e.State.GetCode(p.CodeAddress)

	if !p.Value.IsZero() && (p.Kind == CallKindCall || p.Kind == CallKindCallCode) {
		if e.State.GetBalance(p.Caller).Lt(p.Value) {
			return nil, p.Gas, false
		}
	}

	snapshot := e.State.Snapshot()

	child := NewFrame(p.Kind, parent.Depth+1, parent.Block, parent.Tx)
	child.Caller = p.Caller
	child.Address = p.Address
	child.CodeOwner = p.CodeAddress
	child.Value = p.Value
	child.Input = p.Input
	child.Code = code
	child.CodeHash = e.State.GetCodeHash(p.CodeAddress)
	child.Static = p.Static || parent.Static
	child.Gas = p.Gas
	child.snapshot = snapshot
	child.parent = parent

	if p.Kind != CallKindDelegateCall && !p.Value.IsZero() {
		if p.Kind == CallKindCall && !e.State.Exist(p.Address) {
			e.State.CreateAccount(p.Address)
		}
		e.State.SubBalance(p.Caller, p.Value)
		e.State.AddBalance(p.Address, p.Value)
	}

	e.frames = append(e.frames, child)
	e.run(child)
	e.frames = e.frames[:len(e.frames)-1]
	child.Release()

	if child.Err != nil || child.Reverted {
		e.State.RevertToSnapshot(snapshot)
		return child.Output, child.Gas, false
	}

	for _, log := range child.Logs {
		e.State.AddLog(log)
	}
	if child.Selfdestructed {
		e.State.Selfdestruct(child.Address, child.SelfdestructBenefic)
	}
	return child.Output, child.Gas, true
}

// CreateParams describes a CREATE invocation.
type CreateParams struct {
	Caller   Address
	Value    *uint256.Int
	InitCode []byte
	Gas      Gas
}

// Create runs InitCode as a new frame whose successful RETURN becomes the
// deployed contract's code, charging the standard per-byte deployment
// cost and enforcing MaxCodeSize before committing the new account.
func (e *EVM) Create(parent *Frame, p CreateParams) (createdAddr Address, output []byte, gasLeft Gas, success bool) {
	if parent.Depth+1 > MaxCallDepth {
		return Address{}, nil, p.Gas, false
	}
	if !p.Value.IsZero() && e.State.GetBalance(p.Caller).Lt(p.Value) {
		return Address{}, nil, p.Gas, false
	}

	nonce := e.State.GetNonce(p.Caller)
	e.State.SetNonce(p.Caller, nonce+1)
	addr := newContractAddress(p.Caller, nonce)

	if e.State.Exist(addr) && (e.State.GetNonce(addr) != 0 || e.State.GetCodeSize(addr) != 0) {
		return Address{}, nil, p.Gas, false
	}

	snapshot := e.State.Snapshot()
	e.State.CreateAccount(addr)
	e.State.SetNonce(addr, 1)

	if !p.Value.IsZero() {
		e.State.SubBalance(p.Caller, p.Value)
		e.State.AddBalance(addr, p.Value)
	}

	child := NewFrame(CallKindCreate, parent.Depth+1, parent.Block, parent.Tx)
	child.Caller = p.Caller
	child.Address = addr
	child.CodeOwner = addr
	child.Value = p.Value
	child.Code = p.InitCode
	child.Gas = p.Gas
	child.snapshot = snapshot
	child.parent = parent

	e.frames = append(e.frames, child)
	e.run(child)
	e.frames = e.frames[:len(e.frames)-1]
	child.Release()

	if child.Err != nil || child.Reverted {
		e.State.RevertToSnapshot(snapshot)
		return Address{}, child.Output, child.Gas, false
	}

	if len(child.Output) > MaxCodeSize {
		e.State.RevertToSnapshot(snapshot)
		return Address{}, nil, 0, false
	}
	if err := child.UseGas(Gas(len(child.Output)) * Gas(params.CreateDataGas)); err != nil {
		e.State.RevertToSnapshot(snapshot)
		return Address{}, nil, 0, false
	}

	e.State.SetCode(addr, child.Output)
	for _, log := range child.Logs {
		e.State.AddLog(log)
	}
	return addr, nil, child.Gas, true
}

// newContractAddress derives the address CREATE assigns to a new
// contract: the low 20 bytes of keccak256(rlp([sender, nonce])), the same
// derivation go-ethereum's crypto.CreateAddress performs.
func newContractAddress(sender Address, nonce uint64) Address {
	data, _ := rlp.EncodeToBytes([]interface{}{sender[:], nonce})
	h := Keccak256(data)
	var addr Address
	copy(addr[:], h[12:])
	return addr
}

// retainedCallGas applies the 63/64ths rule (EIP-150): a CALL-family
// instruction may forward at most all-but-one-64th of the gas remaining
// in the calling frame, regardless of how much the caller requested.
func retainedCallGas(available Gas, requested Gas) Gas {
	max := available - available/64
	if requested < 0 || requested > max {
		return max
	}
	return requested
}
