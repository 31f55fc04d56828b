// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package vm_test

import (
	"math"
	"testing"

	"github.com/holiman/uint256"

	"github.com/coreweave-chain/evmkernel/state"
	"github.com/coreweave-chain/evmkernel/vm"
)

func newTestEVM() (*vm.EVM, vm.State) {
	st := state.New(func(uint64) vm.Hash { return vm.Hash{} })
	return vm.NewEVM(st), st
}

func rootFrame() *vm.Frame {
	return vm.NewFrame(vm.CallKindCall, 0,
		&vm.BlockContext{GetHash: func(uint64) vm.Hash { return vm.Hash{} }},
		&vm.TransactionContext{Origin: vm.Address{}, GasPrice: uint256.NewInt(0)},
	)
}

func deploy(t *testing.T, st vm.State, addr vm.Address, code []byte) {
	t.Helper()
	st.CreateAccount(addr)
	st.SetCode(addr, code)
}

func callCode(evm *vm.EVM, target vm.Address, input []byte, gas int64) (output []byte, gasLeft vm.Gas, success bool) {
	return evm.Call(rootFrame(), vm.CallParams{
		Kind:        vm.CallKindCall,
		Address:     target,
		CodeAddress: target,
		Value:       uint256.NewInt(0),
		Input:       input,
		Gas:         vm.Gas(gas),
	})
}

// TestPushAddTruncatedPush runs PUSH1 1; PUSH1 1; ADD; PUSH1 where the
// last PUSH1 has no immediate byte: the truncated push executes rather
// than faulting, and the call then runs off the end of the code and
// succeeds.
func TestPushAddTruncatedPush(t *testing.T) {
	evm, st := newTestEVM()
	var target vm.Address
	target[19] = 0xAA
	code := []byte{
		byte(vm.PUSH1), 0x01,
		byte(vm.PUSH1), 0x01,
		byte(vm.ADD),
		byte(vm.PUSH1), // no immediate byte: reads past code end as 0
	}
	deploy(t, st, target, code)

	_, gasLeft, success := callCode(evm, target, nil, math.MaxInt32)
	if !success {
		t.Fatalf("call failed")
	}
	// Three PUSH1s and one ADD at 3 gas each: all four instructions,
	// including the truncated PUSH1, were executed and charged.
	want := vm.Gas(math.MaxInt32 - 12)
	if gasLeft != want {
		t.Fatalf("gasLeft = %d, want %d", gasLeft, want)
	}
}

// TestSubUnderflowWraps checks that 2 - 5 wraps to 2^256 - 3 rather than
// underflowing into an error.
func TestSubUnderflowWraps(t *testing.T) {
	evm, st := newTestEVM()
	var target vm.Address
	target[19] = 0xBB
	code := []byte{
		byte(vm.PUSH1), 0x05,
		byte(vm.PUSH1), 0x02,
		byte(vm.SUB),
		byte(vm.PUSH1), 0x00,
		byte(vm.MSTORE),
		byte(vm.PUSH1), 0x20,
		byte(vm.PUSH1), 0x00,
		byte(vm.RETURN),
	}
	deploy(t, st, target, code)

	output, _, success := callCode(evm, target, nil, math.MaxInt32)
	if !success {
		t.Fatalf("call failed")
	}
	got := new(uint256.Int).SetBytes(output)
	want := new(uint256.Int).Sub(uint256.NewInt(2), uint256.NewInt(5))
	if !got.Eq(want) {
		t.Fatalf("2-5 = %s, want %s", got, want)
	}
}

// TestJumpiToJumpdestSkipsInvalid checks that EQ yields 1, JUMPI takes the
// jump to a JUMPDEST past an INVALID, then STOP.
func TestJumpiToJumpdestSkipsInvalid(t *testing.T) {
	evm, st := newTestEVM()
	var target vm.Address
	target[19] = 0xCC
	code := []byte{
		byte(vm.PUSH1), 0x00, // 0
		byte(vm.PUSH1), 0x00, // 0
		byte(vm.EQ),          // 1
		byte(vm.PUSH2), 0x00, 0x0a,
		byte(vm.JUMPI),
		byte(vm.INVALID),
		byte(vm.JUMPDEST), // offset 0x0a
		byte(vm.STOP),
	}
	deploy(t, st, target, code)

	_, _, success := callCode(evm, target, nil, math.MaxInt32)
	if !success {
		t.Fatalf("expected the jump to land on JUMPDEST and halt cleanly")
	}
}

// TestSstoreSloadRevert checks that a callee's SSTORE is visible to its
// own SLOAD, but a REVERT leaves the caller's view of the same slot
// untouched.
func TestSstoreSloadRevert(t *testing.T) {
	evm, st := newTestEVM()
	var callee vm.Address
	callee[19] = 0xAA

	key := vm.Hash{31: 0x01} // storage slot 1, as SSTORE/SLOAD encode it
	priorValue := vm.Hash{0x42}
	st.CreateAccount(callee)
	st.SetStorage(callee, key, priorValue)

	// SSTORE(1, 0xff); SLOAD(1); return it; then REVERT with the same data.
	code := []byte{
		byte(vm.PUSH1), 0xff,
		byte(vm.PUSH1), 0x01,
		byte(vm.SSTORE),
		byte(vm.PUSH1), 0x01,
		byte(vm.SLOAD),
		byte(vm.PUSH1), 0x00,
		byte(vm.MSTORE),
		byte(vm.PUSH1), 0x20,
		byte(vm.PUSH1), 0x00,
		byte(vm.REVERT),
	}
	st.SetCode(callee, code)

	output, _, success := callCode(evm, callee, nil, math.MaxInt32)
	if success {
		t.Fatalf("REVERT must report failure")
	}
	got := new(uint256.Int).SetBytes(output)
	if !got.Eq(uint256.NewInt(0xff)) {
		t.Fatalf("reverted output = %s, want 0xff (observed within the reverted frame)", got)
	}

	afterRevert := st.GetStorage(callee, key)
	if afterRevert != priorValue {
		t.Fatalf("GetStorage after revert = %x, want prior value %x", afterRevert, priorValue)
	}
}

// TestCreateDeploysReturnedCode exercises CREATE's contract: a successful
// init-code RETURN becomes the code of the account at the returned
// address.
func TestCreateDeploysReturnedCode(t *testing.T) {
	evm, st := newTestEVM()
	var caller vm.Address
	caller[19] = 0x01
	st.CreateAccount(caller)
	st.SetBalance(caller, uint256.NewInt(0))

	// init code: PUSH1 <len>, DUP1, PUSH1 <code offset within init>,
	// PUSH1 0, CODECOPY, PUSH1 0, RETURN -- deploys a single-byte runtime
	// of STOP.
	runtime := []byte{byte(vm.STOP)}
	initCode := append([]byte{
		byte(vm.PUSH1), byte(len(runtime)),
		byte(vm.DUP1),
		byte(vm.PUSH1), 11, // offset of runtime bytes within initCode
		byte(vm.PUSH1), 0x00,
		byte(vm.CODECOPY),
		byte(vm.PUSH1), 0x00,
		byte(vm.RETURN),
	}, runtime...)

	addr, _, _, success := evm.Create(rootFrame(), vm.CreateParams{
		Caller:   caller,
		Value:    uint256.NewInt(0),
		InitCode: initCode,
		Gas:      math.MaxInt32,
	})
	if !success {
		t.Fatalf("CREATE failed")
	}
	if got := st.GetCode(addr); len(got) != len(runtime) {
		t.Fatalf("deployed code = %x, want %x", got, runtime)
	}
}

// TestCallOutOfGasFails exercises the out-of-gas path: a call that runs
// out of gas mid-loop fails cleanly with no gas left over.
func TestCallOutOfGasFails(t *testing.T) {
	evm, st := newTestEVM()
	var target vm.Address
	target[19] = 0xDD
	// An unbounded loop body with too little gas to complete a single
	// iteration's JUMPDEST/JUMP pair must fail with out-of-gas, not hang.
	code := []byte{
		byte(vm.JUMPDEST),
		byte(vm.PUSH1), 0x00,
		byte(vm.JUMP),
	}
	deploy(t, st, target, code)

	_, gasLeft, success := callCode(evm, target, nil, 10)
	if success {
		t.Fatalf("expected out-of-gas failure")
	}
	if gasLeft != 0 {
		t.Fatalf("gasLeft = %d, want 0 on out-of-gas failure", gasLeft)
	}
}
