// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package vm is a generated GoMock package.
package vm

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
	uint256 "github.com/holiman/uint256"
)

// MockState is a mock of State interface.
type MockState struct {
	ctrl     *gomock.Controller
	recorder *MockStateMockRecorder
}

// MockStateMockRecorder is the mock recorder for MockState.
type MockStateMockRecorder struct {
	mock *MockState
}

// NewMockState creates a new mock instance.
func NewMockState(ctrl *gomock.Controller) *MockState {
	mock := &MockState{ctrl: ctrl}
	mock.recorder = &MockStateMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockState) EXPECT() *MockStateMockRecorder {
	return m.recorder
}

// Exist mocks base method.
func (m *MockState) Exist(addr Address) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Exist", addr)
	ret0, _ := ret[0].(bool)
	return ret0
}

// Exist indicates an expected call of Exist.
func (mr *MockStateMockRecorder) Exist(addr any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Exist", reflect.TypeOf((*MockState)(nil).Exist), addr)
}

// CreateAccount mocks base method.
func (m *MockState) CreateAccount(addr Address) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "CreateAccount", addr)
}

// CreateAccount indicates an expected call of CreateAccount.
func (mr *MockStateMockRecorder) CreateAccount(addr any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateAccount", reflect.TypeOf((*MockState)(nil).CreateAccount), addr)
}

// GetBalance mocks base method.
func (m *MockState) GetBalance(addr Address) *uint256.Int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBalance", addr)
	ret0, _ := ret[0].(*uint256.Int)
	return ret0
}

// GetBalance indicates an expected call of GetBalance.
func (mr *MockStateMockRecorder) GetBalance(addr any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBalance", reflect.TypeOf((*MockState)(nil).GetBalance), addr)
}

// AddBalance mocks base method.
func (m *MockState) AddBalance(addr Address, amount *uint256.Int) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "AddBalance", addr, amount)
}

// AddBalance indicates an expected call of AddBalance.
func (mr *MockStateMockRecorder) AddBalance(addr, amount any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddBalance", reflect.TypeOf((*MockState)(nil).AddBalance), addr, amount)
}

// SubBalance mocks base method.
func (m *MockState) SubBalance(addr Address, amount *uint256.Int) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SubBalance", addr, amount)
}

// SubBalance indicates an expected call of SubBalance.
func (mr *MockStateMockRecorder) SubBalance(addr, amount any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SubBalance", reflect.TypeOf((*MockState)(nil).SubBalance), addr, amount)
}

// SetBalance mocks base method.
func (m *MockState) SetBalance(addr Address, amount *uint256.Int) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetBalance", addr, amount)
}

// SetBalance indicates an expected call of SetBalance.
func (mr *MockStateMockRecorder) SetBalance(addr, amount any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetBalance", reflect.TypeOf((*MockState)(nil).SetBalance), addr, amount)
}

// GetNonce mocks base method.
func (m *MockState) GetNonce(addr Address) uint64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetNonce", addr)
	ret0, _ := ret[0].(uint64)
	return ret0
}

// GetNonce indicates an expected call of GetNonce.
func (mr *MockStateMockRecorder) GetNonce(addr any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetNonce", reflect.TypeOf((*MockState)(nil).GetNonce), addr)
}

// SetNonce mocks base method.
func (m *MockState) SetNonce(addr Address, nonce uint64) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetNonce", addr, nonce)
}

// SetNonce indicates an expected call of SetNonce.
func (mr *MockStateMockRecorder) SetNonce(addr, nonce any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetNonce", reflect.TypeOf((*MockState)(nil).SetNonce), addr, nonce)
}

// GetCode mocks base method.
func (m *MockState) GetCode(addr Address) []byte {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCode", addr)
	ret0, _ := ret[0].([]byte)
	return ret0
}

// GetCode indicates an expected call of GetCode.
func (mr *MockStateMockRecorder) GetCode(addr any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCode", reflect.TypeOf((*MockState)(nil).GetCode), addr)
}

// SetCode mocks base method.
func (m *MockState) SetCode(addr Address, code []byte) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetCode", addr, code)
}

// SetCode indicates an expected call of SetCode.
func (mr *MockStateMockRecorder) SetCode(addr, code any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetCode", reflect.TypeOf((*MockState)(nil).SetCode), addr, code)
}

// GetCodeHash mocks base method.
func (m *MockState) GetCodeHash(addr Address) Hash {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCodeHash", addr)
	ret0, _ := ret[0].(Hash)
	return ret0
}

// GetCodeHash indicates an expected call of GetCodeHash.
func (mr *MockStateMockRecorder) GetCodeHash(addr any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCodeHash", reflect.TypeOf((*MockState)(nil).GetCodeHash), addr)
}

// GetCodeSize mocks base method.
func (m *MockState) GetCodeSize(addr Address) int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCodeSize", addr)
	ret0, _ := ret[0].(int)
	return ret0
}

// GetCodeSize indicates an expected call of GetCodeSize.
func (mr *MockStateMockRecorder) GetCodeSize(addr any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCodeSize", reflect.TypeOf((*MockState)(nil).GetCodeSize), addr)
}

// GetStorage mocks base method.
func (m *MockState) GetStorage(addr Address, key Hash) Hash {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetStorage", addr, key)
	ret0, _ := ret[0].(Hash)
	return ret0
}

// GetStorage indicates an expected call of GetStorage.
func (mr *MockStateMockRecorder) GetStorage(addr, key any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetStorage", reflect.TypeOf((*MockState)(nil).GetStorage), addr, key)
}

// SetStorage mocks base method.
func (m *MockState) SetStorage(addr Address, key Hash, value Hash) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetStorage", addr, key, value)
}

// SetStorage indicates an expected call of SetStorage.
func (mr *MockStateMockRecorder) SetStorage(addr, key, value any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetStorage", reflect.TypeOf((*MockState)(nil).SetStorage), addr, key, value)
}

// AddRefund mocks base method.
func (m *MockState) AddRefund(gas uint64) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "AddRefund", gas)
}

// AddRefund indicates an expected call of AddRefund.
func (mr *MockStateMockRecorder) AddRefund(gas any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddRefund", reflect.TypeOf((*MockState)(nil).AddRefund), gas)
}

// SubRefund mocks base method.
func (m *MockState) SubRefund(gas uint64) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SubRefund", gas)
}

// SubRefund indicates an expected call of SubRefund.
func (mr *MockStateMockRecorder) SubRefund(gas any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SubRefund", reflect.TypeOf((*MockState)(nil).SubRefund), gas)
}

// GetRefund mocks base method.
func (m *MockState) GetRefund() uint64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetRefund")
	ret0, _ := ret[0].(uint64)
	return ret0
}

// GetRefund indicates an expected call of GetRefund.
func (mr *MockStateMockRecorder) GetRefund() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetRefund", reflect.TypeOf((*MockState)(nil).GetRefund))
}

// Selfdestruct mocks base method.
func (m *MockState) Selfdestruct(addr Address, beneficiary Address) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Selfdestruct", addr, beneficiary)
	ret0, _ := ret[0].(bool)
	return ret0
}

// Selfdestruct indicates an expected call of Selfdestruct.
func (mr *MockStateMockRecorder) Selfdestruct(addr, beneficiary any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Selfdestruct", reflect.TypeOf((*MockState)(nil).Selfdestruct), addr, beneficiary)
}

// HasSelfdestructed mocks base method.
func (m *MockState) HasSelfdestructed(addr Address) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HasSelfdestructed", addr)
	ret0, _ := ret[0].(bool)
	return ret0
}

// HasSelfdestructed indicates an expected call of HasSelfdestructed.
func (mr *MockStateMockRecorder) HasSelfdestructed(addr any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HasSelfdestructed", reflect.TypeOf((*MockState)(nil).HasSelfdestructed), addr)
}

// AddLog mocks base method.
func (m *MockState) AddLog(log Log) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "AddLog", log)
}

// AddLog indicates an expected call of AddLog.
func (mr *MockStateMockRecorder) AddLog(log any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddLog", reflect.TypeOf((*MockState)(nil).AddLog), log)
}

// GetBlockHash mocks base method.
func (m *MockState) GetBlockHash(number uint64) Hash {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBlockHash", number)
	ret0, _ := ret[0].(Hash)
	return ret0
}

// GetBlockHash indicates an expected call of GetBlockHash.
func (mr *MockStateMockRecorder) GetBlockHash(number any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBlockHash", reflect.TypeOf((*MockState)(nil).GetBlockHash), number)
}

// Snapshot mocks base method.
func (m *MockState) Snapshot() int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Snapshot")
	ret0, _ := ret[0].(int)
	return ret0
}

// Snapshot indicates an expected call of Snapshot.
func (mr *MockStateMockRecorder) Snapshot() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Snapshot", reflect.TypeOf((*MockState)(nil).Snapshot))
}

// RevertToSnapshot mocks base method.
func (m *MockState) RevertToSnapshot(id int) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "RevertToSnapshot", id)
}

// RevertToSnapshot indicates an expected call of RevertToSnapshot.
func (mr *MockStateMockRecorder) RevertToSnapshot(id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RevertToSnapshot", reflect.TypeOf((*MockState)(nil).RevertToSnapshot), id)
}
