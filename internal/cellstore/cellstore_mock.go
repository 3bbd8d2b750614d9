// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Package cellstore is a generated GoMock package.
package cellstore

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockCellDbReader is a mock of CellDbReader interface.
type MockCellDbReader struct {
	ctrl     *gomock.Controller
	recorder *MockCellDbReaderMockRecorder
}

// MockCellDbReaderMockRecorder is the mock recorder for MockCellDbReader.
type MockCellDbReaderMockRecorder struct {
	mock *MockCellDbReader
}

// NewMockCellDbReader creates a new mock instance.
func NewMockCellDbReader(ctrl *gomock.Controller) *MockCellDbReader {
	mock := &MockCellDbReader{ctrl: ctrl}
	mock.recorder = &MockCellDbReaderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCellDbReader) EXPECT() *MockCellDbReaderMockRecorder {
	return m.recorder
}

// Load mocks base method.
func (m *MockCellDbReader) Load(hash Hash256) (CellRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Load", hash)
	ret0, _ := ret[0].(CellRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Load indicates an expected call of Load.
func (mr *MockCellDbReaderMockRecorder) Load(hash any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Load", reflect.TypeOf((*MockCellDbReader)(nil).Load), hash)
}
