// Code generated by a mockgen-style hand authoring of rpc.SequencerAPI.
// Kept in sync by hand since the toolchain that would regenerate it
// (go.uber.org/mock/mockgen) is not run as part of this build.

package mocks

import (
	"context"
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	"github.com/archivenode/starknet-gateway/core"
	"github.com/archivenode/starknet-gateway/core/felt"
	"github.com/archivenode/starknet-gateway/sequencer"
)

// MockSequencerAPI is a mock of the rpc.SequencerAPI interface.
type MockSequencerAPI struct {
	ctrl     *gomock.Controller
	recorder *MockSequencerAPIMockRecorder
}

// MockSequencerAPIMockRecorder is the recorder for MockSequencerAPI.
type MockSequencerAPIMockRecorder struct {
	mock *MockSequencerAPI
}

func NewMockSequencerAPI(ctrl *gomock.Controller) *MockSequencerAPI {
	mock := &MockSequencerAPI{ctrl: ctrl}
	mock.recorder = &MockSequencerAPIMockRecorder{mock}
	return mock
}

func (m *MockSequencerAPI) EXPECT() *MockSequencerAPIMockRecorder {
	return m.recorder
}

func (m *MockSequencerAPI) Call(ctx context.Context, call sequencer.FunctionCall, id core.BlockID) ([]*felt.Felt, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Call", ctx, call, id)
	ret0, _ := ret[0].([]*felt.Felt)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockSequencerAPIMockRecorder) Call(ctx, call, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Call", reflect.TypeOf((*MockSequencerAPI)(nil).Call), ctx, call, id)
}

func (m *MockSequencerAPI) ChainHead(ctx context.Context) (*core.Block, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ChainHead", ctx)
	ret0, _ := ret[0].(*core.Block)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockSequencerAPIMockRecorder) ChainHead(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ChainHead", reflect.TypeOf((*MockSequencerAPI)(nil).ChainHead), ctx)
}
