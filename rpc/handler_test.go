package rpc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/archivenode/starknet-gateway/blockchain"
	"github.com/archivenode/starknet-gateway/core"
	"github.com/archivenode/starknet-gateway/core/felt"
	"github.com/archivenode/starknet-gateway/jsonrpc"
	"github.com/archivenode/starknet-gateway/rpc"
	"github.com/archivenode/starknet-gateway/rpc/mocks"
	"github.com/archivenode/starknet-gateway/sequencer"
)

func newTestHandler(t *testing.T) (*rpc.Handler, *blockchain.Store, *mocks.MockSequencerAPI) {
	t.Helper()
	store, err := blockchain.OpenStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	ctrl := gomock.NewController(t)
	seq := mocks.NewMockSequencerAPI(ctrl)

	chainID := new(felt.Felt).SetUint64(23448594291968334) // "SN_MAIN" as felt, arbitrary for tests
	h := rpc.New(store, seq, chainID, "0.13.1", zap.NewNop())
	return h, store, seq
}

func mustFelt(t *testing.T, hex string) *felt.Felt {
	t.Helper()
	f := new(felt.Felt)
	_, err := f.SetString(hex)
	require.NoError(t, err)
	return f
}

func mustWide(t *testing.T, hex string) *felt.Wide {
	t.Helper()
	w, err := felt.ParseWide(hex)
	require.NoError(t, err)
	return w
}

// Scenario 1: storage-at happy path.
func TestGetStorageAt_HappyPath(t *testing.T) {
	h, store, _ := newTestHandler(t)
	ctx := context.Background()

	address := mustFelt(t, "0x057dde0e374")
	key := mustFelt(t, "0x1")
	value := mustFelt(t, "0x123456")

	block := &core.Block{
		Hash:   mustFelt(t, "0xabc"),
		Number: 1,
		Status: core.BlockAcceptedL2,
	}
	require.NoError(t, store.PutBlock(ctx, block))
	require.NoError(t, store.PutStorageValue(ctx, address, key, value))

	blockHash := core.BlockHashOrTag{BlockID: core.LatestBlockID()}
	got, rpcErr := h.GetStorageAt(ctx, *address, *mustWide(t, "0x1"), blockHash)
	require.Nil(t, rpcErr)
	require.True(t, got.Equal(value))
}

// Scenario 2: storage-key overflow rejects with code 23 before any backend call.
func TestGetStorageAt_KeyOverflow(t *testing.T) {
	h, _, seq := newTestHandler(t)
	ctx := context.Background()

	// No expectations set on seq: the overflow check must short-circuit
	// before any sequencer or storage call is made.
	seq.EXPECT().ChainHead(gomock.Any()).Times(0)

	address := mustFelt(t, "0x1")
	overflowing := mustWide(t, "0x0800000000000000000000000000000000000000000000000000000000000000")

	blockHash := core.BlockHashOrTag{BlockID: core.LatestBlockID()}
	_, rpcErr := h.GetStorageAt(ctx, *address, *overflowing, blockHash)
	require.NotNil(t, rpcErr)
	require.Equal(t, 23, rpcErr.Code)
}

// Scenario 3: unknown contract.
func TestGetCode_UnknownContract(t *testing.T) {
	h, _, _ := newTestHandler(t)
	ctx := context.Background()

	address := mustFelt(t, "0x4ae0618c330c59559a59a27d143dd1c07cd74cf4e5e5a7cd85d53c6bf0e89dc")
	_, rpcErr := h.GetCode(ctx, *address)
	require.NotNil(t, rpcErr)
	require.Equal(t, 20, rpcErr.Code)
}

// Scenario 4: block-number carve-out through the sequencer's call path.
func TestCall_MalformedRequestBlockRangeCarveOut(t *testing.T) {
	h, _, seq := newTestHandler(t)
	ctx := context.Background()

	seq.EXPECT().Call(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, &sequencer.StarknetError{
		Code:    sequencer.CodeMalformedRequest,
		Message: "Block ID should be in the range [0, 12345).",
	})

	req := rpc.FunctionCall{
		ContractAddress:    *mustFelt(t, "0x1"),
		EntryPointSelector: *mustFelt(t, "0x2"),
	}
	_, rpcErr := h.Call(ctx, req, core.BlockHashOrTag{BlockID: core.ByNumberID(999999)})
	require.NotNil(t, rpcErr)
	require.Equal(t, 26, rpcErr.Code)
}

func TestGetBlockByHash_MalformedHashRejectedBeforeBackendCall(t *testing.T) {
	var b core.BlockHashOrTag
	err := b.UnmarshalJSON([]byte(`"not-a-hash"`))
	require.Error(t, err)

	var semErr jsonrpc.SemanticError
	require.ErrorAs(t, err, &semErr)
	require.Equal(t, 24, semErr.RPCError().Code)
}

