package rpc_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/archivenode/starknet-gateway/core"
	"github.com/archivenode/starknet-gateway/jsonrpc"
	"github.com/archivenode/starknet-gateway/rpc"
)

// TestRegisterDispatchDuality exercises spec §8's "dispatch duality"
// property end-to-end through the real dispatcher, not just the generic
// binder test in package jsonrpc: positional and named forms of the same
// call must produce identical responses for a Starknet method.
func TestRegisterDispatchDuality(t *testing.T) {
	h, store, _ := newTestHandler(t)
	ctx := context.Background()

	block := &core.Block{Hash: mustFelt(t, "0x1"), Number: 7}
	require.NoError(t, store.PutBlock(ctx, block))

	d := jsonrpc.NewDispatcher()
	rpc.Register(d, h)

	positional := jsonrpc.Request{JSONRPC: "2.0", Method: "starknet_getBlockTransactionCountByNumber", Params: json.RawMessage(`[7]`)}
	named := jsonrpc.Request{JSONRPC: "2.0", Method: "starknet_getBlockTransactionCountByNumber", Params: json.RawMessage(`{"block_number":7}`)}

	rp := d.Call(ctx, positional)
	rn := d.Call(ctx, named)

	require.Nil(t, rp.Error)
	require.Nil(t, rn.Error)
	require.Equal(t, rp.Result, rn.Result)
	require.Equal(t, uint64(0), rp.Result)
}

// TestRegisterUnknownMethod checks the method-not-found path is wired for
// the Starknet surface, not just the generic dispatcher unit test.
func TestRegisterUnknownMethod(t *testing.T) {
	h, _, _ := newTestHandler(t)
	d := jsonrpc.NewDispatcher()
	rpc.Register(d, h)

	resp := d.Call(context.Background(), jsonrpc.Request{JSONRPC: "2.0", Method: "starknet_doesNotExist"})
	require.NotNil(t, resp.Error)
	require.Equal(t, jsonrpc.MethodNotFound, resp.Error.Code)
}
