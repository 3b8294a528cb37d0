package header_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/archivenode/starknet-gateway/blockchain"
	"github.com/archivenode/starknet-gateway/core"
	"github.com/archivenode/starknet-gateway/core/felt"
	"github.com/archivenode/starknet-gateway/p2p/header"
)

func seedHeaders(t *testing.T, n int) *blockchain.Store {
	t.Helper()
	store, err := blockchain.OpenStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	for i := 0; i < n; i++ {
		h := &core.SignedBlockHeader{
			BlockHash:  new(felt.Felt).SetUint64(uint64(i)),
			ParentHash: new(felt.Felt).SetUint64(uint64(i) - 1),
			Number:     uint64(i),
		}
		require.NoError(t, store.PutHeader(context.Background(), h))
	}
	return store
}

// Scenario 5: header stream empty — iteration starting past the chain tip
// yields exactly one message, Fin.
func TestWalkEmptyStream(t *testing.T) {
	store := seedHeaders(t, 10)
	req := header.BlockHeadersRequest{Iteration: header.Iteration{
		Start: header.ByNumber(1000), Direction: header.Forward, Step: 1, Limit: 5,
	}}

	var got []header.BlockHeadersResponse
	err := header.Walk(context.Background(), store, req, func(r header.BlockHeadersResponse) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.True(t, got[0].IsFin)
}

// Scenario 6: header stream bounded — limit=5 against a chain of 100 blocks
// yields exactly 5 Header messages followed by Fin, strictly increasing.
func TestWalkBoundedStream(t *testing.T) {
	store := seedHeaders(t, 100)
	req := header.BlockHeadersRequest{Iteration: header.Iteration{
		Start: header.ByNumber(0), Direction: header.Forward, Step: 1, Limit: 5,
	}}

	var got []header.BlockHeadersResponse
	err := header.Walk(context.Background(), store, req, func(r header.BlockHeadersResponse) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 6)
	for i := 0; i < 5; i++ {
		require.False(t, got[i].IsFin)
		require.Equal(t, uint64(i), got[i].Header.Number)
	}
	require.True(t, got[5].IsFin)
}

func TestWalkBackward(t *testing.T) {
	store := seedHeaders(t, 10)
	req := header.BlockHeadersRequest{Iteration: header.Iteration{
		Start: header.ByNumber(9), Direction: header.Backward, Step: 2, Limit: 3,
	}}

	var numbers []uint64
	err := header.Walk(context.Background(), store, req, func(r header.BlockHeadersResponse) error {
		if !r.IsFin {
			numbers = append(numbers, r.Header.Number)
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []uint64{9, 7, 5}, numbers)
}

func TestWalkStartByHash(t *testing.T) {
	store := seedHeaders(t, 10)
	block := &core.Block{Hash: new(felt.Felt).SetUint64(5000), Number: 3}
	require.NoError(t, store.PutBlock(context.Background(), block))

	req := header.BlockHeadersRequest{Iteration: header.Iteration{
		Start: header.ByHash(block.Hash), Direction: header.Forward, Step: 1, Limit: 2,
	}}

	var numbers []uint64
	err := header.Walk(context.Background(), store, req, func(r header.BlockHeadersResponse) error {
		if !r.IsFin {
			numbers = append(numbers, r.Header.Number)
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []uint64{3, 4}, numbers)
}
