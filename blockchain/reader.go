// Package blockchain adapts the local content-addressed chain store to the
// storage oracle the RPC dispatcher and header protocol depend on. Per the
// spec, the storage engine itself is an external collaborator — this
// package only defines the oracle surface and a Pebble-backed
// implementation of it.
package blockchain

import (
	"context"
	"errors"

	"github.com/archivenode/starknet-gateway/core"
	"github.com/archivenode/starknet-gateway/core/felt"
)

// ErrNotFound is returned by any Reader method when the requested record
// does not exist locally.
var ErrNotFound = errors.New("blockchain: not found")

// Reader is the storage oracle exposed to the RPC dispatcher and the header
// protocol's iteration walker: get_contract_code, get_storage_value,
// get_block_by_hash, get_block_by_number, plus the handful of lookups the
// remaining 17 RPC methods need.
type Reader interface {
	BlockByHash(ctx context.Context, hash *felt.Felt) (*core.Block, error)
	BlockByNumber(ctx context.Context, number uint64) (*core.Block, error)
	HeadBlock(ctx context.Context) (*core.Block, error)
	PendingBlock(ctx context.Context) (*core.Block, error)

	StateUpdateByHash(ctx context.Context, hash *felt.Felt) (*core.StateUpdate, error)

	ContractCode(ctx context.Context, address *felt.Felt) (*core.Class, error)
	StorageValue(ctx context.Context, address, key *felt.Felt, id core.BlockID) (*felt.Felt, error)

	TransactionByHash(ctx context.Context, hash *felt.Felt) (*core.Transaction, error)
	TransactionByBlockHashAndIndex(ctx context.Context, hash *felt.Felt, index uint64) (*core.Transaction, error)
	TransactionByBlockNumberAndIndex(ctx context.Context, number uint64, index uint64) (*core.Transaction, error)
	TransactionReceipt(ctx context.Context, hash *felt.Felt) (*core.TransactionReceipt, error)

	BlockTransactionCountByHash(ctx context.Context, hash *felt.Felt) (uint64, error)
	BlockTransactionCountByNumber(ctx context.Context, number uint64) (uint64, error)

	PendingTransactions(ctx context.Context) ([]*core.Transaction, error)

	// HeaderByNumber backs the header-protocol iteration walker (C3): it
	// returns the gossip-network SignedBlockHeader for a given height, used
	// to answer BlockHeadersRequest streams without re-deriving headers
	// from the RPC-facing core.Block projection.
	HeaderByNumber(ctx context.Context, number uint64) (*core.SignedBlockHeader, error)
	HeadNumber(ctx context.Context) (uint64, error)
}
