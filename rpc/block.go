package rpc

import (
	"context"

	"github.com/archivenode/starknet-gateway/core"
	"github.com/archivenode/starknet-gateway/core/felt"
	"github.com/archivenode/starknet-gateway/jsonrpc"
)

// GetBlockByHash implements starknet_getBlockByHash.
func (h *Handler) GetBlockByHash(ctx context.Context, blockHash core.BlockHashOrTag, requestedScope *Scope) (*BlockReply, *jsonrpc.Error) {
	block, rpcErr := h.blockByID(ctx, blockHash.BlockID)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return newBlockReply(block, normalizeScope(requestedScope)), nil
}

// GetBlockByNumber implements starknet_getBlockByNumber.
func (h *Handler) GetBlockByNumber(ctx context.Context, blockNumber core.BlockNumberOrTag, requestedScope *Scope) (*BlockReply, *jsonrpc.Error) {
	block, rpcErr := h.blockByID(ctx, blockNumber.BlockID)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return newBlockReply(block, normalizeScope(requestedScope)), nil
}

// BlockNumber implements starknet_blockNumber.
func (h *Handler) BlockNumber(ctx context.Context) (uint64, *jsonrpc.Error) {
	return h.headNumber(ctx)
}

// ChainID implements starknet_chainId.
func (h *Handler) ChainID(ctx context.Context) (*felt.Felt, *jsonrpc.Error) {
	return h.chainID, nil
}

// ProtocolVersion implements starknet_protocolVersion.
func (h *Handler) ProtocolVersion(ctx context.Context) (string, *jsonrpc.Error) {
	return h.protocol, nil
}

// PendingTransactions implements starknet_pendingTransactions.
func (h *Handler) PendingTransactions(ctx context.Context) ([]*TransactionReply, *jsonrpc.Error) {
	txns, err := h.storage.PendingTransactions(ctx)
	if err != nil {
		return nil, ErrInternal.CloneWithData(err.Error())
	}
	replies := make([]*TransactionReply, len(txns))
	for i, tx := range txns {
		replies[i] = newTransactionReply(tx)
	}
	return replies, nil
}

// GetBlockTransactionCountByHash implements
// starknet_getBlockTransactionCountByHash.
func (h *Handler) GetBlockTransactionCountByHash(ctx context.Context, blockHash core.BlockHashOrTag) (uint64, *jsonrpc.Error) {
	block, rpcErr := h.blockByID(ctx, blockHash.BlockID)
	if rpcErr != nil {
		return 0, rpcErr
	}
	return uint64(len(block.Transactions)), nil
}

// GetBlockTransactionCountByNumber implements
// starknet_getBlockTransactionCountByNumber.
func (h *Handler) GetBlockTransactionCountByNumber(ctx context.Context, blockNumber core.BlockNumberOrTag) (uint64, *jsonrpc.Error) {
	block, rpcErr := h.blockByID(ctx, blockNumber.BlockID)
	if rpcErr != nil {
		return 0, rpcErr
	}
	return uint64(len(block.Transactions)), nil
}

// Syncing implements starknet_syncing. Unlike the juno-era stub this
// dispatches to chainId, it reports a real status by comparing the local
// head against the sequencer's, falling back to "false" on any sequencer
// transport failure rather than failing the call outright — syncing status
// is informational, not load-bearing.
func (h *Handler) Syncing(ctx context.Context) (any, *jsonrpc.Error) {
	localHead, err := h.storage.HeadBlock(ctx)
	if err != nil {
		return false, nil
	}

	remoteHead, err := h.sequencer.ChainHead(ctx)
	if err != nil {
		return false, nil
	}

	if localHead.Number >= remoteHead.Number {
		return false, nil
	}

	return &SyncStatus{
		StartingBlockHash: localHead.Hash,
		StartingBlockNum:  localHead.Number,
		CurrentBlockHash:  localHead.Hash,
		CurrentBlockNum:   localHead.Number,
		HighestBlockHash:  remoteHead.Hash,
		HighestBlockNum:   remoteHead.Number,
	}, nil
}
