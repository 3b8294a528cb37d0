package rpc

import (
	"context"
	"errors"

	"github.com/archivenode/starknet-gateway/blockchain"
	"github.com/archivenode/starknet-gateway/core"
	"github.com/archivenode/starknet-gateway/core/felt"
	"github.com/archivenode/starknet-gateway/jsonrpc"
	"github.com/archivenode/starknet-gateway/sequencer"
)

// GetTransactionByHash implements starknet_getTransactionByHash.
func (h *Handler) GetTransactionByHash(ctx context.Context, transactionHash felt.Felt) (*TransactionReply, *jsonrpc.Error) {
	tx, err := h.storage.TransactionByHash(ctx, &transactionHash)
	if err != nil {
		return nil, translateNotFound(err, sequencer.ErrInvalidTransactionHash)
	}
	return newTransactionReply(tx), nil
}

// GetTransactionByBlockHashAndIndex implements
// starknet_getTransactionByBlockHashAndIndex. The block reference accepts
// any of the three forms (hash, number, tag) per spec §6, so it is
// resolved the same way a block-by-reference lookup is before indexing
// into its transaction list.
func (h *Handler) GetTransactionByBlockHashAndIndex(ctx context.Context, blockHash core.BlockHashOrTag, index uint64) (*TransactionReply, *jsonrpc.Error) {
	block, rpcErr := h.blockByID(ctx, blockHash.BlockID)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if index >= uint64(len(block.Transactions)) {
		return nil, sequencer.ErrInvalidTransactionHash
	}
	return newTransactionReply(block.Transactions[index]), nil
}

// GetTransactionByBlockNumberAndIndex implements
// starknet_getTransactionByBlockNumberAndIndex.
func (h *Handler) GetTransactionByBlockNumberAndIndex(ctx context.Context, blockNumber core.BlockNumberOrTag, index uint64) (*TransactionReply, *jsonrpc.Error) {
	block, rpcErr := h.blockByID(ctx, blockNumber.BlockID)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if index >= uint64(len(block.Transactions)) {
		return nil, sequencer.ErrInvalidTransactionHash
	}
	return newTransactionReply(block.Transactions[index]), nil
}

// GetTransactionReceipt implements starknet_getTransactionReceipt.
func (h *Handler) GetTransactionReceipt(ctx context.Context, transactionHash felt.Felt) (*TransactionReceiptReply, *jsonrpc.Error) {
	receipt, err := h.storage.TransactionReceipt(ctx, &transactionHash)
	if err != nil {
		return nil, translateNotFound(err, sequencer.ErrInvalidTransactionHash)
	}
	return newTransactionReceiptReply(receipt), nil
}

// translateNotFound maps a local storage miss to the given Starknet
// semantic code and anything else to the dispatcher's internal error.
func translateNotFound(err error, notFound *jsonrpc.Error) *jsonrpc.Error {
	if errors.Is(err, blockchain.ErrNotFound) {
		return notFound
	}
	return ErrInternal.CloneWithData(err.Error())
}
