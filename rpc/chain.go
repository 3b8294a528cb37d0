package rpc

import (
	"context"
	"errors"

	"github.com/archivenode/starknet-gateway/blockchain"
	"github.com/archivenode/starknet-gateway/core"
	"github.com/archivenode/starknet-gateway/jsonrpc"
	"github.com/archivenode/starknet-gateway/sequencer"
)

// GetStateUpdateByHash implements starknet_getStateUpdateByHash. It is the
// method spec §4.2 uses to illustrate parameter duality: a single argument
// accepted either positionally (a raw block hash) or named
// ({"block_hash": ...}) — both isomorphic once bound, since the dispatcher
// handles the duality generically rather than this method doing anything
// special.
func (h *Handler) GetStateUpdateByHash(ctx context.Context, blockHash core.BlockHashOrTag) (*StateUpdateReply, *jsonrpc.Error) {
	if blockHash.Hash == nil {
		// "latest"/"pending" resolve through the block store to a concrete
		// hash first, since state updates are indexed by hash only.
		block, rpcErr := h.blockByID(ctx, blockHash.BlockID)
		if rpcErr != nil {
			return nil, rpcErr
		}
		blockHash.Hash = block.Hash
	}

	update, err := h.storage.StateUpdateByHash(ctx, blockHash.Hash)
	if err != nil {
		if errors.Is(err, blockchain.ErrNotFound) {
			return nil, sequencer.ErrInvalidBlockHash
		}
		return nil, ErrInternal.CloneWithData(err.Error())
	}
	return newStateUpdateReply(update), nil
}
