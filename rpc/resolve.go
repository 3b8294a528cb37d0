package rpc

import (
	"context"
	"errors"

	"github.com/archivenode/starknet-gateway/blockchain"
	"github.com/archivenode/starknet-gateway/core"
	"github.com/archivenode/starknet-gateway/jsonrpc"
	"github.com/archivenode/starknet-gateway/sequencer"
)

// blockByID resolves a BlockID against local storage, translating a local
// miss to the same code the sequencer's own BlockNotFound maps to (24),
// per sequencer.Translate's BlockNotFound rule — a syntactically valid but
// nonexistent reference is a backend miss, not a malformed parameter.
func (h *Handler) blockByID(ctx context.Context, id core.BlockID) (*core.Block, *jsonrpc.Error) {
	var block *core.Block
	var err error
	switch {
	case id.Latest:
		block, err = h.storage.HeadBlock(ctx)
	case id.Pending:
		block, err = h.storage.PendingBlock(ctx)
	case id.Hash != nil:
		block, err = h.storage.BlockByHash(ctx, id.Hash)
	default:
		block, err = h.storage.BlockByNumber(ctx, id.Number)
	}
	if err != nil {
		if errors.Is(err, blockchain.ErrNotFound) {
			return nil, sequencer.ErrInvalidBlockHash
		}
		return nil, ErrInternal.CloneWithData(err.Error())
	}
	return block, nil
}

func (h *Handler) headNumber(ctx context.Context) (uint64, *jsonrpc.Error) {
	n, err := h.storage.HeadNumber(ctx)
	if err != nil {
		return 0, ErrInternal.CloneWithData(err.Error())
	}
	return n, nil
}
