package rpc

import (
	"context"

	"github.com/archivenode/starknet-gateway/core/felt"
	"github.com/archivenode/starknet-gateway/jsonrpc"
	"github.com/archivenode/starknet-gateway/sequencer"
)

// GetCode implements starknet_getCode. A miss is reported as
// ContractNotFound (20), and — because the lookup is keyed purely by
// address — a miss is cached in the handler's Bloom filter so a
// repeated lookup for a known-absent contract skips the storage round
// trip entirely.
func (h *Handler) GetCode(ctx context.Context, contractAddress felt.Felt) (*CodeReply, *jsonrpc.Error) {
	if h.probablyMissing(&contractAddress) {
		return nil, sequencer.ErrContractNotFound
	}

	class, err := h.storage.ContractCode(ctx, &contractAddress)
	if err != nil {
		h.markMissing(&contractAddress)
		return nil, sequencer.ErrContractNotFound
	}
	return newCodeReply(class), nil
}
