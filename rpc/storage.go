package rpc

import (
	"context"

	"github.com/archivenode/starknet-gateway/core"
	"github.com/archivenode/starknet-gateway/core/felt"
	"github.com/archivenode/starknet-gateway/jsonrpc"
	"github.com/archivenode/starknet-gateway/sequencer"
)

// GetStorageAt implements starknet_getStorageAt. The key parameter is bound
// as felt.Wide by the dispatcher (an unchecked 256-bit parse), then
// narrowed here with an explicit range check — the "parse wide, then
// range-check" pattern from spec §4.2, required because Felt's own parser
// silently reduces modulo the prime instead of reporting the overflow.
func (h *Handler) GetStorageAt(ctx context.Context, contractAddress felt.Felt, key felt.Wide, blockHash core.BlockHashOrTag) (*felt.Felt, *jsonrpc.Error) {
	narrowKey, err := felt.NewStorageKey(&key)
	if err != nil {
		return nil, sequencer.ErrInvalidStorageKey
	}

	if _, rpcErr := h.blockByID(ctx, blockHash.BlockID); rpcErr != nil {
		return nil, rpcErr
	}

	if h.probablyMissing(&contractAddress) {
		return nil, sequencer.ErrContractNotFound
	}

	value, storageErr := h.storage.StorageValue(ctx, &contractAddress, narrowKey, blockHash.BlockID)
	if storageErr != nil {
		if _, codeErr := h.storage.ContractCode(ctx, &contractAddress); codeErr != nil {
			h.markMissing(&contractAddress)
		}
		return nil, sequencer.ErrContractNotFound
	}
	return value, nil
}
