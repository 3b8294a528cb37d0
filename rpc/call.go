package rpc

import (
	"context"

	"github.com/archivenode/starknet-gateway/core"
	"github.com/archivenode/starknet-gateway/core/felt"
	"github.com/archivenode/starknet-gateway/jsonrpc"
	"github.com/archivenode/starknet-gateway/sequencer"
)

// FunctionCall is the call method's "request" parameter shape: a contract
// entry point plus its calldata, bound straight off the JSON object and
// handed to the sequencer client unchanged.
type FunctionCall struct {
	ContractAddress    felt.Felt   `json:"contract_address"`
	EntryPointSelector felt.Felt   `json:"entry_point_selector"`
	Calldata           []felt.Felt `json:"calldata"`
}

// Call implements starknet_call. Local state-transition execution is an
// explicit spec Non-goal, so unlike the teacher's vm.Call this proxies the
// request to the sequencer's call_contract endpoint and lets
// sequencer.Translate turn any application-level failure into the right
// RPC error code.
func (h *Handler) Call(ctx context.Context, request FunctionCall, blockHash core.BlockHashOrTag) ([]*felt.Felt, *jsonrpc.Error) {
	calldata := make([]*felt.Felt, len(request.Calldata))
	for i := range request.Calldata {
		calldata[i] = &request.Calldata[i]
	}

	result, err := h.sequencer.Call(ctx, sequencer.FunctionCall{
		ContractAddress:    &request.ContractAddress,
		EntryPointSelector: &request.EntryPointSelector,
		Calldata:           calldata,
	}, blockHash.BlockID)
	if err != nil {
		return nil, sequencer.Translate(err)
	}
	return result, nil
}
