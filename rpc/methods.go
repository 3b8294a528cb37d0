package rpc

import "github.com/archivenode/starknet-gateway/jsonrpc"

// Register wires every starknet_-prefixed method into d, with its ordered
// parameter list — positional/named duality then falls out of
// jsonrpc.Dispatcher.bindParams generically, per spec §9's Design Note:
// implementations should bind by index-or-name uniformly, not per method.
func Register(d *jsonrpc.Dispatcher, h *Handler) {
	d.Register(jsonrpc.Method{
		Name: "starknet_getBlockByHash",
		Params: []jsonrpc.Parameter{
			{Name: "block_hash"},
			{Name: "requested_scope", Optional: true},
		},
		Handler: h.GetBlockByHash,
	})
	d.Register(jsonrpc.Method{
		Name: "starknet_getBlockByNumber",
		Params: []jsonrpc.Parameter{
			{Name: "block_number"},
			{Name: "requested_scope", Optional: true},
		},
		Handler: h.GetBlockByNumber,
	})
	d.Register(jsonrpc.Method{
		Name:    "starknet_getStateUpdateByHash",
		Params:  []jsonrpc.Parameter{{Name: "block_hash"}},
		Handler: h.GetStateUpdateByHash,
	})
	d.Register(jsonrpc.Method{
		Name: "starknet_getStorageAt",
		Params: []jsonrpc.Parameter{
			{Name: "contract_address"},
			{Name: "key"},
			{Name: "block_hash"},
		},
		Handler: h.GetStorageAt,
	})
	d.Register(jsonrpc.Method{
		Name:    "starknet_getTransactionByHash",
		Params:  []jsonrpc.Parameter{{Name: "transaction_hash"}},
		Handler: h.GetTransactionByHash,
	})
	d.Register(jsonrpc.Method{
		Name: "starknet_getTransactionByBlockHashAndIndex",
		Params: []jsonrpc.Parameter{
			{Name: "block_hash"},
			{Name: "index"},
		},
		Handler: h.GetTransactionByBlockHashAndIndex,
	})
	d.Register(jsonrpc.Method{
		Name: "starknet_getTransactionByBlockNumberAndIndex",
		Params: []jsonrpc.Parameter{
			{Name: "block_number"},
			{Name: "index"},
		},
		Handler: h.GetTransactionByBlockNumberAndIndex,
	})
	d.Register(jsonrpc.Method{
		Name:    "starknet_getTransactionReceipt",
		Params:  []jsonrpc.Parameter{{Name: "transaction_hash"}},
		Handler: h.GetTransactionReceipt,
	})
	d.Register(jsonrpc.Method{
		Name:    "starknet_getCode",
		Params:  []jsonrpc.Parameter{{Name: "contract_address"}},
		Handler: h.GetCode,
	})
	d.Register(jsonrpc.Method{
		Name:    "starknet_getBlockTransactionCountByHash",
		Params:  []jsonrpc.Parameter{{Name: "block_hash"}},
		Handler: h.GetBlockTransactionCountByHash,
	})
	d.Register(jsonrpc.Method{
		Name:    "starknet_getBlockTransactionCountByNumber",
		Params:  []jsonrpc.Parameter{{Name: "block_number"}},
		Handler: h.GetBlockTransactionCountByNumber,
	})
	d.Register(jsonrpc.Method{
		Name: "starknet_call",
		Params: []jsonrpc.Parameter{
			{Name: "request"},
			{Name: "block_hash"},
		},
		Handler: h.Call,
	})
	d.Register(jsonrpc.Method{
		Name:    "starknet_blockNumber",
		Handler: h.BlockNumber,
	})
	d.Register(jsonrpc.Method{
		Name:    "starknet_chainId",
		Handler: h.ChainID,
	})
	d.Register(jsonrpc.Method{
		Name:    "starknet_pendingTransactions",
		Handler: h.PendingTransactions,
	})
	d.Register(jsonrpc.Method{
		Name:    "starknet_protocolVersion",
		Handler: h.ProtocolVersion,
	})
	d.Register(jsonrpc.Method{
		Name:    "starknet_syncing",
		Handler: h.Syncing,
	})
}
