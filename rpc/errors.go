package rpc

import "github.com/archivenode/starknet-gateway/jsonrpc"

// ErrInternal is the dispatcher's own catch-all for failures that are
// neither a malformed parameter nor a sequencer error — e.g. a local
// storage engine error other than blockchain.ErrNotFound. It carries no
// Starknet-semantic meaning, unlike the seven codes in the sequencer
// package.
var ErrInternal = &jsonrpc.Error{Code: jsonrpc.InternalError, Message: "Internal error"}
