// Package core holds the chain data types shared between the storage
// oracle, the sequencer client, and the RPC dispatcher.
package core

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/archivenode/starknet-gateway/core/felt"
	"github.com/archivenode/starknet-gateway/jsonrpc"
)

// semanticParseError lets a parameter's UnmarshalJSON report a Starknet
// semantic error code (24/26) instead of the generic JSON-RPC "invalid
// params" the dispatcher would otherwise synthesize — the dispatcher
// recognizes this interface (jsonrpc.SemanticError) and surfaces the code
// unchanged, which is what lets a malformed block reference be rejected
// with the spec-mandated code before any backend call.
type semanticParseError struct {
	rpcErr *jsonrpc.Error
	value  string
}

func (e *semanticParseError) Error() string          { return e.rpcErr.Message + ": " + e.value }
func (e *semanticParseError) RPCError() *jsonrpc.Error { return e.rpcErr }

var (
	errMalformedHash   = &jsonrpc.Error{Code: 24, Message: "Invalid block hash"}
	errMalformedNumber = &jsonrpc.Error{Code: 26, Message: "Invalid block number"}
)

// BlockID is the tagged block reference accepted by every block-taking RPC
// method: a concrete hash, a concrete number, or one of the symbolic tags
// "latest"/"pending". Exactly one of Hash, Number (with ByNumber true), or
// one of Latest/Pending is meaningful for a given value.
type BlockID struct {
	Hash     *felt.Felt
	Number   uint64
	ByNumber bool
	Latest   bool
	Pending  bool
}

// ByHash builds a BlockID selecting a concrete block hash.
func ByHash(h *felt.Felt) BlockID { return BlockID{Hash: h} }

// ByNumberID builds a BlockID selecting a concrete block number.
func ByNumberID(n uint64) BlockID { return BlockID{Number: n, ByNumber: true} }

// LatestBlockID is the symbolic "latest" tag.
func LatestBlockID() BlockID { return BlockID{Latest: true} }

// PendingBlockID is the symbolic "pending" tag.
func PendingBlockID() BlockID { return BlockID{Pending: true} }

func tagBlockID(s string) (BlockID, bool) {
	switch s {
	case "latest":
		return LatestBlockID(), true
	case "pending":
		return PendingBlockID(), true
	}
	return BlockID{}, false
}

// BlockHashOrTag is the parameter type for every "block_hash"-shaped
// argument: a hex hash string, a JSON integer block number, or one of the
// two symbolic tags. A malformed value is rejected with error code 24, per
// spec, before any backend call.
type BlockHashOrTag struct{ BlockID }

func (b *BlockHashOrTag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return &semanticParseError{rpcErr: errMalformedHash, value: string(data)}
	}
	if data[0] != '"' {
		n, err := strconv.ParseUint(string(data), 10, 64)
		if err != nil {
			return &semanticParseError{rpcErr: errMalformedHash, value: string(data)}
		}
		b.BlockID = ByNumberID(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &semanticParseError{rpcErr: errMalformedHash, value: string(data)}
	}
	if id, ok := tagBlockID(s); ok {
		b.BlockID = id
		return nil
	}
	if !strings.HasPrefix(s, "0x") {
		return &semanticParseError{rpcErr: errMalformedHash, value: s}
	}
	h := new(felt.Felt)
	if _, err := h.SetString(s); err != nil {
		return &semanticParseError{rpcErr: errMalformedHash, value: s}
	}
	b.BlockID = ByHash(h)
	return nil
}

// BlockNumberOrTag is the parameter type for every "block_number"-shaped
// argument: a JSON integer or one of the two symbolic tags. A malformed
// value is rejected with error code 26, per spec, before any backend call.
type BlockNumberOrTag struct{ BlockID }

func (b *BlockNumberOrTag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			if id, ok := tagBlockID(s); ok {
				b.BlockID = id
				return nil
			}
			if n, err := strconv.ParseUint(s, 10, 64); err == nil {
				b.BlockID = ByNumberID(n)
				return nil
			}
		}
		return &semanticParseError{rpcErr: errMalformedNumber, value: string(data)}
	}
	n, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return &semanticParseError{rpcErr: errMalformedNumber, value: string(data)}
	}
	b.BlockID = ByNumberID(n)
	return nil
}
