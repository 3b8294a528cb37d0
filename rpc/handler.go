// Package rpc implements the RPC Dispatcher (C2): the starknet_-prefixed
// method surface, block-reference resolution, and the translation of
// backend failures through the sequencer's Error Translator.
package rpc

import (
	"context"

	"github.com/bits-and-blooms/bloom/v3"
	"go.uber.org/zap"

	"github.com/archivenode/starknet-gateway/blockchain"
	"github.com/archivenode/starknet-gateway/core"
	"github.com/archivenode/starknet-gateway/core/felt"
	"github.com/archivenode/starknet-gateway/sequencer"
)

// SequencerAPI is the subset of *sequencer.Client the dispatcher depends
// on, narrowed to an interface so it can be faked in tests without standing
// up an HTTP server.
type SequencerAPI interface {
	Call(ctx context.Context, call sequencer.FunctionCall, id core.BlockID) ([]*felt.Felt, error)
	ChainHead(ctx context.Context) (*core.Block, error)
}

// Handler holds the two backend handles the dispatcher needs for its
// lifetime: a storage reader and a sequencer client. Both are shared,
// concurrency-safe, and held without further synchronization, per the
// concurrency model in the spec.
type Handler struct {
	storage   blockchain.Reader
	sequencer SequencerAPI
	log       *zap.Logger
	chainID   *felt.Felt
	protocol  string
	missing   *bloom.BloomFilter // negative cache: addresses known to have no deployed contract
}

// New builds a Handler. chainID and protocolVersion are the values this
// node reports for starknet_chainId / starknet_protocolVersion.
func New(storage blockchain.Reader, seq SequencerAPI, chainID *felt.Felt, protocolVersion string, log *zap.Logger) *Handler {
	return &Handler{
		storage:  storage,
		sequencer: seq,
		log:      log,
		chainID:  chainID,
		protocol: protocolVersion,
		missing:  bloom.NewWithEstimates(1<<20, 0.01),
	}
}

// callAndLogErr runs a cleanup func and logs any failure instead of
// propagating it — used for defer'd resource closers, matching the
// teacher's defer h.callAndLogErr(closer, "...") idiom.
func (h *Handler) callAndLogErr(f func() error, msg string) {
	if f == nil {
		return
	}
	if err := f(); err != nil {
		h.log.Error(msg, zap.Error(err))
	}
}

// markMissing records a contract address in the negative cache so future
// lookups can skip straight to ContractNotFound without a storage round
// trip. On a hit the caller returns ContractNotFound without any lookup.
// Entries are never removed, and as a Bloom filter it can report a false
// positive for an address that was never marked.
func (h *Handler) markMissing(address *felt.Felt) {
	h.missing.Add(address.Marshal())
}

// probablyMissing reports whether address is very likely absent, per the
// Bloom filter's one-sided guarantee (no false negatives).
func (h *Handler) probablyMissing(address *felt.Felt) bool {
	return h.missing.Test(address.Marshal())
}
