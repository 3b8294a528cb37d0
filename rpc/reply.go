package rpc

import (
	"github.com/archivenode/starknet-gateway/core"
	"github.com/archivenode/starknet-gateway/core/felt"
)

// Scope selects how much transaction detail a block reply carries, per
// spec §6: omitting it defaults to TxnHash.
type Scope string

const (
	ScopeTxnHash            Scope = "TXN_HASH"
	ScopeFullTxns           Scope = "FULL_TXNS"
	ScopeFullTxnAndReceipts Scope = "FULL_TXN_AND_RECEIPTS"
	defaultScope                  = ScopeTxnHash
)

// normalizeScope applies the "omitting defaults to hash-only" rule and maps
// anything outside the three canonical values to the default as well, so no
// fourth level exists (Open Question in spec §9, resolved in DESIGN.md).
func normalizeScope(s *Scope) Scope {
	if s == nil || *s == "" {
		return defaultScope
	}
	switch *s {
	case ScopeTxnHash, ScopeFullTxns, ScopeFullTxnAndReceipts:
		return *s
	default:
		return defaultScope
	}
}

// BlockReply is the getBlockByHash/getBlockByNumber result. Transactions is
// populated according to the requested scope: transaction hashes only,
// full transactions, or full transactions paired with their receipts.
type BlockReply struct {
	Hash             *felt.Felt       `json:"block_hash"`
	ParentHash       *felt.Felt       `json:"parent_hash"`
	Number           uint64           `json:"block_number"`
	Status           core.BlockStatus `json:"status"`
	SequencerAddress *felt.Felt       `json:"sequencer_address,omitempty"`
	NewRoot          *felt.Felt       `json:"new_root,omitempty"`
	Timestamp        uint64           `json:"timestamp"`
	Transactions     []any            `json:"transactions"`
}

func newBlockReply(b *core.Block, scope Scope) *BlockReply {
	reply := &BlockReply{
		Hash:             b.Hash,
		ParentHash:       b.ParentHash,
		Number:           b.Number,
		Status:           b.Status,
		SequencerAddress: b.SequencerAddress,
		NewRoot:          b.NewRoot,
		Timestamp:        b.Timestamp,
		Transactions:     make([]any, len(b.Transactions)),
	}

	receiptByHash := make(map[felt.Felt]*core.TransactionReceipt, len(b.Receipts))
	for _, r := range b.Receipts {
		receiptByHash[*r.TransactionHash] = r
	}

	for i, tx := range b.Transactions {
		switch scope {
		case ScopeFullTxns:
			reply.Transactions[i] = newTransactionReply(tx)
		case ScopeFullTxnAndReceipts:
			reply.Transactions[i] = struct {
				Transaction *TransactionReply        `json:"transaction"`
				Receipt     *TransactionReceiptReply `json:"receipt"`
			}{
				Transaction: newTransactionReply(tx),
				Receipt:     newTransactionReceiptReply(receiptByHash[*tx.Hash]),
			}
		default:
			reply.Transactions[i] = tx.Hash
		}
	}
	return reply
}

// TransactionReply is the minimal projection getTransactionByHash and the
// by-index lookups need.
type TransactionReply struct {
	Hash               *felt.Felt   `json:"transaction_hash"`
	Type               string       `json:"type"`
	ContractAddress    *felt.Felt   `json:"contract_address,omitempty"`
	EntryPointSelector *felt.Felt   `json:"entry_point_selector,omitempty"`
	CallData           []*felt.Felt `json:"calldata,omitempty"`
	MaxFee             *felt.Felt   `json:"max_fee,omitempty"`
	Version            *felt.Felt   `json:"version,omitempty"`
	Nonce              *felt.Felt   `json:"nonce,omitempty"`
}

func newTransactionReply(tx *core.Transaction) *TransactionReply {
	if tx == nil {
		return nil
	}
	return &TransactionReply{
		Hash:               tx.Hash,
		Type:               tx.Type,
		ContractAddress:    tx.ContractAddress,
		EntryPointSelector: tx.EntryPointSelector,
		CallData:           tx.CallData,
		MaxFee:             tx.MaxFee,
		Version:            tx.Version,
		Nonce:              tx.Nonce,
	}
}

// TransactionReceiptReply is the minimal projection getTransactionReceipt
// needs.
type TransactionReceiptReply struct {
	TransactionHash *felt.Felt       `json:"transaction_hash"`
	ActualFee       *felt.Felt       `json:"actual_fee"`
	Status          core.BlockStatus `json:"status"`
	BlockHash       *felt.Felt       `json:"block_hash"`
	BlockNumber     uint64           `json:"block_number"`
}

func newTransactionReceiptReply(r *core.TransactionReceipt) *TransactionReceiptReply {
	if r == nil {
		return nil
	}
	return &TransactionReceiptReply{
		TransactionHash: r.TransactionHash,
		ActualFee:       r.ActualFee,
		Status:          r.Status,
		BlockHash:       r.BlockHash,
		BlockNumber:     r.BlockNumber,
	}
}

// StateUpdateReply is the getStateUpdateByHash result — a direct
// projection of core.StateUpdate.
type StateUpdateReply struct {
	BlockHash *felt.Felt      `json:"block_hash"`
	NewRoot   *felt.Felt      `json:"new_root"`
	OldRoot   *felt.Felt      `json:"old_root"`
	StateDiff *core.StateDiff `json:"state_diff"`
}

func newStateUpdateReply(u *core.StateUpdate) *StateUpdateReply {
	return &StateUpdateReply{
		BlockHash: u.BlockHash,
		NewRoot:   u.NewRoot,
		OldRoot:   u.OldRoot,
		StateDiff: u.StateDiff,
	}
}

// CodeReply is the getCode result.
type CodeReply struct {
	Abi      string       `json:"abi"`
	Bytecode []*felt.Felt `json:"bytecode"`
}

func newCodeReply(c *core.Class) *CodeReply {
	return &CodeReply{Abi: c.Abi, Bytecode: c.Bytecode}
}

// SyncStatus is the syncing result, resolving the Open Question in spec §9:
// either the literal false (fully synced) or a status record comparing the
// local head against the sequencer's.
type SyncStatus struct {
	StartingBlockHash *felt.Felt `json:"starting_block_hash"`
	StartingBlockNum  uint64     `json:"starting_block_num"`
	CurrentBlockHash  *felt.Felt `json:"current_block_hash"`
	CurrentBlockNum   uint64     `json:"current_block_num"`
	HighestBlockHash  *felt.Felt `json:"highest_block_hash"`
	HighestBlockNum   uint64     `json:"highest_block_num"`
}
