package core

import "github.com/archivenode/starknet-gateway/core/felt"

// BlockStatus mirrors the handful of states the RPC surface needs to report.
type BlockStatus string

const (
	BlockAcceptedL2 BlockStatus = "ACCEPTED_ON_L2"
	BlockAcceptedL1 BlockStatus = "ACCEPTED_ON_L1"
	BlockPendingS   BlockStatus = "PENDING"
)

// Block is the storage oracle's projection of a block, sufficient to answer
// getBlockByHash/Number, the transaction-count methods, and the
// by-index transaction lookups. Field lists beyond this are not exercised
// by the RPC surface in scope here (see DESIGN.md).
type Block struct {
	Hash             *felt.Felt
	ParentHash       *felt.Felt
	Number           uint64
	Status           BlockStatus
	SequencerAddress *felt.Felt
	NewRoot          *felt.Felt
	OldRoot          *felt.Felt
	Timestamp        uint64
	Transactions     []*Transaction
	Receipts         []*TransactionReceipt
}

// Transaction is the minimal shape returned by the transaction-lookup
// methods: enough to identify and replay the call, not a full execution
// trace.
type Transaction struct {
	Hash               *felt.Felt
	Type               string
	ContractAddress    *felt.Felt
	EntryPointSelector *felt.Felt
	CallData           []*felt.Felt
	MaxFee             *felt.Felt
	Version            *felt.Felt
	Nonce              *felt.Felt
}

// TransactionReceipt is the minimal receipt projection.
type TransactionReceipt struct {
	TransactionHash *felt.Felt
	ActualFee       *felt.Felt
	Status          BlockStatus
	BlockHash       *felt.Felt
	BlockNumber     uint64
}

// StateDiff is an opaque projection of a state update's diff payload; the
// dispatcher forwards it to the caller untouched.
type StateDiff struct {
	StorageDiffs      map[string]map[string]*felt.Felt
	DeclaredContracts []*felt.Felt
	Nonces            map[string]*felt.Felt
}

// StateUpdate is the storage oracle's projection for getStateUpdateByHash.
type StateUpdate struct {
	BlockHash *felt.Felt
	NewRoot   *felt.Felt
	OldRoot   *felt.Felt
	StateDiff *StateDiff
}

// Class is the contract class projection for getCode: ABI plus the
// flattened bytecode program, dropping the Cairo0/Cairo1 entry-point split
// that the newer RPC surface needs but this method does not.
type Class struct {
	Abi      string
	Bytecode []*felt.Felt
}
