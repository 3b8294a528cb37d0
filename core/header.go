package core

import "github.com/archivenode/starknet-gateway/core/felt"

// ConsensusSignature is an opaque two-field-element consensus signature
// attached to a SignedBlockHeader.
type ConsensusSignature struct {
	R *felt.Felt
	S *felt.Felt
}

// SignedBlockHeader is the gossip-network representation of a block header,
// carrying the commitment roots and consensus signatures that accompany the
// header but are not themselves part of the RPC block reply. The codec does
// not verify that BlockHash is actually the hash of the remaining fields —
// that is left to the caller, per the header protocol spec.
type SignedBlockHeader struct {
	BlockHash            *felt.Felt
	ParentHash           *felt.Felt
	Number               uint64
	Time                 uint64
	SequencerAddress     *felt.Felt
	StateDiffCommitment  *felt.Felt
	State                *felt.Felt // Patricia-Merkle root
	Transactions         *felt.Felt // Merkle root
	Events               *felt.Felt // Merkle root
	Receipts             *felt.Felt // Merkle root
	ProtocolVersion      string
	GasPrice             *felt.Felt
	NumStorageDiffs      uint64
	NumNonceUpdates      uint64
	NumDeclaredClasses   uint64
	NumDeployedContracts uint64
	Signatures           []ConsensusSignature
}

// Equal does a deep, order-sensitive comparison, used by the codec's
// round-trip tests.
func (h *SignedBlockHeader) Equal(o *SignedBlockHeader) bool {
	if h == nil || o == nil {
		return h == o
	}
	if !feltEqual(h.BlockHash, o.BlockHash) ||
		!feltEqual(h.ParentHash, o.ParentHash) ||
		h.Number != o.Number ||
		h.Time != o.Time ||
		!feltEqual(h.SequencerAddress, o.SequencerAddress) ||
		!feltEqual(h.StateDiffCommitment, o.StateDiffCommitment) ||
		!feltEqual(h.State, o.State) ||
		!feltEqual(h.Transactions, o.Transactions) ||
		!feltEqual(h.Events, o.Events) ||
		!feltEqual(h.Receipts, o.Receipts) ||
		h.ProtocolVersion != o.ProtocolVersion ||
		!feltEqual(h.GasPrice, o.GasPrice) ||
		h.NumStorageDiffs != o.NumStorageDiffs ||
		h.NumNonceUpdates != o.NumNonceUpdates ||
		h.NumDeclaredClasses != o.NumDeclaredClasses ||
		h.NumDeployedContracts != o.NumDeployedContracts ||
		len(h.Signatures) != len(o.Signatures) {
		return false
	}
	for i := range h.Signatures {
		if !feltEqual(h.Signatures[i].R, o.Signatures[i].R) ||
			!feltEqual(h.Signatures[i].S, o.Signatures[i].S) {
			return false
		}
	}
	return true
}

func feltEqual(a, b *felt.Felt) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b)
}
