// Package header implements the Header Protocol Codec (C3): the
// SignedBlockHeader wire record, the NewBlock announcement, and the
// BlockHeadersRequest/Response stream framing used to request and gossip
// signed block headers between peers.
package header

import (
	"github.com/archivenode/starknet-gateway/core"
	"github.com/archivenode/starknet-gateway/core/felt"
)

// Direction selects which way an Iteration walks the chain.
type Direction uint8

const (
	Forward Direction = iota
	Backward
)

// Start is the tagged start point of an Iteration: either a concrete block
// number or a block hash. Exactly one of the two is meaningful.
type Start struct {
	Number uint64
	Hash   *felt.Felt
}

// ByNumber builds a Start selecting a concrete height.
func ByNumber(n uint64) Start { return Start{Number: n} }

// ByHash builds a Start selecting a concrete hash.
func ByHash(h *felt.Felt) Start { return Start{Hash: h} }

// Iteration is a bounded walk descriptor: "give me up to Limit headers
// starting at Start, stepping by Step in direction Direction", per spec
// §3/§4.3.
type Iteration struct {
	Start     Start
	Direction Direction
	Step      uint64
	Limit     uint64
}

// BlockHeadersRequest carries a single Iteration descriptor.
type BlockHeadersRequest struct {
	Iteration Iteration
}

// BlockHeadersResponse is a tagged union with exactly two cases: a header,
// or the terminal Fin marker. IsFin distinguishes between them; Header is
// nil when IsFin is true and non-nil otherwise — the zero value (neither
// set) is not a valid response and is rejected by the encoder.
type BlockHeadersResponse struct {
	Header *core.SignedBlockHeader
	IsFin  bool
}

// Fin builds the terminal marker response.
func Fin() BlockHeadersResponse { return BlockHeadersResponse{IsFin: true} }

// HeaderResponse wraps a header as a response value.
func HeaderResponse(h *core.SignedBlockHeader) BlockHeadersResponse {
	return BlockHeadersResponse{Header: h}
}

// NewBlock is the gossip announcement: either a bare block reference
// (cheap gossip, peers fetch headers on demand) or a full header payload
// (eager gossip).
type NewBlock struct {
	ID     *core.BlockID
	Header *BlockHeadersResponse
}
