package header

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/archivenode/starknet-gateway/core"
	"github.com/archivenode/starknet-gateway/core/felt"
)

// errTruncated is returned whenever a protowire Consume* call reports a
// negative length, meaning the remaining bytes don't form a complete field
// (truncated message, bad varint, or similar wire-level corruption).
var errTruncated = fmt.Errorf("header: truncated or malformed wire data")

// Field numbers for SignedBlockHeader, in declaration order. The spec
// requires field numbering be preserved exactly for wire compatibility, so
// these constants — not struct field order — are the source of truth,
// matching p2p_proto/src/header.rs one-for-one.
const (
	fieldHeaderBlockHash           = 1
	fieldHeaderParentHash          = 2
	fieldHeaderNumber              = 3
	fieldHeaderTime                = 4
	fieldHeaderSequencerAddress    = 5
	fieldHeaderStateDiffCommitment = 6
	fieldHeaderState               = 7
	fieldHeaderTransactions        = 8
	fieldHeaderEvents              = 9
	fieldHeaderReceipts            = 10
	fieldHeaderProtocolVersion     = 11
	fieldHeaderGasPrice            = 12
	fieldHeaderNumStorageDiffs     = 13
	fieldHeaderNumNonceUpdates     = 14
	fieldHeaderNumDeclaredClasses  = 15
	fieldHeaderNumDeployedContract = 16
	fieldHeaderSignatures          = 17
)

const (
	fieldSignatureR = 1
	fieldSignatureS = 2
)

const (
	fieldNewBlockID     = 1
	fieldNewBlockHeader = 2
)

const (
	fieldResponseHeader = 1
	fieldResponseFin    = 2
)

const (
	fieldRequestIteration = 1
)

const (
	fieldIterationStartNumber = 1
	fieldIterationStartHash   = 2
	fieldIterationDirection   = 3
	fieldIterationStep        = 4
	fieldIterationLimit       = 5
)

// EncodeSignedBlockHeader serializes h using the standard tag-length-value
// scheme: field-element fields are length-delimited 32-byte octets,
// counters are varints, the protocol version string is a length-delimited
// UTF-8 blob, and signatures is a repeated length-delimited submessage.
func EncodeSignedBlockHeader(h *core.SignedBlockHeader) []byte {
	var b []byte
	b = appendFelt(b, fieldHeaderBlockHash, h.BlockHash)
	b = appendFelt(b, fieldHeaderParentHash, h.ParentHash)
	b = protowire.AppendTag(b, fieldHeaderNumber, protowire.VarintType)
	b = protowire.AppendVarint(b, h.Number)
	b = protowire.AppendTag(b, fieldHeaderTime, protowire.VarintType)
	b = protowire.AppendVarint(b, h.Time)
	b = appendFelt(b, fieldHeaderSequencerAddress, h.SequencerAddress)
	b = appendFelt(b, fieldHeaderStateDiffCommitment, h.StateDiffCommitment)
	b = appendFelt(b, fieldHeaderState, h.State)
	b = appendFelt(b, fieldHeaderTransactions, h.Transactions)
	b = appendFelt(b, fieldHeaderEvents, h.Events)
	b = appendFelt(b, fieldHeaderReceipts, h.Receipts)
	b = protowire.AppendTag(b, fieldHeaderProtocolVersion, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte(h.ProtocolVersion))
	b = appendFelt(b, fieldHeaderGasPrice, h.GasPrice)
	b = protowire.AppendTag(b, fieldHeaderNumStorageDiffs, protowire.VarintType)
	b = protowire.AppendVarint(b, h.NumStorageDiffs)
	b = protowire.AppendTag(b, fieldHeaderNumNonceUpdates, protowire.VarintType)
	b = protowire.AppendVarint(b, h.NumNonceUpdates)
	b = protowire.AppendTag(b, fieldHeaderNumDeclaredClasses, protowire.VarintType)
	b = protowire.AppendVarint(b, h.NumDeclaredClasses)
	b = protowire.AppendTag(b, fieldHeaderNumDeployedContract, protowire.VarintType)
	b = protowire.AppendVarint(b, h.NumDeployedContracts)
	for _, sig := range h.Signatures {
		b = protowire.AppendTag(b, fieldHeaderSignatures, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeSignature(sig))
	}
	return b
}

func encodeSignature(sig core.ConsensusSignature) []byte {
	var b []byte
	b = appendFelt(b, fieldSignatureR, sig.R)
	b = appendFelt(b, fieldSignatureS, sig.S)
	return b
}

func decodeSignature(data []byte) (core.ConsensusSignature, error) {
	var sig core.ConsensusSignature
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return sig, errTruncated
		}
		data = data[n:]
		switch num {
		case fieldSignatureR:
			f, m, err := consumeFelt(typ, data)
			if err != nil {
				return sig, err
			}
			sig.R = f
			data = data[m:]
		case fieldSignatureS:
			f, m, err := consumeFelt(typ, data)
			if err != nil {
				return sig, err
			}
			sig.S = f
			data = data[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, data)
			if m < 0 {
				return sig, errTruncated
			}
			data = data[m:]
		}
	}
	if sig.R == nil || sig.S == nil {
		return sig, fmt.Errorf("header: signature missing required field")
	}
	return sig, nil
}

// DecodeSignedBlockHeader is the inverse of EncodeSignedBlockHeader.
// Unrecognized field numbers are skipped (forward compatibility, per
// spec §4.3's decoding contract). A missing block_hash or parent_hash fails
// with the offending field name; no other field is checked for presence,
// and an absent one is left at its zero value (nil felt, 0, or "").
func DecodeSignedBlockHeader(data []byte) (*core.SignedBlockHeader, error) {
	h := &core.SignedBlockHeader{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errTruncated
		}
		data = data[n:]

		var err error
		switch num {
		case fieldHeaderBlockHash:
			h.BlockHash, data, err = consumeFeltField(typ, data)
		case fieldHeaderParentHash:
			h.ParentHash, data, err = consumeFeltField(typ, data)
		case fieldHeaderNumber:
			h.Number, data, err = consumeVarintField(typ, data)
		case fieldHeaderTime:
			h.Time, data, err = consumeVarintField(typ, data)
		case fieldHeaderSequencerAddress:
			h.SequencerAddress, data, err = consumeFeltField(typ, data)
		case fieldHeaderStateDiffCommitment:
			h.StateDiffCommitment, data, err = consumeFeltField(typ, data)
		case fieldHeaderState:
			h.State, data, err = consumeFeltField(typ, data)
		case fieldHeaderTransactions:
			h.Transactions, data, err = consumeFeltField(typ, data)
		case fieldHeaderEvents:
			h.Events, data, err = consumeFeltField(typ, data)
		case fieldHeaderReceipts:
			h.Receipts, data, err = consumeFeltField(typ, data)
		case fieldHeaderProtocolVersion:
			var raw []byte
			raw, data, err = consumeBytesField(typ, data)
			if err == nil {
				h.ProtocolVersion = string(raw)
			}
		case fieldHeaderGasPrice:
			h.GasPrice, data, err = consumeFeltField(typ, data)
		case fieldHeaderNumStorageDiffs:
			h.NumStorageDiffs, data, err = consumeVarintField(typ, data)
		case fieldHeaderNumNonceUpdates:
			h.NumNonceUpdates, data, err = consumeVarintField(typ, data)
		case fieldHeaderNumDeclaredClasses:
			h.NumDeclaredClasses, data, err = consumeVarintField(typ, data)
		case fieldHeaderNumDeployedContract:
			h.NumDeployedContracts, data, err = consumeVarintField(typ, data)
		case fieldHeaderSignatures:
			var raw []byte
			raw, data, err = consumeBytesField(typ, data)
			if err == nil {
				var sig core.ConsensusSignature
				sig, err = decodeSignature(raw)
				if err == nil {
					h.Signatures = append(h.Signatures, sig)
				}
			}
		default:
			m := protowire.ConsumeFieldValue(num, typ, data)
			if m < 0 {
				err = errTruncated
			} else {
				data = data[m:]
			}
		}
		if err != nil {
			return nil, err
		}
	}

	if h.BlockHash == nil {
		return nil, fmt.Errorf("header: missing required field block_hash")
	}
	if h.ParentHash == nil {
		return nil, fmt.Errorf("header: missing required field parent_hash")
	}
	return h, nil
}

// EncodeNewBlock serializes the NewBlock oneof: exactly one of ID or
// Header must be set.
func EncodeNewBlock(n *NewBlock) ([]byte, error) {
	var b []byte
	switch {
	case n.ID != nil:
		idBytes, err := encodeBlockID(n.ID)
		if err != nil {
			return nil, err
		}
		b = protowire.AppendTag(b, fieldNewBlockID, protowire.BytesType)
		b = protowire.AppendBytes(b, idBytes)
	case n.Header != nil:
		respBytes, err := EncodeBlockHeadersResponse(n.Header)
		if err != nil {
			return nil, err
		}
		b = protowire.AppendTag(b, fieldNewBlockHeader, protowire.BytesType)
		b = protowire.AppendBytes(b, respBytes)
	default:
		return nil, fmt.Errorf("header: NewBlock has empty maybe_full oneof")
	}
	return b, nil
}

// DecodeNewBlock is the inverse of EncodeNewBlock.
func DecodeNewBlock(data []byte) (*NewBlock, error) {
	n := &NewBlock{}
	for len(data) > 0 {
		num, typ, sz := protowire.ConsumeTag(data)
		if sz < 0 {
			return nil, errTruncated
		}
		data = data[sz:]

		switch num {
		case fieldNewBlockID:
			raw, rest, err := consumeBytesField(typ, data)
			if err != nil {
				return nil, err
			}
			id, err := decodeBlockID(raw)
			if err != nil {
				return nil, err
			}
			n.ID = id
			data = rest
		case fieldNewBlockHeader:
			raw, rest, err := consumeBytesField(typ, data)
			if err != nil {
				return nil, err
			}
			resp, err := DecodeBlockHeadersResponse(raw)
			if err != nil {
				return nil, err
			}
			n.Header = resp
			data = rest
		default:
			m := protowire.ConsumeFieldValue(num, typ, data)
			if m < 0 {
				return nil, errTruncated
			}
			data = data[m:]
		}
	}
	if n.ID == nil && n.Header == nil {
		return nil, fmt.Errorf("header: NewBlock has empty maybe_full oneof")
	}
	return n, nil
}

// EncodeBlockHeadersResponse serializes the Header/Fin oneof. Fin is
// encoded as a present-but-empty length-delimited field.
func EncodeBlockHeadersResponse(r *BlockHeadersResponse) ([]byte, error) {
	var b []byte
	switch {
	case r.IsFin:
		b = protowire.AppendTag(b, fieldResponseFin, protowire.BytesType)
		b = protowire.AppendBytes(b, nil)
	case r.Header != nil:
		hdrBytes := EncodeSignedBlockHeader(r.Header)
		b = protowire.AppendTag(b, fieldResponseHeader, protowire.BytesType)
		b = protowire.AppendBytes(b, hdrBytes)
	default:
		return nil, fmt.Errorf("header: BlockHeadersResponse has empty header_message oneof")
	}
	return b, nil
}

// DecodeBlockHeadersResponse is the inverse of EncodeBlockHeadersResponse.
func DecodeBlockHeadersResponse(data []byte) (*BlockHeadersResponse, error) {
	r := &BlockHeadersResponse{}
	seen := false
	for len(data) > 0 {
		num, typ, sz := protowire.ConsumeTag(data)
		if sz < 0 {
			return nil, errTruncated
		}
		data = data[sz:]

		switch num {
		case fieldResponseHeader:
			raw, rest, err := consumeBytesField(typ, data)
			if err != nil {
				return nil, err
			}
			hdr, err := DecodeSignedBlockHeader(raw)
			if err != nil {
				return nil, err
			}
			r.Header = hdr
			seen = true
			data = rest
		case fieldResponseFin:
			_, rest, err := consumeBytesField(typ, data)
			if err != nil {
				return nil, err
			}
			r.IsFin = true
			seen = true
			data = rest
		default:
			m := protowire.ConsumeFieldValue(num, typ, data)
			if m < 0 {
				return nil, errTruncated
			}
			data = data[m:]
		}
	}
	if !seen {
		return nil, fmt.Errorf("header: BlockHeadersResponse has empty header_message oneof")
	}
	return r, nil
}

// EncodeBlockHeadersRequest serializes the single-field request message.
func EncodeBlockHeadersRequest(req *BlockHeadersRequest) []byte {
	var b []byte
	iterBytes := encodeIteration(&req.Iteration)
	b = protowire.AppendTag(b, fieldRequestIteration, protowire.BytesType)
	b = protowire.AppendBytes(b, iterBytes)
	return b
}

// DecodeBlockHeadersRequest is the inverse of EncodeBlockHeadersRequest.
func DecodeBlockHeadersRequest(data []byte) (*BlockHeadersRequest, error) {
	req := &BlockHeadersRequest{}
	found := false
	for len(data) > 0 {
		num, typ, sz := protowire.ConsumeTag(data)
		if sz < 0 {
			return nil, errTruncated
		}
		data = data[sz:]

		if num == fieldRequestIteration {
			raw, rest, err := consumeBytesField(typ, data)
			if err != nil {
				return nil, err
			}
			iter, err := decodeIteration(raw)
			if err != nil {
				return nil, err
			}
			req.Iteration = *iter
			found = true
			data = rest
			continue
		}
		m := protowire.ConsumeFieldValue(num, typ, data)
		if m < 0 {
			return nil, errTruncated
		}
		data = data[m:]
	}
	if !found {
		return nil, fmt.Errorf("header: BlockHeadersRequest missing required field iteration")
	}
	return req, nil
}

func encodeIteration(it *Iteration) []byte {
	var b []byte
	if it.Start.Hash != nil {
		b = appendFelt(b, fieldIterationStartHash, it.Start.Hash)
	} else {
		b = protowire.AppendTag(b, fieldIterationStartNumber, protowire.VarintType)
		b = protowire.AppendVarint(b, it.Start.Number)
	}
	b = protowire.AppendTag(b, fieldIterationDirection, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(it.Direction))
	b = protowire.AppendTag(b, fieldIterationStep, protowire.VarintType)
	b = protowire.AppendVarint(b, it.Step)
	b = protowire.AppendTag(b, fieldIterationLimit, protowire.VarintType)
	b = protowire.AppendVarint(b, it.Limit)
	return b
}

func decodeIteration(data []byte) (*Iteration, error) {
	it := &Iteration{}
	haveStart := false
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errTruncated
		}
		data = data[n:]

		var err error
		switch num {
		case fieldIterationStartNumber:
			it.Start.Number, data, err = consumeVarintField(typ, data)
			haveStart = true
		case fieldIterationStartHash:
			it.Start.Hash, data, err = consumeFeltField(typ, data)
			haveStart = true
		case fieldIterationDirection:
			var d uint64
			d, data, err = consumeVarintField(typ, data)
			it.Direction = Direction(d)
		case fieldIterationStep:
			it.Step, data, err = consumeVarintField(typ, data)
		case fieldIterationLimit:
			it.Limit, data, err = consumeVarintField(typ, data)
		default:
			m := protowire.ConsumeFieldValue(num, typ, data)
			if m < 0 {
				err = errTruncated
			} else {
				data = data[m:]
			}
		}
		if err != nil {
			return nil, err
		}
	}
	if !haveStart {
		return nil, fmt.Errorf("header: Iteration missing required field start")
	}
	return it, nil
}

func encodeBlockID(id *core.BlockID) ([]byte, error) {
	var b []byte
	switch {
	case id.Hash != nil:
		b = appendFelt(b, 1, id.Hash)
	case id.ByNumber:
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, id.Number)
	default:
		return nil, fmt.Errorf("header: NewBlock id variant must be a concrete hash or number")
	}
	return b, nil
}

func decodeBlockID(data []byte) (*core.BlockID, error) {
	id := &core.BlockID{}
	found := false
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errTruncated
		}
		data = data[n:]

		switch num {
		case 1:
			f, m, err := consumeFelt(typ, data)
			if err != nil {
				return nil, err
			}
			id.Hash = f
			data = data[m:]
			found = true
		case 2:
			v, m, err := consumeVarint(typ, data)
			if err != nil {
				return nil, err
			}
			id.Number = v
			id.ByNumber = true
			data = data[m:]
			found = true
		default:
			m := protowire.ConsumeFieldValue(num, typ, data)
			if m < 0 {
				return nil, errTruncated
			}
			data = data[m:]
		}
	}
	if !found {
		return nil, fmt.Errorf("header: NewBlock id variant missing")
	}
	return id, nil
}

// --- field-level helpers -------------------------------------------------

func appendFelt(b []byte, field protowire.Number, f *felt.Felt) []byte {
	if f == nil {
		return b
	}
	b = protowire.AppendTag(b, field, protowire.BytesType)
	raw := f.Marshal()
	return protowire.AppendBytes(b, raw)
}

func consumeFelt(typ protowire.Type, data []byte) (*felt.Felt, int, error) {
	raw, n := protowire.ConsumeBytes(data)
	if n < 0 {
		return nil, 0, errTruncated
	}
	if typ != protowire.BytesType {
		return nil, 0, fmt.Errorf("header: expected length-delimited field, got wire type %d", typ)
	}
	return new(felt.Felt).SetBytes(raw), n, nil
}

func consumeFeltField(typ protowire.Type, data []byte) (*felt.Felt, []byte, error) {
	f, n, err := consumeFelt(typ, data)
	if err != nil {
		return nil, nil, err
	}
	return f, data[n:], nil
}

func consumeVarint(typ protowire.Type, data []byte) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, fmt.Errorf("header: expected varint field, got wire type %d", typ)
	}
	v, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return 0, 0, errTruncated
	}
	return v, n, nil
}

func consumeVarintField(typ protowire.Type, data []byte) (uint64, []byte, error) {
	v, n, err := consumeVarint(typ, data)
	if err != nil {
		return 0, nil, err
	}
	return v, data[n:], nil
}

func consumeBytesField(typ protowire.Type, data []byte) ([]byte, []byte, error) {
	if typ != protowire.BytesType {
		return nil, nil, fmt.Errorf("header: expected length-delimited field, got wire type %d", typ)
	}
	raw, n := protowire.ConsumeBytes(data)
	if n < 0 {
		return nil, nil, errTruncated
	}
	return raw, data[n:], nil
}
