// Package sequencer implements the HTTP client for the upstream feeder
// gateway and the Error Translator that maps its error vocabulary onto the
// node's public JSON-RPC error codes.
package sequencer

import (
	"strings"

	"github.com/archivenode/starknet-gateway/jsonrpc"
)

// StarknetErrorCode is the dotted error-code vocabulary reported by the
// sequencer, as consumed from JSON replies — see spec §6.
type StarknetErrorCode string

const (
	CodeBlockNotFound             StarknetErrorCode = "StarknetErrorCode.BLOCK_NOT_FOUND"
	CodeEntryPointNotFound        StarknetErrorCode = "StarknetErrorCode.ENTRY_POINT_NOT_FOUND_IN_CONTRACT"
	CodeOutOfRangeContractAddr    StarknetErrorCode = "StarknetErrorCode.OUT_OF_RANGE_CONTRACT_ADDRESS"
	CodeOutOfRangeStorageKey      StarknetErrorCode = "StarknetErrorCode.OUT_OF_RANGE_CONTRACT_STORAGE_KEY"
	CodeSchemaValidationError     StarknetErrorCode = "StarkErrorCode.SCHEMA_VALIDATION_ERROR"
	CodeTransactionFailed         StarknetErrorCode = "StarknetErrorCode.TRANSACTION_FAILED"
	CodeUninitializedContract     StarknetErrorCode = "StarknetErrorCode.UNINITIALIZED_CONTRACT"
	CodeOutOfRangeBlockHash       StarknetErrorCode = "StarknetErrorCode.OUT_OF_RANGE_BLOCK_HASH"
	CodeOutOfRangeTransactionHash StarknetErrorCode = "StarknetErrorCode.OUT_OF_RANGE_TRANSACTION_HASH"
	CodeMalformedRequest          StarknetErrorCode = "StarkErrorCode.MALFORMED_REQUEST"
)

// StarknetError is the application-level error body returned by the
// sequencer on a non-2xx application failure.
type StarknetError struct {
	Code    StarknetErrorCode `json:"code"`
	Message string            `json:"message"`
}

func (e *StarknetError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Error domains below mirror §4.1's input taxonomy one-for-one.

// DeserializationError wraps a failure to parse the sequencer's JSON reply.
type DeserializationError struct{ Cause error }

func (e *DeserializationError) Error() string { return "sequencer: deserialization: " + e.Cause.Error() }
func (e *DeserializationError) Unwrap() error { return e.Cause }

// ParseError wraps a reply that was not JSON at all (wrong content-type,
// an HTML error page from an intermediate proxy, and similar).
type ParseError struct{ Cause error }

func (e *ParseError) Error() string { return "sequencer: non-JSON reply: " + e.Cause.Error() }
func (e *ParseError) Unwrap() error { return e.Cause }

// TransportError wraps a failure below the application layer: socket, TLS,
// or HTTP-status errors including the sequencer's own rate limiting.
type TransportError struct{ Cause error }

func (e *TransportError) Error() string { return "sequencer: transport: " + e.Cause.Error() }
func (e *TransportError) Unwrap() error { return e.Cause }

// The seven Starknet-specific RPC error codes from spec §4.1. These are the
// only codes a conforming client should branch on; everything else
// collapses to a generic call-failed error with the original message
// preserved in Data.
var (
	ErrContractNotFound       = &jsonrpc.Error{Code: 20, Message: "Contract not found"}
	ErrInvalidMessageSelector = &jsonrpc.Error{Code: 21, Message: "Invalid message selector"}
	ErrInvalidCallData        = &jsonrpc.Error{Code: 22, Message: "Invalid call data"}
	ErrInvalidStorageKey      = &jsonrpc.Error{Code: 23, Message: "Invalid storage key"}
	ErrInvalidBlockHash       = &jsonrpc.Error{Code: 24, Message: "Invalid block hash"}
	ErrInvalidTransactionHash = &jsonrpc.Error{Code: 25, Message: "Invalid transaction hash"}
	ErrInvalidBlockNumber     = &jsonrpc.Error{Code: 26, Message: "Invalid block number"}
)

const malformedBlockRangeSubstring = "Block ID should be in the range"

// Translate is the Error Translator (C1): the single place the three
// failure domains (sequencer Starknet codes, transport errors, and the
// RPC-standard vocabulary) converge into the node's stable public
// contract. Every backend wrapper in the rpc package must route its
// sequencer errors through this function rather than inventing its own
// mapping.
func Translate(err error) *jsonrpc.Error {
	if err == nil {
		return nil
	}

	var starknetErr *StarknetError
	switch e := err.(type) {
	case *StarknetError:
		starknetErr = e
	case *DeserializationError, *ParseError, *TransportError:
		return genericCallFailed(err)
	default:
		return genericCallFailed(err)
	}

	switch starknetErr.Code {
	case CodeOutOfRangeBlockHash, CodeBlockNotFound:
		return ErrInvalidBlockHash
	case CodeOutOfRangeContractAddr, CodeUninitializedContract:
		return ErrContractNotFound
	case CodeOutOfRangeTransactionHash:
		return ErrInvalidTransactionHash
	case CodeOutOfRangeStorageKey:
		return ErrInvalidStorageKey
	case CodeTransactionFailed:
		return ErrInvalidCallData
	case CodeEntryPointNotFound:
		return ErrInvalidMessageSelector
	case CodeMalformedRequest:
		if strings.Contains(starknetErr.Message, malformedBlockRangeSubstring) {
			return ErrInvalidBlockNumber
		}
		return genericCallFailed(err)
	default:
		return genericCallFailed(err)
	}
}

// genericCallFailed is the catch-all for anything outside the seven-code
// contract: code is left unspecified (zero value) and the original message
// is preserved in Data for client-side debugging, per spec §7's
// backend-transient handling.
func genericCallFailed(err error) *jsonrpc.Error {
	return &jsonrpc.Error{
		Code:    jsonrpc.CodeUnspecified,
		Message: "sequencer call failed",
		Data:    err.Error(),
	}
}
