// Package jsonrpc implements a minimal JSON-RPC 2.0 server: the generic
// method registry and positional/named parameter binder described in the
// RPC dispatcher design notes, plus the standard JSON-RPC error codes. It
// has no Starknet-specific knowledge — that lives in the rpc package.
package jsonrpc

import "fmt"

// Standard JSON-RPC 2.0 error codes.
const (
	InvalidJSON     = -32700
	InvalidRequest  = -32600
	MethodNotFound  = -32601
	InvalidParams   = -32602
	InternalError   = -32603
	CodeUnspecified = 0 // generic application error; see Error.Code doc
)

// Error is the JSON-RPC 2.0 error object. A zero Code is used for generic
// "call failed" errors whose only contract is the preserved Message/Data —
// see the Error Translator design in the sequencer package.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// CloneWithData returns a copy of e carrying the given data payload, leaving
// the receiver untouched — handlers hold package-level *Error sentinels and
// must never mutate them in place.
func (e *Error) CloneWithData(data any) *Error {
	return &Error{Code: e.Code, Message: e.Message, Data: data}
}

// Is allows errors.Is(err, sentinel) to match on code, so callers can branch
// on a specific RPC error without caring about its Data payload.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

// NewInvalidParams builds an "invalid params" error naming the offending
// field, per the spec's failure semantics for parameter parse failures.
func NewInvalidParams(field string, cause error) *Error {
	return &Error{
		Code:    InvalidParams,
		Message: fmt.Sprintf("invalid params: %s", field),
		Data:    cause.Error(),
	}
}

// ErrMethodNotFound is returned for unregistered method names.
var ErrMethodNotFound = &Error{Code: MethodNotFound, Message: "Method not found"}

// SemanticError lets a parameter type's UnmarshalJSON surface a
// domain-specific error code (e.g. the Starknet block-reference codes 24
// and 26) instead of the generic InvalidParams the dispatcher would
// otherwise synthesize from an unmarshal failure.
type SemanticError interface {
	error
	RPCError() *Error
}
