package jsonrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

// Parameter names one positional slot of a method, so the binder can accept
// either a JSON array (bind by index) or a JSON object (bind by name)
// without the method body caring which form the caller used.
type Parameter struct {
	Name     string
	Optional bool
}

// Method is a registered RPC method: a name, an ordered parameter list, and
// a handler function. The handler's signature must be
//
//	func(ctx context.Context, p0 T0, p1 T1, ...) (R, *Error)
//
// where len(Params) equals the number of non-context arguments, and R is any
// JSON-marshalable type. Register rejects a handler that does not return
// exactly two values.
type Method struct {
	Name    string
	Params  []Parameter
	Handler any
}

// Dispatcher is a name -> Method registry with a uniform positional/named
// parameter binder, so the parameter-form duality required by the RPC spec
// is enforced once, generically, instead of per method.
type Dispatcher struct {
	methods map[string]Method

	// OnDispatch, if set, is called after every Call of a registered method
	// with the method name and the time spent binding parameters and running
	// the handler; unknown methods are not reported. It exists so a host process
	// can export dispatch latency to its own metrics system without the
	// dispatcher depending on one.
	OnDispatch func(method string, d time.Duration)
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{methods: make(map[string]Method)}
}

// Register adds a method, panicking on a malformed handler signature — this
// is a programmer error caught at startup, not a runtime condition.
func (d *Dispatcher) Register(m Method) {
	t := reflect.TypeOf(m.Handler)
	if t == nil || t.Kind() != reflect.Func {
		panic(fmt.Sprintf("jsonrpc: method %q handler is not a function", m.Name))
	}
	wantIn := len(m.Params)
	hasCtx := t.NumIn() > 0 && t.In(0) == reflect.TypeOf((*context.Context)(nil)).Elem()
	gotIn := t.NumIn()
	if hasCtx {
		gotIn--
	}
	if gotIn != wantIn {
		panic(fmt.Sprintf("jsonrpc: method %q declares %d params but handler takes %d", m.Name, wantIn, gotIn))
	}
	if t.NumOut() != 2 {
		panic(fmt.Sprintf("jsonrpc: method %q handler must return (result, *jsonrpc.Error)", m.Name))
	}
	d.methods[m.Name] = m
}

// Request is a decoded JSON-RPC 2.0 request envelope.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is the JSON-RPC 2.0 response envelope (success or error, never
// both populated).
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Call resolves a method by name, binds its parameters (positional or
// named), invokes the handler, and returns the JSON-RPC response envelope.
// Dispatch never panics on malformed caller input — only on a bad handler
// registration found above.
func (d *Dispatcher) Call(ctx context.Context, req Request) Response {
	resp := Response{JSONRPC: "2.0", ID: req.ID}

	m, ok := d.methods[req.Method]
	if !ok {
		resp.Error = ErrMethodNotFound
		return resp
	}

	if d.OnDispatch != nil {
		start := time.Now()
		defer func() { d.OnDispatch(req.Method, time.Since(start)) }()
	}

	args, rpcErr := bindParams(m, req.Params)
	if rpcErr != nil {
		resp.Error = rpcErr
		return resp
	}

	fn := reflect.ValueOf(m.Handler)
	in := make([]reflect.Value, 0, len(args)+1)
	if fn.Type().NumIn() > 0 && fn.Type().In(0) == reflect.TypeOf((*context.Context)(nil)).Elem() {
		in = append(in, reflect.ValueOf(ctx))
	}
	in = append(in, args...)

	out := fn.Call(in)
	if !out[1].IsNil() {
		resp.Error = out[1].Interface().(*Error)
		return resp
	}
	resp.Result = out[0].Interface()
	return resp
}

// bindParams implements the positional-vs-named duality: an array binds by
// index, an object binds by name, and either form must produce an identical
// argument vector for the same logical call.
func bindParams(m Method, raw json.RawMessage) ([]reflect.Value, *Error) {
	t := reflect.TypeOf(m.Handler)
	offset := 0
	if t.NumIn() > 0 && t.In(0) == reflect.TypeOf((*context.Context)(nil)).Elem() {
		offset = 1
	}

	rawParams, named, rpcErr := splitParams(raw, len(m.Params))
	if rpcErr != nil {
		return nil, rpcErr
	}

	args := make([]reflect.Value, len(m.Params))
	for i, p := range m.Params {
		var slot json.RawMessage
		if named != nil {
			slot = named[p.Name]
		} else if i < len(rawParams) {
			slot = rawParams[i]
		}

		argType := t.In(offset + i)
		if len(slot) == 0 || string(slot) == "null" {
			if !p.Optional {
				return nil, NewInvalidParams(p.Name, fmt.Errorf("missing required parameter"))
			}
			args[i] = reflect.Zero(argType)
			continue
		}

		ptr := reflect.New(argType)
		if err := json.Unmarshal(slot, ptr.Interface()); err != nil {
			if semErr, ok := asSemanticError(err); ok {
				return nil, semErr.RPCError()
			}
			return nil, NewInvalidParams(p.Name, err)
		}
		args[i] = ptr.Elem()
	}
	return args, nil
}

// splitParams decodes the raw JSON params into either a positional slice or
// a name-keyed map, leaving the one not applicable nil.
func splitParams(raw json.RawMessage, want int) ([]json.RawMessage, map[string]json.RawMessage, *Error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil, nil
	}

	trimmed := skipSpace(raw)
	switch {
	case len(trimmed) > 0 && trimmed[0] == '[':
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err != nil {
			return nil, nil, &Error{Code: InvalidParams, Message: "invalid params: expected array"}
		}
		return arr, nil, nil
	case len(trimmed) > 0 && trimmed[0] == '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, nil, &Error{Code: InvalidParams, Message: "invalid params: expected object"}
		}
		return nil, obj, nil
	default:
		return nil, nil, &Error{Code: InvalidParams, Message: "invalid params: expected array or object"}
	}
}

func asSemanticError(err error) (SemanticError, bool) {
	se, ok := err.(SemanticError)
	return se, ok
}

func skipSpace(b []byte) []byte {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == '\t' || b[i] == '\n' || b[i] == '\r') {
		i++
	}
	return b[i:]
}
