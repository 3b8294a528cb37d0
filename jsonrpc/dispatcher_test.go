package jsonrpc

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func sum(_ context.Context, a, b int) (int, *Error) {
	return a + b, nil
}

func TestDispatchDuality(t *testing.T) {
	d := NewDispatcher()
	d.Register(Method{
		Name:    "test_sum",
		Params:  []Parameter{{Name: "a"}, {Name: "b"}},
		Handler: sum,
	})

	positional := Request{JSONRPC: "2.0", Method: "test_sum", Params: json.RawMessage(`[2, 3]`)}
	named := Request{JSONRPC: "2.0", Method: "test_sum", Params: json.RawMessage(`{"a": 2, "b": 3}`)}

	rp := d.Call(context.Background(), positional)
	rn := d.Call(context.Background(), named)

	require.Nil(t, rp.Error)
	require.Nil(t, rn.Error)
	require.Equal(t, rp.Result, rn.Result)
	require.Equal(t, 5, rp.Result)
}

func TestDispatchMethodNotFound(t *testing.T) {
	d := NewDispatcher()
	resp := d.Call(context.Background(), Request{JSONRPC: "2.0", Method: "does_not_exist"})
	require.NotNil(t, resp.Error)
	require.Equal(t, MethodNotFound, resp.Error.Code)
}

func TestDispatchMissingRequiredParam(t *testing.T) {
	d := NewDispatcher()
	d.Register(Method{
		Name:    "test_sum",
		Params:  []Parameter{{Name: "a"}, {Name: "b"}},
		Handler: sum,
	})
	resp := d.Call(context.Background(), Request{JSONRPC: "2.0", Method: "test_sum", Params: json.RawMessage(`{"a": 2}`)})
	require.NotNil(t, resp.Error)
	require.Equal(t, InvalidParams, resp.Error.Code)
}

func TestDispatchOptionalParam(t *testing.T) {
	d := NewDispatcher()
	d.Register(Method{
		Name: "test_scoped",
		Params: []Parameter{
			{Name: "required"},
			{Name: "optional", Optional: true},
		},
		Handler: func(_ context.Context, required int, optional *int) (int, *Error) {
			if optional == nil {
				return required, nil
			}
			return required + *optional, nil
		},
	})

	resp := d.Call(context.Background(), Request{JSONRPC: "2.0", Method: "test_scoped", Params: json.RawMessage(`[1]`)})
	require.Nil(t, resp.Error)
	require.Equal(t, 1, resp.Result)
}
