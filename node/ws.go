package node

import (
	"net/http"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/archivenode/starknet-gateway/jsonrpc"
)

// newWebSocketHandler exposes the same dispatcher the HTTP server uses over
// a persistent WebSocket connection: one connection may carry any number of
// JSON-RPC requests, each answered independently and in the order received
// — the spec places no ordering requirement across concurrent in-flight
// requests on one connection, so requests are served sequentially per
// connection rather than fanned out, keeping the per-connection state (one
// goroutine, one socket) trivial to reason about.
func newWebSocketHandler(d *jsonrpc.Dispatcher, log *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			log.Debug("websocket: accept failed", zap.Error(err))
			return
		}
		defer conn.CloseNow()

		ctx := r.Context()
		for {
			var req jsonrpc.Request
			if err := wsjson.Read(ctx, conn, &req); err != nil {
				return
			}
			resp := d.Call(ctx, req)
			if err := wsjson.Write(ctx, conn, resp); err != nil {
				return
			}
		}
	})
}
