package jsonrpc

import (
	"encoding/json"
	"net/http"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Server exposes a Dispatcher over HTTP POST, JSON-RPC 2.0 / application-json,
// with permissive CORS so browser-based wallets and explorers can call it
// directly — the same posture the teacher's RPC server ships with.
type Server struct {
	dispatcher *Dispatcher
	log        *zap.Logger
}

func NewServer(d *Dispatcher, log *zap.Logger) *Server {
	return &Server{dispatcher: d, log: log}
}

// Handler returns the CORS-wrapped http.Handler to mount on a listen socket.
func (s *Server) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(http.HandlerFunc(s.serveHTTP))
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req Request
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		s.writeResponse(w, Response{
			JSONRPC: "2.0",
			Error:   &Error{Code: InvalidJSON, Message: "Parse error"},
		})
		return
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		s.writeResponse(w, Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &Error{Code: InvalidRequest, Message: "Invalid Request"},
		})
		return
	}

	resp := s.dispatcher.Call(r.Context(), req)
	if resp.Error != nil {
		s.log.Debug("rpc call failed",
			zap.String("method", req.Method),
			zap.Int("code", resp.Error.Code),
			zap.String("message", resp.Error.Message))
	}
	s.writeResponse(w, resp)
}

func (s *Server) writeResponse(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("failed to encode rpc response", zap.Error(err))
	}
}
