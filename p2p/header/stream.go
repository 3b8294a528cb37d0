package header

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/core/protocol"
	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/archivenode/starknet-gateway/blockchain"
	"github.com/archivenode/starknet-gateway/core"
)

// ProtocolID is the libp2p protocol this package's stream handler answers.
const ProtocolID protocol.ID = "/starknet/headers/1.0.0-rc.0"

// maxMessageSize bounds a single length-prefixed frame, guarding the reader
// against a peer advertising an unreasonable length prefix.
const maxMessageSize = 1 << 20

// writeFrame writes msg as a varint length prefix followed by the message
// bytes, the length-delimited framing the spec's stream transport uses to
// multiplex distinct messages over one stream.
func writeFrame(w io.Writer, msg []byte) error {
	prefix := protowire.AppendVarint(nil, uint64(len(msg)))
	if _, err := w.Write(prefix); err != nil {
		return err
	}
	_, err := w.Write(msg)
	return err
}

// readFrame reads one length-prefixed frame from r.
func readFrame(r *bufio.Reader) ([]byte, error) {
	n, err := readVarint(r)
	if err != nil {
		return nil, err
	}
	if n > maxMessageSize {
		return nil, fmt.Errorf("header: frame of %d bytes exceeds maximum %d", n, maxMessageSize)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// readVarint decodes a protobuf varint one byte at a time, since protowire's
// ConsumeVarint operates on an already-buffered slice rather than a stream.
func readVarint(r *bufio.Reader) (uint64, error) {
	var buf []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		buf = append(buf, b)
		if b < 0x80 {
			break
		}
	}
	v, n := protowire.ConsumeVarint(buf)
	if n < 0 {
		return 0, errTruncated
	}
	return v, nil
}

// Server answers incoming BlockHeadersRequest streams against a local
// blockchain.Reader.
type Server struct {
	reader blockchain.Reader
	log    *zap.Logger
}

// NewServer builds a Server backed by reader.
func NewServer(reader blockchain.Reader, log *zap.Logger) *Server {
	return &Server{reader: reader, log: log}
}

// Register attaches the Server's stream handler to h for ProtocolID.
func (s *Server) Register(h host.Host) {
	h.SetStreamHandler(ProtocolID, s.handleStream)
}

func (s *Server) handleStream(stream network.Stream) {
	defer stream.Close()

	br := bufio.NewReader(stream)
	raw, err := readFrame(br)
	if err != nil {
		s.log.Debug("header protocol: reading request frame", zap.Error(err))
		stream.Reset()
		return
	}

	req, err := DecodeBlockHeadersRequest(raw)
	if err != nil {
		s.log.Debug("header protocol: decoding request", zap.Error(err))
		stream.Reset()
		return
	}

	bw := bufio.NewWriter(stream)
	err = Walk(context.Background(), s.reader, *req, func(resp BlockHeadersResponse) error {
		encoded, err := EncodeBlockHeadersResponse(&resp)
		if err != nil {
			return err
		}
		return writeFrame(bw, encoded)
	})
	if err != nil {
		s.log.Debug("header protocol: answering request", zap.Error(err))
		stream.Reset()
		return
	}
	if err := bw.Flush(); err != nil {
		s.log.Debug("header protocol: flushing response stream", zap.Error(err))
	}
}

// RequestHeaders opens a new stream to peer over h, sends req, and calls
// onHeader for each decoded header in the response stream until Fin is
// received. onHeader is not called for the terminal Fin message itself.
func RequestHeaders(ctx context.Context, h host.Host, peer peer.ID, req BlockHeadersRequest, onHeader func(*core.SignedBlockHeader) error) error {
	stream, err := h.NewStream(ctx, peer, ProtocolID)
	if err != nil {
		return fmt.Errorf("header: opening stream to %s: %w", peer, err)
	}
	defer stream.Close()

	if err := writeFrame(stream, EncodeBlockHeadersRequest(&req)); err != nil {
		return fmt.Errorf("header: sending request: %w", err)
	}

	br := bufio.NewReader(stream)
	for {
		raw, err := readFrame(br)
		if err != nil {
			return fmt.Errorf("header: reading response frame: %w", err)
		}
		resp, err := DecodeBlockHeadersResponse(raw)
		if err != nil {
			return fmt.Errorf("header: decoding response: %w", err)
		}
		if resp.IsFin {
			return nil
		}
		if err := onHeader(resp.Header); err != nil {
			return err
		}
	}
}
