package node

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/libp2p/go-libp2p"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/multiformats/go-multiaddr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/archivenode/starknet-gateway/blockchain"
	"github.com/archivenode/starknet-gateway/core/felt"
	"github.com/archivenode/starknet-gateway/jsonrpc"
	headerp2p "github.com/archivenode/starknet-gateway/p2p/header"
	"github.com/archivenode/starknet-gateway/rpc"
	"github.com/archivenode/starknet-gateway/sequencer"
)

// dispatchDuration tracks dispatcher latency per Starknet method, the one
// metric this node exports — every other concern (errors, translation) is
// already visible in the structured logs.
var dispatchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "starknet_gateway",
	Name:      "rpc_dispatch_seconds",
	Help:      "Latency of a single JSON-RPC dispatch, by method.",
}, []string{"method"})

func init() {
	prometheus.MustRegister(dispatchDuration)
}

// Node owns every long-running service this process runs: the HTTP and
// WebSocket JSON-RPC listeners, and the libp2p header-protocol stream
// handler. Run blocks until ctx is cancelled, then shuts every listener
// down. Listener failures are logged, not returned; Run returns an error
// only when gossip setup fails, and nil after shutdown.
type Node struct {
	cfg    *Config
	log    *zap.Logger
	store  *blockchain.Store
	seqCli *sequencer.Client
	host   host.Host
}

// New opens the storage engine, builds the sequencer client and libp2p
// host, and returns an assembled, not-yet-running Node.
func New(cfg *Config, log *zap.Logger) (*Node, error) {
	store, err := blockchain.OpenStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("node: opening storage: %w", err)
	}

	seqCli, err := sequencer.New(cfg.SequencerURL, cfg.SequencerTimeout, cfg.retryPolicy(), log)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("node: building sequencer client: %w", err)
	}

	addr, err := multiaddr.NewMultiaddr(cfg.P2PListenAddr)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("node: invalid p2p listen address: %w", err)
	}
	h, err := libp2p.New(libp2p.ListenAddrs(addr))
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("node: building libp2p host: %w", err)
	}

	return &Node{cfg: cfg, log: log, store: store, seqCli: seqCli, host: h}, nil
}

// Run starts every listener and blocks until ctx is cancelled.
func (n *Node) Run(ctx context.Context) error {
	defer n.store.Close()
	defer n.host.Close()

	chainID := new(felt.Felt).SetBytes([]byte(n.cfg.ChainID))
	handler := rpc.New(n.store, n.seqCli, chainID, n.cfg.ProtocolVersion, n.log)

	dispatcher := jsonrpc.NewDispatcher()
	rpc.Register(dispatcher, handler)
	dispatcher.OnDispatch = func(method string, d time.Duration) {
		dispatchDuration.WithLabelValues(method).Observe(d.Seconds())
	}

	headerServer := headerp2p.NewServer(n.store, n.log)
	headerServer.Register(n.host)

	ps, err := pubsub.NewGossipSub(ctx, n.host)
	if err != nil {
		return fmt.Errorf("node: starting gossipsub: %w", err)
	}
	gossip, err := headerp2p.JoinGossip(ps)
	if err != nil {
		return fmt.Errorf("node: joining header gossip topic: %w", err)
	}
	defer gossip.Close()
	go n.relayGossip(ctx, gossip)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", n.cfg.HTTPPort),
		Handler: jsonrpc.NewServer(dispatcher, n.log).Handler(),
	}
	wsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", n.cfg.WSPort),
		Handler: newWebSocketHandler(dispatcher, n.log),
	}
	metricsServer := &http.Server{
		Addr:    ":9090",
		Handler: promhttp.Handler(),
	}

	var wg conc.WaitGroup
	servers := []*http.Server{httpServer, wsServer, metricsServer}
	for _, s := range servers {
		s := s
		wg.Go(func() {
			n.log.Info("listening", zap.String("addr", s.Addr))
			if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				n.log.Error("listener failed", zap.String("addr", s.Addr), zap.Error(err))
			}
		})
	}

	<-ctx.Done()
	n.log.Info("shutting down")
	for _, s := range servers {
		if err := s.Shutdown(context.Background()); err != nil {
			n.log.Error("error shutting down listener", zap.String("addr", s.Addr), zap.Error(err))
		}
	}
	wg.Wait()
	return nil
}

// relayGossip logs each incoming NewBlock announcement from a peer. A full
// node would use this to eagerly prefetch headers for the light (ID-only)
// variant; that prefetch loop is out of scope here, so this only observes
// the gossip stream.
func (n *Node) relayGossip(ctx context.Context, gossip *headerp2p.Gossip) {
	self := n.host.ID().String()
	for {
		announce, err := gossip.Next(ctx, self)
		if err != nil {
			return
		}
		switch {
		case announce.ID != nil:
			n.log.Debug("received block announcement", zap.Uint64("number", announce.ID.Number))
		case announce.Header != nil && announce.Header.Header != nil:
			n.log.Debug("received eager block announcement", zap.Uint64("number", announce.Header.Header.Number))
		}
	}
}
