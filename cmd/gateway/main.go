// Command gateway runs the Starknet RPC gateway: a JSON-RPC dispatcher over
// HTTP and WebSocket, backed by local storage and a sequencer client, plus
// a libp2p stream handler answering header-protocol requests from peers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	_ "go.uber.org/automaxprocs"

	"github.com/archivenode/starknet-gateway/node"
)

var configPath string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gateway",
		Short: "Run the Starknet RPC gateway",
		RunE:  run,
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a gateway config file")
	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("gateway: building logger: %w", err)
	}
	defer log.Sync()

	cfg, err := node.Load(configPath)
	if err != nil {
		return err
	}

	n, err := node.New(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return n.Run(ctx)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
