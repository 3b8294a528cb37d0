// Package node wires the storage, sequencer, RPC, and P2P header-protocol
// components into one running process, the way the teacher's own node
// package assembles its services from independently testable pieces.
package node

import (
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/archivenode/starknet-gateway/sequencer"
)

// Config is the full set of knobs a gateway process needs, loaded from a
// YAML/TOML/env file by viper and validated with go-playground/validator
// before any component is constructed.
type Config struct {
	// DBPath is the directory the Pebble store opens.
	DBPath string `mapstructure:"db-path" validate:"required"`

	// HTTPPort serves the JSON-RPC dispatcher over HTTP POST.
	HTTPPort uint16 `mapstructure:"http-port" validate:"required"`

	// WSPort serves the same dispatcher over a WebSocket connection.
	WSPort uint16 `mapstructure:"ws-port" validate:"required"`

	// SequencerURL is the feeder-gateway base URL the sequencer client
	// forwards starknet_call and chain-head lookups to.
	SequencerURL string `mapstructure:"sequencer-url" validate:"required,url"`

	// SequencerTimeout bounds a single sequencer HTTP round trip.
	SequencerTimeout time.Duration `mapstructure:"sequencer-timeout" validate:"required"`

	// SequencerMaxRetries and SequencerRetryBaseDelay configure the
	// sequencer client's own 429 backoff, overriding
	// sequencer.DefaultRetryPolicy when set.
	SequencerMaxRetries     int           `mapstructure:"sequencer-max-retries" validate:"gte=0"`
	SequencerRetryBaseDelay time.Duration `mapstructure:"sequencer-retry-base-delay" validate:"required"`

	// ChainID is the chain name, e.g. "SN_MAIN"; its ASCII bytes, read as a
	// big-endian felt, are what this node reports for starknet_chainId.
	ChainID string `mapstructure:"chain-id" validate:"required"`

	// ProtocolVersion is the semver string reported by
	// starknet_protocolVersion, parsed with Masterminds/semver at load time
	// so a malformed config fails fast instead of at query time.
	ProtocolVersion string `mapstructure:"protocol-version" validate:"required"`

	// P2PListenAddr is the multiaddr the libp2p host listens on for the
	// header-protocol stream handler.
	P2PListenAddr string `mapstructure:"p2p-listen-addr" validate:"required"`
}

// Load reads configuration from environment variables prefixed
// STARKNET_GATEWAY_, the file at path (if non-empty), and built-in defaults,
// in that precedence order (viper's own), then validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("starknet_gateway")
	v.AutomaticEnv()

	v.SetDefault("http-port", 6060)
	v.SetDefault("ws-port", 6061)
	v.SetDefault("sequencer-timeout", 30*time.Second)
	v.SetDefault("sequencer-max-retries", sequencer.DefaultRetryPolicy.MaxRetries)
	v.SetDefault("sequencer-retry-base-delay", sequencer.DefaultRetryPolicy.BaseDelay)
	v.SetDefault("protocol-version", "0.13.1")
	v.SetDefault("p2p-listen-addr", "/ip4/0.0.0.0/tcp/10000")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("node: reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("node: decoding config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("node: invalid config: %w", err)
	}
	if _, err := semver.NewVersion(cfg.ProtocolVersion); err != nil {
		return nil, fmt.Errorf("node: invalid protocol-version %q: %w", cfg.ProtocolVersion, err)
	}
	return &cfg, nil
}

// retryPolicy builds the sequencer client's backoff policy from the loaded
// config, so an operator can override sequencer.DefaultRetryPolicy without
// a code change.
func (c *Config) retryPolicy() sequencer.RetryPolicy {
	return sequencer.RetryPolicy{
		MaxRetries: c.SequencerMaxRetries,
		BaseDelay:  c.SequencerRetryBaseDelay,
	}
}
