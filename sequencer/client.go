package sequencer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/archivenode/starknet-gateway/core"
	"github.com/archivenode/starknet-gateway/core/felt"
)

// RetryPolicy configures the sequencer client's own backoff behaviour.
// Per the design notes, retry policy belongs here, on the client, not
// inside the RPC dispatcher — the dispatcher never retries anything.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// DefaultRetryPolicy backs off with simple doubling, making at most
// MaxRetries retries after the first attempt.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 5, BaseDelay: 500 * time.Millisecond}

// FunctionCall is a contract call request forwarded verbatim to the
// sequencer's call_contract endpoint.
type FunctionCall struct {
	ContractAddress    *felt.Felt
	EntryPointSelector *felt.Felt
	Calldata           []*felt.Felt
}

// Client is the HTTP oracle the spec treats as an external collaborator: it
// returns either a parsed reply or a typed *StarknetError. Every method
// below is a plain idempotent GET/POST with a configurable timeout; no
// method mutates client state.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	retry   RetryPolicy
	log     *zap.Logger
}

func New(baseURL string, timeout time.Duration, retry RetryPolicy, log *zap.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "sequencer: invalid base URL")
	}
	return &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		retry:   retry,
		log:     log,
	}, nil
}

// blockIDQuery renders a core.BlockID the way the feeder gateway expects it
// as query parameters: blockHash, blockNumber, or the literal "latest"/
// "pending" tag.
func blockIDQuery(q url.Values, id core.BlockID) {
	switch {
	case id.Latest:
		q.Set("blockNumber", "latest")
	case id.Pending:
		q.Set("blockNumber", "pending")
	case id.Hash != nil:
		q.Set("blockHash", id.Hash.String())
	default:
		q.Set("blockNumber", fmt.Sprintf("%d", id.Number))
	}
}

// Call forwards starknet_call to the sequencer's call_contract endpoint and
// returns the result felts, or a translatable error.
func (c *Client) Call(ctx context.Context, call FunctionCall, id core.BlockID) ([]*felt.Felt, error) {
	q := url.Values{}
	blockIDQuery(q, id)

	body := struct {
		ContractAddress    string   `json:"contract_address"`
		EntryPointSelector string   `json:"entry_point_selector"`
		Calldata           []string `json:"calldata"`
	}{
		ContractAddress:    call.ContractAddress.String(),
		EntryPointSelector: call.EntryPointSelector.String(),
	}
	for _, cd := range call.Calldata {
		body.Calldata = append(body.Calldata, cd.String())
	}

	var result struct {
		Result []string `json:"result"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "gateway/call_contract", q, body, &result); err != nil {
		return nil, err
	}

	out := make([]*felt.Felt, len(result.Result))
	for i, s := range result.Result {
		f := new(felt.Felt)
		if _, err := f.SetString(s); err != nil {
			return nil, &DeserializationError{Cause: err}
		}
		out[i] = f
	}
	return out, nil
}

// ChainHead returns the sequencer's view of the current chain head, used by
// starknet_syncing to compute the local-vs-remote progress gap.
func (c *Client) ChainHead(ctx context.Context) (*core.Block, error) {
	var reply struct {
		BlockHash   string `json:"block_hash"`
		BlockNumber uint64 `json:"block_number"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "feeder_gateway/get_block", url.Values{"blockNumber": {"latest"}}, nil, &reply); err != nil {
		return nil, err
	}
	hash := new(felt.Felt)
	if _, err := hash.SetString(reply.BlockHash); err != nil {
		return nil, &DeserializationError{Cause: err}
	}
	return &core.Block{Hash: hash, Number: reply.BlockNumber}, nil
}

// doJSON performs one HTTP round trip, retrying per RetryPolicy on 429 and
// on request failures (no response received), and
// classifies the outcome into the §4.1 taxonomy: TransportError for
// socket/status failures, ParseError for a non-JSON body, DeserializationError
// for a JSON body that doesn't match the expected shape, or *StarknetError
// for a parsed application-level failure.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, reqBody, out any) error {
	u := *c.baseURL
	u.Path = u.Path + "/" + path
	u.RawQuery = query.Encode()

	var lastErr error
	delay := c.retry.BaseDelay
	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return &TransportError{Cause: ctx.Err()}
			case <-time.After(delay):
			}
			delay *= 2
		}

		status, body, err := c.roundTrip(ctx, method, u.String(), reqBody)
		if err != nil {
			lastErr = &TransportError{Cause: err}
			continue
		}
		if status == http.StatusTooManyRequests {
			lastErr = &TransportError{Cause: fmt.Errorf("sequencer rate limited (429)")}
			c.log.Warn("sequencer rate limited, retrying", zap.Int("attempt", attempt))
			continue
		}
		if status >= 500 {
			return &TransportError{Cause: fmt.Errorf("sequencer returned status %d", status)}
		}

		return c.classifyBody(status, body, out)
	}
	return lastErr
}

func (c *Client) roundTrip(ctx context.Context, method, url string, reqBody any) (int, []byte, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return 0, nil, err
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

// classifyBody distinguishes a Starknet application error from a successful
// reply, and a non-JSON reply (HTML error pages from a misbehaving proxy)
// from a JSON reply that merely fails to match the expected schema.
func (c *Client) classifyBody(status int, body []byte, out any) error {
	if status >= 400 {
		var starknetErr StarknetError
		if err := json.Unmarshal(body, &starknetErr); err != nil {
			return &ParseError{Cause: fmt.Errorf("non-JSON error reply (status %d): %w", status, err)}
		}
		if starknetErr.Code == "" {
			return &ParseError{Cause: fmt.Errorf("unrecognized error reply (status %d)", status)}
		}
		return &starknetErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DeserializationError{Cause: err}
	}
	return nil
}
