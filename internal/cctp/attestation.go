package cctp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stablekit/usdcli/internal/chain"
)

// Circle's attestation (Iris) API hosts.
const (
	mainnetAttestationAPI = "https://iris-api.circle.com/attestations"
	testnetAttestationAPI = "https://iris-api-sandbox.circle.com/attestations"
)

// Attestation statuses reported by the API.
const (
	StatusComplete = "complete"
	StatusPending  = "pending_confirmations"
)

// ErrAttestationTimeout is returned when the polling budget is exhausted
// before the attestation service reports completion.
var ErrAttestationTimeout = errors.New("attestation not available within polling budget")

// Attestation is the service's response for one message hash.
type Attestation struct {
	Status      string `json:"status"`
	Attestation string `json:"attestation"`
}

// AttestationClient polls Circle's attestation service.
type AttestationClient struct {
	baseURL string
	client  *http.Client
}

// NewAttestationClient returns a client for the given network mode.
func NewAttestationClient(mode string) *AttestationClient {
	url := mainnetAttestationAPI
	if mode == chain.ModeTestnet {
		url = testnetAttestationAPI
	}
	return NewAttestationClientURL(url)
}

// NewAttestationClientURL returns a client against an explicit base URL.
func NewAttestationClientURL(baseURL string) *AttestationClient {
	return &AttestationClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Get fetches the current attestation state for a message hash.
func (c *AttestationClient) Get(ctx context.Context, messageHash string) (*Attestation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+messageHash, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("attestation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading attestation response: %w", err)
	}

	// 404 simply means the service has not seen the message yet.
	if resp.StatusCode == http.StatusNotFound {
		return &Attestation{Status: StatusPending}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("attestation service returned %d: %s", resp.StatusCode, string(body))
	}

	var att Attestation
	if err := json.Unmarshal(body, &att); err != nil {
		return nil, fmt.Errorf("parsing attestation response: %w", err)
	}
	return &att, nil
}

// PollConfig bounds the attestation wait loop.
type PollConfig struct {
	MaxAttempts   int
	Interval      time.Duration // sleep after a pending response
	ErrorInterval time.Duration // shorter sleep after an API error
}

// DefaultPollConfig mirrors the parameters CCTP transfers typically need:
// attestations land within a few minutes of the burn confirming.
func DefaultPollConfig() PollConfig {
	return PollConfig{
		MaxAttempts:   30,
		Interval:      10 * time.Second,
		ErrorInterval: 5 * time.Second,
	}
}

// Wait polls until the attestation is complete or the attempt budget is
// exhausted, in which case it returns ErrAttestationTimeout. API errors are
// tolerated and retried; only context cancellation aborts early. progress,
// if non-nil, is invoked after each unsuccessful attempt.
func (c *AttestationClient) Wait(ctx context.Context, messageHash string, cfg PollConfig, progress func(attempt, max int)) (*Attestation, error) {
	if cfg.MaxAttempts <= 0 {
		cfg = DefaultPollConfig()
	}

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		att, err := c.Get(ctx, messageHash)
		if err == nil && att.Status == StatusComplete {
			return att, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if progress != nil {
			progress(attempt, cfg.MaxAttempts)
		}

		sleep := cfg.Interval
		if err != nil {
			sleep = cfg.ErrorInterval
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(sleep):
		}
	}

	return nil, ErrAttestationTimeout
}
