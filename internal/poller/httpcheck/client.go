// internal/poller/httpcheck/client.go
package httpcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tamzrod/statusboard/internal/status"
)

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

// ErrNotObject is returned when the body is valid JSON but not an object.
var ErrNotObject = errors.New("healthcheck: body is not a JSON object")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("healthcheck: unexpected status %d %s", e.Code, http.StatusText(e.Code))
}

// Config is minimal transport config.
type Config struct {
	Endpoint string
	Timeout  time.Duration

	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Client implements poller.Client over one HTTP GET.
type Client struct {
	endpoint string
	http     *http.Client
}

// New creates a health-check client. It does not touch the network.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("healthcheck: endpoint required")
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		hc = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				MaxIdleConnsPerHost:   2,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: timeout,
			},
		}
	}

	return &Client{endpoint: cfg.Endpoint, http: hc}, nil
}

// Fetch issues one GET and decodes the snapshot.
// Network errors, non-2xx and malformed bodies are all errors.
func (c *Client) Fetch(ctx context.Context) (status.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return status.Snapshot{}, fmt.Errorf("healthcheck: build request: %w", err)
	}
	// The service expects Content-Type even on GET.
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return status.Snapshot{}, fmt.Errorf("healthcheck: get %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return status.Snapshot{}, &StatusError{Code: resp.StatusCode}
	}

	var body json.RawMessage
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&body); err != nil {
		return status.Snapshot{}, fmt.Errorf("healthcheck: decode body: %w", err)
	}
	// Field types are decoded leniently; the body itself must be an object.
	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || trimmed[0] != '{' {
		return status.Snapshot{}, ErrNotObject
	}

	var snap status.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return status.Snapshot{}, fmt.Errorf("healthcheck: decode body: %w", err)
	}

	return snap, nil
}
