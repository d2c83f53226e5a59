// Package service provides enricher implementations
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"prospector/internal/services/enrich/domain"
)

// ErrUnavailable marks transient enrichment failures; callers skip the
// insight and keep the heuristic features
var ErrUnavailable = errors.New("enrichment service unavailable")

// Config for the HTTP enricher client
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client calls an external text-understanding service over HTTP
type Client struct {
	cfg   Config
	httpc *http.Client
}

// NewClient constructs an HTTP enricher
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Client{
		cfg:   cfg,
		httpc: &http.Client{Timeout: cfg.Timeout},
	}
}

type enrichRequest struct {
	Text string `json:"text"`
}

// Enrich implements domain.EnricherPort
func (c *Client) Enrich(ctx context.Context, text string) (domain.Insight, error) {
	body, err := json.Marshal(enrichRequest{Text: text})
	if err != nil {
		return domain.Insight{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.cfg.BaseURL+"/v1/enrich", bytes.NewReader(body))
	if err != nil {
		return domain.Insight{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return domain.Insight{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return domain.Insight{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	default:
		return domain.Insight{}, fmt.Errorf("enrich: unexpected status %d", resp.StatusCode)
	}

	var in domain.Insight
	if err := json.NewDecoder(resp.Body).Decode(&in); err != nil {
		return domain.Insight{}, fmt.Errorf("enrich: decode response: %w", err)
	}
	return in, nil
}
