// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summary calls the AI summary service, which condenses a list of
// publication titles into a short overview.
package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/vidvaan/internal/httputil"
	"github.com/pdiddy/vidvaan/internal/observability"
	"github.com/pdiddy/vidvaan/pkg/types"
)

// Path is the service endpoint below the configured server base.
const Path = "/summarise"

// ErrNothingToSummarize is returned for an empty title list.
var ErrNothingToSummarize = errors.New("no titles to summarize")

// ServiceError reports a failed summary request: a network failure, a
// non-success status, or a response without a summary.
type ServiceError struct {
	StatusCode int

	// Message is the service's own error text, when it sent one.
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	var b strings.Builder
	b.WriteString("summary service")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": HTTP %d", e.StatusCode)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ServiceError) Unwrap() error { return e.Err }

type request struct {
	Summaries []string `json:"summaries"`
}

type response struct {
	Summary string `json:"summary"`
	Error   string `json:"error"`
}

// Client talks to the summary service.
type Client struct {
	HTTP    *http.Client
	Config  types.SummaryConfig
	Metrics *observability.Metrics
	Logger  zerolog.Logger
}

// NewClient returns a Client for cfg using httputil.NewClient.
func NewClient(cfg types.SummaryConfig, metrics *observability.Metrics, logger zerolog.Logger) *Client {
	return &Client{
		HTTP:    httputil.NewClient(cfg.HTTPConfig),
		Config:  cfg,
		Metrics: metrics,
		Logger:  logger,
	}
}

// Summarize sends titles to the service and returns its summary. Blank
// titles are dropped first; if none remain, ErrNothingToSummarize is
// returned without a request.
func (c *Client) Summarize(ctx context.Context, titles []string) (string, error) {
	kept := make([]string, 0, len(titles))
	for _, t := range titles {
		if t = strings.TrimSpace(t); t != "" {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return "", ErrNothingToSummarize
	}

	summary, err := c.post(ctx, kept)
	c.Metrics.ObserveSummary(err)
	if err != nil {
		c.Logger.Warn().Err(err).Int("titles", len(kept)).Msg("summary request failed")
		return "", err
	}
	c.Logger.Debug().Int("titles", len(kept)).Int("length", len(summary)).Msg("summary received")
	return summary, nil
}

func (c *Client) post(ctx context.Context, titles []string) (string, error) {
	body, err := json.Marshal(request{Summaries: titles})
	if err != nil {
		return "", fmt.Errorf("encoding summary request: %w", err)
	}

	endpoint := strings.TrimRight(c.Config.ServerBase, "/") + Path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &ServiceError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Config.UserAgent != "" {
		req.Header.Set("User-Agent", c.Config.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.Config.MaxRetries, c.Logger)
	if err != nil {
		return "", &ServiceError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &ServiceError{StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	var sr response
	decodeErr := json.Unmarshal(data, &sr)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ServiceError{StatusCode: resp.StatusCode, Message: sr.Error}
	}
	if decodeErr != nil {
		return "", &ServiceError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", decodeErr)}
	}
	if strings.TrimSpace(sr.Summary) == "" {
		return "", &ServiceError{StatusCode: resp.StatusCode, Message: "response has no summary"}
	}
	return strings.TrimSpace(sr.Summary), nil
}
