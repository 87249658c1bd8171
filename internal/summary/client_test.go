// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/vidvaan/internal/httputil"
	"github.com/pdiddy/vidvaan/internal/observability"
	"github.com/pdiddy/vidvaan/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

func newTestClient(ts *httptest.Server, m *observability.Metrics) *Client {
	return &Client{
		HTTP:    ts.Client(),
		Config:  types.SummaryConfig{ServerBase: ts.URL + "/", MaxRetries: 2},
		Metrics: m,
		Logger:  zerolog.Nop(),
	}
}

func TestSummarize(t *testing.T) {
	var got request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, Path, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"summary": "  These works study graphs.  "}`))
	}))
	defer ts.Close()

	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	c := newTestClient(ts, m)

	summary, err := c.Summarize(context.Background(), []string{"Graph A", "  ", "Graph B"})
	require.NoError(t, err)
	assert.Equal(t, "These works study graphs.", summary)
	assert.Equal(t, []string{"Graph A", "Graph B"}, got.Summaries)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SummaryRequests.WithLabelValues(observability.OutcomeOK)))
}

func TestSummarizeNothing(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer ts.Close()

	_, err := newTestClient(ts, nil).Summarize(context.Background(), []string{" ", ""})
	assert.ErrorIs(t, err, ErrNothingToSummarize)
	assert.Zero(t, calls.Load())
}

func TestSummarizeServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantText   string
	}{
		{"server error with message", http.StatusInternalServerError, `{"error":"model unavailable"}`, 500, "model unavailable"},
		{"bad request", http.StatusBadRequest, `{"error":"Missing 'summaries' in request body"}`, 400, "Missing"},
		{"empty summary", http.StatusOK, `{"summary":""}`, 200, "no summary"},
		{"not json", http.StatusOK, `<html>`, 200, "decoding response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			_, err := newTestClient(ts, nil).Summarize(context.Background(), []string{"T"})
			var se *ServiceError
			require.True(t, errors.As(err, &se), "got %v", err)
			assert.Equal(t, tt.wantStatus, se.StatusCode)
			assert.Contains(t, se.Error(), tt.wantText)
		})
	}
}

func TestSummarizeNetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	c := newTestClient(ts, nil)
	ts.Close()

	_, err := c.Summarize(context.Background(), []string{"T"})
	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Zero(t, se.StatusCode)
	assert.NotNil(t, se.Unwrap())
}

func TestSummarizeRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"summary":"ok"}`))
	}))
	defer ts.Close()

	summary, err := newTestClient(ts, nil).Summarize(context.Background(), []string{"T"})
	require.NoError(t, err)
	assert.Equal(t, "ok", summary)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSummarizeDoesNotRetryServerErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := newTestClient(ts, nil).Summarize(context.Background(), []string{"T"})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
