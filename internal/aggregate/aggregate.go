// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate fans a topic out to every configured provider and
// merges what comes back into one dataset. Providers run concurrently;
// their results reach a single consumer over a channel, which publishes a
// fresh snapshot after each provider completes.
package aggregate

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/vidvaan/internal/observability"
	"github.com/pdiddy/vidvaan/internal/provider"
	"github.com/pdiddy/vidvaan/pkg/types"
)

// MinTopicLength is the shortest trimmed topic that starts a search.
const MinTopicLength = 2

// DefaultProviderTimeout bounds one provider call when none is configured.
const DefaultProviderTimeout = 30 * time.Second

var (
	// ErrEmptyTopic is returned for a blank topic.
	ErrEmptyTopic = errors.New("topic is empty")

	// ErrTopicTooShort is returned for a topic shorter than MinTopicLength.
	ErrTopicTooShort = errors.New("topic must be at least 2 characters")
)

// Update is published after each provider settles.
type Update struct {
	SearchID   string
	Repository types.Repository

	// Added is the number of records this provider contributed.
	Added int

	// Snapshot is the accumulated dataset so far. Each update carries its
	// own slice, so a callback may retain it.
	Snapshot types.Dataset

	// Done and Total count settled and launched providers.
	Done  int
	Total int

	// Err is the provider failure, if any. It never aborts the search.
	Err error
}

// ProviderReport describes how one provider call went.
type ProviderReport struct {
	Repository types.Repository
	Count      int
	Err        error
	Duration   time.Duration
}

// Result is the outcome of a completed search.
type Result struct {
	SearchID string
	Topic    string
	Dataset  types.Dataset
	Reports  []ProviderReport
}

// Failed returns the reports of providers that returned an error.
func (r Result) Failed() []ProviderReport {
	var failed []ProviderReport
	for _, rep := range r.Reports {
		if rep.Err != nil {
			failed = append(failed, rep)
		}
	}
	return failed
}

// Aggregator runs searches across a fixed set of providers.
type Aggregator struct {
	Providers       []provider.Provider
	ProviderTimeout time.Duration
	Metrics         *observability.Metrics
	Logger          zerolog.Logger
}

// New returns an Aggregator over providers. A nil metrics disables
// instrumentation.
func New(providers []provider.Provider, timeout time.Duration, metrics *observability.Metrics, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		Providers:       providers,
		ProviderTimeout: timeout,
		Metrics:         metrics,
		Logger:          logger,
	}
}

// ValidateTopic trims topic and checks it is long enough to search.
func ValidateTopic(topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	switch {
	case topic == "":
		return "", ErrEmptyTopic
	case len([]rune(topic)) < MinTopicLength:
		return "", ErrTopicTooShort
	}
	return topic, nil
}

type fetched struct {
	repo     types.Repository
	records  []types.Publication
	err      error
	duration time.Duration
}

// Search queries every provider for topic. onUpdate, when non-nil, is
// called from the calling goroutine once per provider in completion
// order. Provider failures are reported in Result.Reports and never fail
// the search; only an invalid topic returns an error.
func (a *Aggregator) Search(ctx context.Context, topic string, onUpdate func(Update)) (Result, error) {
	topic, err := ValidateTopic(topic)
	if err != nil {
		return Result{}, err
	}

	searchID := uuid.NewString()
	logger := observability.WithSearch(a.Logger, searchID, topic)
	if a.Metrics != nil {
		a.Metrics.Searches.Inc()
	}

	timeout := a.ProviderTimeout
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}

	total := len(a.Providers)
	logger.Info().Int("providers", total).Msg("search started")

	ch := make(chan fetched, total)
	var g errgroup.Group
	for _, p := range a.Providers {
		g.Go(func() error {
			pctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			start := time.Now()
			records, err := provider.FetchFrom(pctx, p, topic, logger)
			d := time.Since(start)
			a.Metrics.ObserveFetch(p.Repository(), len(records), d, err)
			ch <- fetched{repo: p.Repository(), records: records, err: err, duration: d}
			return nil
		})
	}
	go func() {
		g.Wait()
		close(ch)
	}()

	var acc types.Dataset
	reports := make([]ProviderReport, 0, total)
	done := 0
	for f := range ch {
		done++
		acc = append(acc, f.records...)
		reports = append(reports, ProviderReport{
			Repository: f.repo,
			Count:      len(f.records),
			Err:        f.err,
			Duration:   f.duration,
		})
		logger.Debug().
			Str("repository", string(f.repo)).
			Int("added", len(f.records)).
			Dur("duration", f.duration).
			Msg("provider settled")

		if onUpdate != nil {
			onUpdate(Update{
				SearchID:   searchID,
				Repository: f.repo,
				Added:      len(f.records),
				Snapshot:   acc.Clone(),
				Done:       done,
				Total:      total,
				Err:        f.err,
			})
		}
	}

	logger.Info().Int("records", len(acc)).Int("failed", countFailed(reports)).Msg("search complete")

	return Result{
		SearchID: searchID,
		Topic:    topic,
		Dataset:  acc,
		Reports:  reports,
	}, nil
}

func countFailed(reports []ProviderReport) int {
	n := 0
	for _, r := range reports {
		if r.Err != nil {
			n++
		}
	}
	return n
}
