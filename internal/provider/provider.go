// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider adapts the public academic APIs (DBLP, ArXiv, OpenAlex,
// OpenLibrary) to the normalized publication record. Each adapter owns its
// provider's wire format and defaulting policy; FetchFrom isolates one
// adapter's failure from the rest of a search.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/vidvaan/pkg/types"
)

// Provider queries one academic API for a topic.
type Provider interface {
	Repository() types.Repository
	Fetch(ctx context.Context, topic string) ([]types.Publication, error)
}

// FetchError reports a network failure or a non-success status from a provider.
type FetchError struct {
	Repository types.Repository
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d", e.Repository, e.StatusCode)
	}
	return fmt.Sprintf("%s: request failed: %v", e.Repository, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a payload that could not be decoded.
type ParseError struct {
	Repository types.Repository
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parsing response: %v", e.Repository, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FetchFrom runs p.Fetch and contains any failure, panics included. On
// failure it logs a warning and returns no records together with the
// error, so the caller can report it without aborting other providers.
func FetchFrom(ctx context.Context, p Provider, topic string, logger zerolog.Logger) (records []types.Publication, err error) {
	repo := p.Repository()
	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = fmt.Errorf("%s: adapter panic: %v", repo, r)
			logger.Warn().Str("repository", string(repo)).Err(err).Msg("provider failed")
		}
	}()

	records, err = p.Fetch(ctx, topic)
	if err != nil {
		logger.Warn().Str("repository", string(repo)).Err(err).Msg("provider failed")
		return nil, err
	}
	return records, nil
}

// Outcome is the result of mapping one native provider entry: either a
// record to keep or the reason the entry was skipped.
type Outcome struct {
	Record  types.Publication
	Skipped string
}

// Keep wraps a record built with types.NewPublication; a construction
// error turns into a skip.
func Keep(p types.Publication, err error) Outcome {
	if err != nil {
		return Skip(err.Error())
	}
	return Outcome{Record: p}
}

// Skip records why an entry was dropped.
func Skip(reason string) Outcome {
	if reason == "" {
		reason = "skipped"
	}
	return Outcome{Skipped: reason}
}

// OK reports whether the outcome carries a record.
func (o Outcome) OK() bool { return o.Skipped == "" }

// collect keeps the records of ok outcomes and logs the skipped count.
func collect(repo types.Repository, outcomes []Outcome, logger zerolog.Logger) []types.Publication {
	records := make([]types.Publication, 0, len(outcomes))
	skipped := 0
	for _, o := range outcomes {
		if !o.OK() {
			skipped++
			logger.Debug().Str("repository", string(repo)).Str("reason", o.Skipped).Msg("entry skipped")
			continue
		}
		records = append(records, o.Record)
	}
	if skipped > 0 {
		logger.Debug().Str("repository", string(repo)).Int("skipped", skipped).Int("kept", len(records)).Msg("entries dropped")
	}
	return records
}

// get issues a GET request and returns the body of a 2xx response. The
// caller closes the body.
func get(ctx context.Context, client *http.Client, repo types.Repository, reqURL, accept, userAgent string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &FetchError{Repository: repo, Err: fmt.Errorf("creating request: %w", err)}
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Repository: repo, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &FetchError{Repository: repo, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}

// joinNames trims and comma-joins non-empty names.
func joinNames(names []string) string {
	kept := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, ", ")
}

// collapseSpace replaces runs of whitespace, newlines included, with one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// synthesizedSummary describes a work from its metadata for providers that
// return no abstract.
func synthesizedSummary(noun string, title string, authors string, year types.Year) string {
	when := year.String()
	if !year.Known() {
		when = "an unknown year"
	}
	if authors == "" {
		authors = types.UnknownAuthors
	}
	return fmt.Sprintf("This %s titled %q was authored by %s and published in %s.", noun, collapseSpace(title), authors, when)
}

// IsFetchError reports whether err is a provider network or status failure.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// IsParseError reports whether err is a provider payload failure.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
