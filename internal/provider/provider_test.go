// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/vidvaan/pkg/types"
)

// --- helpers shared by the adapter tests ---

func testCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "test/0.1",
		},
	}
}

// serve starts an httptest server answering every request with status and
// body, and points *base at it for the duration of the test.
func serve(t *testing.T, base *string, status int, contentType, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	orig := *base
	*base = ts.URL
	t.Cleanup(func() {
		*base = orig
		ts.Close()
	})
	return ts
}

// --- stub provider for FetchFrom ---

type stubProvider struct {
	repo    types.Repository
	records []types.Publication
	err     error
	panics  bool
}

func (s *stubProvider) Repository() types.Repository { return s.repo }

func (s *stubProvider) Fetch(_ context.Context, _ string) ([]types.Publication, error) {
	if s.panics {
		panic("boom")
	}
	return s.records, s.err
}

func TestFetchFromSuccess(t *testing.T) {
	p := &stubProvider{repo: types.RepoDBLP, records: []types.Publication{{Title: "A", Repository: types.RepoDBLP}}}
	records, err := FetchFrom(context.Background(), p, "topic", zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestFetchFromContainsErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	p := &stubProvider{
		repo:    types.RepoArXiv,
		records: []types.Publication{{Title: "partial"}},
		err:     &FetchError{Repository: types.RepoArXiv, Err: errors.New("connection refused")},
	}
	records, err := FetchFrom(context.Background(), p, "topic", logger)
	assert.Error(t, err)
	assert.Empty(t, records, "failed providers contribute no records")
	assert.True(t, IsFetchError(err))
	assert.Contains(t, buf.String(), `"repository":"ArXiv"`)
	assert.Contains(t, buf.String(), "provider failed")
}

func TestFetchFromRecoversPanic(t *testing.T) {
	p := &stubProvider{repo: types.RepoOpenAlex, panics: true}
	records, err := FetchFrom(context.Background(), p, "topic", zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic")
	assert.Nil(t, records)
}

func TestOutcome(t *testing.T) {
	ok := Keep(types.NewPublication(types.RepoDBLP, "Title", types.Year{}, "A", "", ""))
	assert.True(t, ok.OK())
	assert.Equal(t, "Title", ok.Record.Title)

	bad := Keep(types.NewPublication(types.RepoDBLP, "", types.Year{}, "A", "", ""))
	assert.False(t, bad.OK())
	assert.NotEmpty(t, bad.Skipped)

	assert.False(t, Skip("").OK())
}

func TestErrorMessages(t *testing.T) {
	status := &FetchError{Repository: types.RepoDBLP, StatusCode: 503}
	assert.Equal(t, "DBLP: HTTP 503", status.Error())

	cause := errors.New("dial tcp: timeout")
	network := &FetchError{Repository: types.RepoDBLP, Err: cause}
	assert.ErrorIs(t, network, cause)

	parse := &ParseError{Repository: types.RepoOpenAlex, Err: cause}
	assert.True(t, IsParseError(parse))
	assert.False(t, IsFetchError(parse))
	assert.Contains(t, parse.Error(), "OpenAlex: parsing response")
}

func TestSynthesizedSummary(t *testing.T) {
	got := synthesizedSummary("paper", "Deep\n Learning", "Jane Doe", types.YearOf(2015))
	assert.Equal(t, `This paper titled "Deep Learning" was authored by Jane Doe and published in 2015.`, got)

	got = synthesizedSummary("publication", "X", "", types.Year{})
	assert.Equal(t, `This publication titled "X" was authored by Unknown and published in an unknown year.`, got)
}

func TestFromConfig(t *testing.T) {
	all, err := FromConfig(testCfg(), http.DefaultClient, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, types.RepoDBLP, all[0].Repository())
	assert.Equal(t, types.RepoOpenLibrary, all[3].Repository())

	cfg := testCfg()
	cfg.Providers = []string{"arxiv", "ArXiv", "openlibrary"}
	some, err := FromConfig(cfg, http.DefaultClient, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, types.RepoArXiv, some[0].Repository())
	assert.Equal(t, types.RepoOpenLibrary, some[1].Repository())

	cfg.Providers = []string{"scopus"}
	_, err = FromConfig(cfg, http.DefaultClient, zerolog.Nop())
	assert.Error(t, err)
}
