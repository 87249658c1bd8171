// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/vidvaan/pkg/types"
)

const sampleArxivFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query</title>
  <entry>
    <id>http://arxiv.org/abs/1706.03762v7</id>
    <published>2017-06-12T17:57:34Z</published>
    <title>Attention Is All
      You Need</title>
    <summary>  The dominant sequence transduction models...  </summary>
    <author><name>Ashish Vaswani</name></author>
    <author><name>Noam Shazeer</name></author>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2001.00001v1</id>
    <published>not a date</published>
    <title>No Date Paper</title>
    <summary>Abstract.</summary>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2001.00002v1</id>
    <published>2020-01-01T00:00:00Z</published>
    <title>   </title>
  </entry>
</feed>`

func TestArxivFetch(t *testing.T) {
	serve(t, &arxivAPIBase, http.StatusOK, "application/atom+xml", sampleArxivFeed)

	a := &ArXiv{Client: http.DefaultClient, Config: testCfg(), Logger: zerolog.Nop()}
	records, err := a.Fetch(context.Background(), "attention")
	require.NoError(t, err)
	require.Len(t, records, 2, "entry with a blank title is dropped")

	first := records[0]
	assert.Equal(t, "Attention Is All You Need", first.Title)
	assert.Equal(t, types.YearOf(2017), first.Year)
	assert.Equal(t, "Ashish Vaswani, Noam Shazeer", first.Authors)
	assert.Equal(t, "http://arxiv.org/abs/1706.03762v7", first.URL)
	assert.Equal(t, "The dominant sequence transduction models...", first.Summary)
	assert.Equal(t, types.RepoArXiv, first.Repository)

	second := records[1]
	assert.False(t, second.Year.Known(), "unparseable timestamp leaves the year unknown")
	assert.Equal(t, types.UnknownAuthors, second.Authors)
}

func TestArxivFetchQuery(t *testing.T) {
	var gotSearch, gotMax string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSearch = r.URL.Query().Get("search_query")
		gotMax = r.URL.Query().Get("max_results")
		w.Write([]byte(`<feed xmlns="http://www.w3.org/2005/Atom"></feed>`))
	}))
	defer ts.Close()
	orig := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = orig }()

	a := &ArXiv{Client: ts.Client(), Config: testCfg(), Logger: zerolog.Nop()}
	records, err := a.Fetch(context.Background(), "quantum computing")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, "all:quantum computing", gotSearch)
	assert.Equal(t, "100", gotMax)
}

func TestArxivFetchErrors(t *testing.T) {
	t.Run("non-success status", func(t *testing.T) {
		serve(t, &arxivAPIBase, http.StatusServiceUnavailable, "text/plain", "busy")
		a := &ArXiv{Client: http.DefaultClient, Config: testCfg(), Logger: zerolog.Nop()}
		_, err := a.Fetch(context.Background(), "topic")
		assert.True(t, IsFetchError(err))
	})

	t.Run("malformed xml", func(t *testing.T) {
		serve(t, &arxivAPIBase, http.StatusOK, "application/atom+xml", `<feed><entry><title>broken`)
		a := &ArXiv{Client: http.DefaultClient, Config: testCfg(), Logger: zerolog.Nop()}
		_, err := a.Fetch(context.Background(), "topic")
		assert.True(t, IsParseError(err))
	})

	t.Run("network failure", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()
		orig := arxivAPIBase
		arxivAPIBase = ts.URL
		defer func() { arxivAPIBase = orig }()

		a := &ArXiv{Client: http.DefaultClient, Config: testCfg(), Logger: zerolog.Nop()}
		_, err := a.Fetch(context.Background(), "topic")
		require.Error(t, err)
		assert.True(t, IsFetchError(err))
	})
}
