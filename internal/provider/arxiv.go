// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/vidvaan/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

const arxivDefaultMaxResults = 100

// ArXiv queries the arXiv Atom API.
type ArXiv struct {
	Client *http.Client
	Config types.SearchConfig
	Logger zerolog.Logger
}

// Repository returns types.RepoArXiv.
func (a *ArXiv) Repository() types.Repository { return types.RepoArXiv }

// Fetch searches all arXiv fields for topic.
func (a *ArXiv) Fetch(ctx context.Context, topic string) ([]types.Publication, error) {
	maxResults := a.Config.MaxResults
	if maxResults <= 0 {
		maxResults = arxivDefaultMaxResults
	}

	params := url.Values{
		"search_query": {"all:" + topic},
		"start":        {"0"},
		"max_results":  {strconv.Itoa(maxResults)},
	}

	body, err := get(ctx, a.Client, types.RepoArXiv, arxivAPIBase+"?"+params.Encode(), "application/atom+xml", a.Config.UserAgent)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var feed arxivFeed
	if err := xml.NewDecoder(body).Decode(&feed); err != nil {
		return nil, &ParseError{Repository: types.RepoArXiv, Err: err}
	}

	outcomes := make([]Outcome, len(feed.Entries))
	for i, entry := range feed.Entries {
		outcomes[i] = mapArxivEntry(entry)
	}
	return collect(types.RepoArXiv, outcomes, a.Logger), nil
}

// mapArxivEntry converts one Atom entry. The year comes from the full
// published timestamp; an unparseable timestamp leaves it unknown.
func mapArxivEntry(entry arxivEntry) Outcome {
	title := collapseSpace(entry.Title)
	if title == "" {
		return Skip("missing title")
	}

	year := types.Year{}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(entry.Published)); err == nil {
		year = types.YearOf(t.Year())
	}

	names := make([]string, len(entry.Authors))
	for i, author := range entry.Authors {
		names[i] = author.Name
	}

	return Keep(types.NewPublication(
		types.RepoArXiv,
		title,
		year,
		joinNames(names),
		entry.ID,
		strings.TrimSpace(entry.Summary),
	))
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}
