// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/vidvaan/pkg/types"
)

// openLibraryAPIBase is the OpenLibrary search endpoint. Declared as a var
// so tests can substitute an httptest server.
var openLibraryAPIBase = "https://openlibrary.org/search.json"

// openLibrarySite prefixes seed paths to build work links.
const openLibrarySite = "https://openlibrary.org"

// Placeholders OpenLibrary records fall back to instead of being dropped.
const (
	OpenLibraryUnknownTitle   = "Unknown Title"
	OpenLibraryUnknownYear    = "Unknown Year"
	OpenLibraryUnknownAuthors = "Unknown Authors"
	OpenLibraryNoSeed         = "No Seed Available"
)

// OpenLibrary queries the OpenLibrary book search.
type OpenLibrary struct {
	Client *http.Client
	Config types.SearchConfig
	Logger zerolog.Logger
}

// Repository returns types.RepoOpenLibrary.
func (o *OpenLibrary) Repository() types.Repository { return types.RepoOpenLibrary }

// Fetch searches OpenLibrary for topic.
func (o *OpenLibrary) Fetch(ctx context.Context, topic string) ([]types.Publication, error) {
	params := url.Values{"q": {topic}}
	if o.Config.MaxResults > 0 {
		params.Set("limit", strconv.Itoa(o.Config.MaxResults))
	}

	body, err := get(ctx, o.Client, types.RepoOpenLibrary, openLibraryAPIBase+"?"+params.Encode(), "application/json", o.Config.UserAgent)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var olr openLibraryResponse
	if err := json.NewDecoder(body).Decode(&olr); err != nil {
		return nil, &ParseError{Repository: types.RepoOpenLibrary, Err: err}
	}

	outcomes := make([]Outcome, len(olr.Docs))
	for i, doc := range olr.Docs {
		outcomes[i] = mapOpenLibraryDoc(doc)
	}
	return collect(types.RepoOpenLibrary, outcomes, o.Logger), nil
}

// mapOpenLibraryDoc converts one search doc. Every missing field falls
// back to its placeholder, so no doc is skipped.
func mapOpenLibraryDoc(doc openLibraryDoc) Outcome {
	title := collapseSpace(doc.Title)
	if title == "" {
		title = OpenLibraryUnknownTitle
	}

	year := types.UnknownYear(OpenLibraryUnknownYear)
	if doc.FirstPublishYear > 0 {
		year = types.YearOf(doc.FirstPublishYear)
	}

	authors := joinNames(doc.AuthorName)
	if authors == "" {
		authors = OpenLibraryUnknownAuthors
	}

	link := OpenLibraryNoSeed
	if len(doc.Seed) > 0 && strings.TrimSpace(doc.Seed[0]) != "" {
		link = openLibrarySite + strings.TrimSpace(doc.Seed[0])
	}

	return Keep(types.NewPublication(types.RepoOpenLibrary, title, year, authors, link, ""))
}

// OpenLibrary search JSON structures.
type openLibraryResponse struct {
	NumFound int              `json:"numFound"`
	Docs     []openLibraryDoc `json:"docs"`
}

type openLibraryDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	FirstPublishYear int      `json:"first_publish_year"`
	AuthorName       []string `json:"author_name"`
	Seed             []string `json:"seed"`
}
