// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/pdiddy/vidvaan/pkg/types"
)

// openAlexAPIBase is the OpenAlex Works endpoint. Declared as a var so
// tests can substitute an httptest server.
var openAlexAPIBase = "https://api.openalex.org/works"

// openAlexMaxPerPage is the largest page size OpenAlex accepts.
const openAlexMaxPerPage = 200

// OpenAlex queries the OpenAlex works index by title.
type OpenAlex struct {
	Client *http.Client
	Config types.SearchConfig
	Logger zerolog.Logger
}

// Repository returns types.RepoOpenAlex.
func (o *OpenAlex) Repository() types.Repository { return types.RepoOpenAlex }

// Fetch searches OpenAlex work titles for topic.
func (o *OpenAlex) Fetch(ctx context.Context, topic string) ([]types.Publication, error) {
	params := url.Values{
		"filter": {"title.search:" + topic},
	}
	if n := o.Config.MaxResults; n > 0 {
		params.Set("per_page", strconv.Itoa(min(n, openAlexMaxPerPage)))
	}
	if o.Config.OpenAlexEmail != "" {
		params.Set("mailto", o.Config.OpenAlexEmail)
	}

	body, err := get(ctx, o.Client, types.RepoOpenAlex, openAlexAPIBase+"?"+params.Encode(), "application/json", o.Config.UserAgent)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var oar openAlexResponse
	if err := json.NewDecoder(body).Decode(&oar); err != nil {
		return nil, &ParseError{Repository: types.RepoOpenAlex, Err: err}
	}

	outcomes := make([]Outcome, len(oar.Results))
	for i, work := range oar.Results {
		outcomes[i] = mapOpenAlexWork(work)
	}
	return collect(types.RepoOpenAlex, outcomes, o.Logger), nil
}

// mapOpenAlexWork converts one work. Authors come from the authorship
// wrappers' display names.
func mapOpenAlexWork(work openAlexWork) Outcome {
	title := collapseSpace(work.Title)
	if title == "" {
		return Skip("missing title")
	}

	names := make([]string, 0, len(work.Authorships))
	for _, a := range work.Authorships {
		names = append(names, a.Author.DisplayName)
	}
	authors := joinNames(names)
	if authors == "" {
		authors = types.UnknownAuthors
	}
	year := types.YearOf(work.PublicationYear)

	return Keep(types.NewPublication(
		types.RepoOpenAlex,
		title,
		year,
		authors,
		work.ID,
		synthesizedSummary("publication", title, authors, year),
	))
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Meta    openAlexMeta   `json:"meta"`
	Results []openAlexWork `json:"results"`
}

type openAlexMeta struct {
	Count   int `json:"count"`
	PerPage int `json:"per_page"`
	Page    int `json:"page"`
}

type openAlexWork struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	PublicationYear int                  `json:"publication_year"`
	Authorships     []openAlexAuthorship `json:"authorships"`
}

type openAlexAuthorship struct {
	Author openAlexAuthor `json:"author"`
}

type openAlexAuthor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}
