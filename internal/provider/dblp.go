// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/pdiddy/vidvaan/pkg/types"
)

// dblpAPIBase is the DBLP publication search endpoint. Declared as a var
// so tests can substitute an httptest server.
var dblpAPIBase = "https://dblp.org/search/publ/api"

// DBLP queries the DBLP computer science bibliography.
type DBLP struct {
	Client *http.Client
	Config types.SearchConfig
	Logger zerolog.Logger
}

// Repository returns types.RepoDBLP.
func (d *DBLP) Repository() types.Repository { return types.RepoDBLP }

// Fetch searches DBLP for topic.
func (d *DBLP) Fetch(ctx context.Context, topic string) ([]types.Publication, error) {
	params := url.Values{
		"q":      {topic},
		"format": {"json"},
	}
	if d.Config.MaxResults > 0 {
		params.Set("h", strconv.Itoa(d.Config.MaxResults))
	}

	body, err := get(ctx, d.Client, types.RepoDBLP, dblpAPIBase+"?"+params.Encode(), "application/json", d.Config.UserAgent)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var dr dblpResponse
	if err := json.NewDecoder(body).Decode(&dr); err != nil {
		return nil, &ParseError{Repository: types.RepoDBLP, Err: err}
	}

	outcomes := make([]Outcome, len(dr.Result.Hits.Hit))
	for i, hit := range dr.Result.Hits.Hit {
		outcomes[i] = mapDBLPHit(hit)
	}
	return collect(types.RepoDBLP, outcomes, d.Logger), nil
}

// mapDBLPHit converts one DBLP hit. Hits without a title are skipped.
func mapDBLPHit(hit dblpHit) Outcome {
	info := hit.Info
	if collapseSpace(info.Title) == "" {
		return Skip("missing title")
	}

	authors := joinNames(dblpAuthorNames(info.Authors.Author))
	if authors == "" {
		authors = types.UnknownAuthors
	}
	year := types.ParseYear(info.Year)
	title := collapseSpace(info.Title)

	return Keep(types.NewPublication(
		types.RepoDBLP,
		title,
		year,
		authors,
		info.URL,
		synthesizedSummary("paper", title, authors, year),
	))
}

// dblpAuthorNames decodes the authors.author field, which DBLP emits as a
// single object for one author and as a list otherwise. Entries are
// objects carrying the name in "text", or occasionally bare strings.
func dblpAuthorNames(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var list []json.RawMessage
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil
		}
	} else {
		list = []json.RawMessage{raw}
	}

	names := make([]string, 0, len(list))
	for _, item := range list {
		var a dblpAuthor
		if err := json.Unmarshal(item, &a); err == nil {
			names = append(names, a.Text)
			continue
		}
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			names = append(names, s)
		}
	}
	return names
}

// DBLP search API JSON structures.
type dblpResponse struct {
	Result struct {
		Hits struct {
			Total string    `json:"@total"`
			Hit   []dblpHit `json:"hit"`
		} `json:"hits"`
	} `json:"result"`
}

type dblpHit struct {
	Info dblpInfo `json:"info"`
}

type dblpInfo struct {
	Title   string `json:"title"`
	Year    string `json:"year"`
	URL     string `json:"url"`
	Authors struct {
		Author json.RawMessage `json:"author"`
	} `json:"authors"`
}

type dblpAuthor struct {
	PID  string `json:"@pid"`
	Text string `json:"text"`
}
