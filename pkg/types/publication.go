// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures of vidvaan: the normalized
// publication record, its provenance tag, and the stage configuration.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// Repository tags the academic API a publication came from.
type Repository string

const (
	RepoDBLP        Repository = "DBLP"
	RepoArXiv       Repository = "ArXiv"
	RepoOpenAlex    Repository = "OpenAlex"
	RepoOpenLibrary Repository = "OpenLibrary"
)

// AllRepositories lists every supported repository in display order.
func AllRepositories() []Repository {
	return []Repository{RepoDBLP, RepoArXiv, RepoOpenAlex, RepoOpenLibrary}
}

// Valid reports whether r is one of the supported repositories.
func (r Repository) Valid() bool {
	for _, known := range AllRepositories() {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRepository resolves a repository name case-insensitively.
func ParseRepository(name string) (Repository, error) {
	name = strings.TrimSpace(name)
	for _, known := range AllRepositories() {
		if strings.EqualFold(name, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown repository %q", name)
}

// UnknownAuthors is the author string for records whose provider reports no authors.
const UnknownAuthors = "Unknown"

var (
	// ErrMissingTitle is returned when a record has no usable title.
	ErrMissingTitle = errors.New("publication has no title")

	// ErrInvalidRepository is returned when a record carries no valid provenance tag.
	ErrInvalidRepository = errors.New("publication has no valid repository")
)

// Publication is one normalized search result. Publications are values:
// filtering and pagination select them, never modify them.
type Publication struct {
	// Title is the trimmed work title. Never empty.
	Title string `json:"title" yaml:"title"`

	// Year is the publication year, or unknown when the provider did not
	// report a parseable one.
	Year Year `json:"year" yaml:"year"`

	// Authors is the comma-joined list of author display names.
	Authors string `json:"authors" yaml:"authors"`

	// URL links to the work at its provider.
	URL string `json:"url" yaml:"url"`

	// Summary is an optional abstract or synthesized description.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Repository identifies the provider that produced the record.
	Repository Repository `json:"repository" yaml:"repository"`
}

// NewPublication builds a publication and enforces the record invariants:
// a trimmed, non-empty title and a valid repository tag. Empty authors
// become UnknownAuthors.
func NewPublication(repo Repository, title string, year Year, authors, url, summary string) (Publication, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Publication{}, ErrMissingTitle
	}
	if !repo.Valid() {
		return Publication{}, fmt.Errorf("%w: %q", ErrInvalidRepository, repo)
	}
	authors = strings.TrimSpace(authors)
	if authors == "" {
		authors = UnknownAuthors
	}
	return Publication{
		Title:      title,
		Year:       year,
		Authors:    authors,
		URL:        strings.TrimSpace(url),
		Summary:    strings.TrimSpace(summary),
		Repository: repo,
	}, nil
}

// Dataset is an ordered list of publications.
type Dataset []Publication

// Clone returns a copy of d that shares no backing array with it.
func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	out := make(Dataset, len(d))
	copy(out, d)
	return out
}

// Titles returns the title of every publication in order.
func (d Dataset) Titles() []string {
	titles := make([]string, len(d))
	for i, p := range d {
		titles[i] = p.Title
	}
	return titles
}

// CountBy returns the number of publications per repository.
func (d Dataset) CountBy() map[Repository]int {
	counts := make(map[Repository]int)
	for _, p := range d {
		counts[p.Repository]++
	}
	return counts
}
