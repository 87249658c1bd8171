// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"github.com/pdiddy/vidvaan/internal/filter"
	"github.com/pdiddy/vidvaan/pkg/types"
)

// State is the browsing state of one search session.
type State struct {
	Topic string

	// Original is the unfiltered dataset. It only changes when search
	// results arrive for the current token.
	Original types.Dataset

	// Active is Original narrowed by Criteria.
	Active types.Dataset

	Criteria filter.Criteria
	Page     int
	PageSize int

	// Token identifies the current search. Results carrying an older
	// token are stale.
	Token uint64

	// Completed is set once every provider of the current search settled.
	Completed bool
}

// New returns an empty State showing pageSize rows per page.
func New(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{Page: 1, PageSize: pageSize}
}

// BeginSearch starts a new search for topic, discarding the previous
// dataset, criteria, and page. The returned state's Token identifies it.
func (s State) BeginSearch(topic string) State {
	return State{
		Topic:    topic,
		Page:     1,
		PageSize: s.pageSize(),
		Token:    s.Token + 1,
	}
}

// Merge installs a progressive snapshot of the search identified by
// token. It reports false and leaves s unchanged when token is stale.
func (s State) Merge(token uint64, snapshot types.Dataset) (State, bool) {
	if token != s.Token {
		return s, false
	}
	return s.install(snapshot), true
}

// Complete installs the final dataset of the search identified by token
// and marks it complete. Stale tokens are rejected like Merge.
func (s State) Complete(token uint64, dataset types.Dataset) (State, bool) {
	if token != s.Token {
		return s, false
	}
	s = s.install(dataset)
	s.Completed = true
	return s, true
}

// install replaces Original and recomputes Active with the current
// criteria. The page resets to 1.
func (s State) install(ds types.Dataset) State {
	s.Original = ds.Clone()
	active, err := filter.Apply(s.Original, s.Criteria)
	if err != nil {
		// Criteria in a State are always valid; fall back to everything.
		active = s.Original.Clone()
		s.Criteria = filter.Criteria{}
	}
	s.Active = active
	s.Page = 1
	return s
}

// ApplyFilters narrows Active to the publications of Original matching c
// and resets the page to 1. An inverted year range leaves s unchanged.
func (s State) ApplyFilters(c filter.Criteria) State {
	active, err := filter.Apply(s.Original, c)
	if err != nil {
		return s
	}
	s.Criteria = c
	s.Active = active
	s.Page = 1
	return s
}

// ClearFilters shows the whole original dataset again.
func (s State) ClearFilters() State {
	return s.ApplyFilters(filter.Criteria{})
}

// SetPage moves to page n. Out-of-range pages are allowed and show no rows.
func (s State) SetPage(n int) State {
	s.Page = n
	return s
}

// View returns the current page of the active dataset.
func (s State) View() Page {
	return Paginate(s.Active, s.Page, s.pageSize())
}

func (s State) pageSize() int {
	if s.PageSize <= 0 {
		return DefaultPageSize
	}
	return s.PageSize
}
