// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"sync"

	"github.com/pdiddy/vidvaan/internal/filter"
	"github.com/pdiddy/vidvaan/pkg/types"
)

// Store holds one State for callers that share it across goroutines, such
// as HTTP handlers. Each method applies one State transition under a lock.
type Store struct {
	mu      sync.Mutex
	state   State
	summary string
}

// NewStore returns a Store holding New(pageSize).
func NewStore(pageSize int) *Store {
	return &Store{state: New(pageSize)}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// BeginSearch starts a search and returns its token. The stored summary
// is cleared with the old dataset.
func (s *Store) BeginSearch(topic string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.BeginSearch(topic)
	s.summary = ""
	return s.state.Token
}

// Merge installs a snapshot for token, reporting false when it is stale.
func (s *Store) Merge(token uint64, snapshot types.Dataset) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := s.state.Merge(token, snapshot)
	s.state = next
	return ok
}

// Complete installs the final dataset for token, reporting false when it
// is stale.
func (s *Store) Complete(token uint64, dataset types.Dataset) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := s.state.Complete(token, dataset)
	s.state = next
	return ok
}

// ApplyFilters applies c and returns the resulting state.
func (s *Store) ApplyFilters(c filter.Criteria) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.ApplyFilters(c)
	return s.state
}

// SetPage moves to page n and returns the resulting page.
func (s *Store) SetPage(n int) Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.SetPage(n)
	return s.state.View()
}

// SetSummary records the AI summary of the current dataset, unless
// token no longer identifies the current search.
func (s *Store) SetSummary(token uint64, summary string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.state.Token {
		return false
	}
	s.summary = summary
	return true
}

// Summary returns the last summary recorded for the current search.
func (s *Store) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}
