// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/vidvaan/internal/filter"
	"github.com/pdiddy/vidvaan/pkg/types"
)

func dataset(n int) types.Dataset {
	ds := make(types.Dataset, n)
	for i := range ds {
		ds[i] = types.Publication{
			Title:      fmt.Sprintf("Paper %d", i+1),
			Year:       types.YearOf(1990 + i%30),
			Authors:    "Author",
			Repository: types.RepoDBLP,
		}
	}
	return ds
}

func TestPaginate120Records(t *testing.T) {
	ds := dataset(120)

	p := Paginate(ds, 3, 50)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 120, p.Total)
	require.Len(t, p.Rows, 20)
	assert.Equal(t, "Paper 101", p.Rows[0].Title)
	assert.Equal(t, "Paper 120", p.Rows[19].Title)

	assert.Len(t, Paginate(ds, 1, 50).Rows, 50)
	assert.Len(t, Paginate(ds, 2, 50).Rows, 50)
}

func TestPaginateOutOfRange(t *testing.T) {
	ds := dataset(10)
	for _, page := range []int{-1, 0, 2, 99} {
		p := Paginate(ds, page, 50)
		assert.Empty(t, p.Rows, "page %d", page)
		assert.Equal(t, 1, p.TotalPages)
	}

	empty := Paginate(nil, 1, 50)
	assert.Zero(t, empty.TotalPages)
	assert.Empty(t, empty.Rows)
}

func TestPaginateDefaultSize(t *testing.T) {
	p := Paginate(dataset(60), 1, 0)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Len(t, p.Rows, 50)
	assert.Equal(t, 2, p.TotalPages)
}

func TestPaginateRoundTrip(t *testing.T) {
	ds := dataset(137)
	for _, size := range []int{1, 7, 50, 137, 200} {
		var got []string
		pages := TotalPages(len(ds), size)
		for p := 1; p <= pages; p++ {
			got = append(got, Paginate(ds, p, size).Rows.Titles()...)
		}
		assert.Equal(t, ds.Titles(), got, "page size %d", size)
	}
}

func TestStateSearchLifecycle(t *testing.T) {
	s := New(50)
	s = s.BeginSearch("graphs")
	token := s.Token

	s, ok := s.Merge(token, dataset(10))
	require.True(t, ok)
	assert.Len(t, s.Active, 10)
	assert.False(t, s.Completed)

	s, ok = s.Complete(token, dataset(120))
	require.True(t, ok)
	assert.True(t, s.Completed)
	assert.Len(t, s.Original, 120)
	assert.Equal(t, 3, s.View().TotalPages)
}

func TestStateRejectsStaleResults(t *testing.T) {
	s := New(50).BeginSearch("first")
	stale := s.Token
	s = s.BeginSearch("second")
	require.Greater(t, s.Token, stale)

	next, ok := s.Merge(stale, dataset(5))
	assert.False(t, ok)
	assert.Equal(t, s, next)

	next, ok = s.Complete(stale, dataset(5))
	assert.False(t, ok)
	assert.Empty(t, next.Original)
	assert.Equal(t, "second", next.Topic)
}

func TestStateBeginSearchResets(t *testing.T) {
	s := New(25).BeginSearch("first")
	s, _ = s.Complete(s.Token, dataset(100))
	s = s.ApplyFilters(filter.Criteria{StartYear: 2000}).SetPage(2)

	s = s.BeginSearch("second")
	assert.Empty(t, s.Original)
	assert.Empty(t, s.Active)
	assert.Equal(t, filter.Criteria{}, s.Criteria)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 25, s.PageSize)
}

func TestStateApplyFilters(t *testing.T) {
	s := New(50).BeginSearch("graphs")
	s, _ = s.Complete(s.Token, dataset(120))
	s = s.SetPage(3)

	filtered := s.ApplyFilters(filter.Criteria{StartYear: 2010})
	assert.Equal(t, 1, filtered.Page)
	for _, p := range filtered.Active {
		n, _ := p.Year.Int()
		assert.GreaterOrEqual(t, n, 2010)
	}
	assert.Len(t, filtered.Original, 120, "original untouched")

	again := filtered.ApplyFilters(filter.Criteria{StartYear: 2010})
	assert.Equal(t, filtered.Active.Titles(), again.Active.Titles())

	cleared := filtered.ClearFilters()
	assert.Len(t, cleared.Active, 120)
}

func TestStateInvertedRangeIsNoop(t *testing.T) {
	s := New(50).BeginSearch("graphs")
	s, _ = s.Complete(s.Token, dataset(120))
	s = s.ApplyFilters(filter.Criteria{Author: "auth"}).SetPage(2)

	after := s.ApplyFilters(filter.Criteria{StartYear: 2020, EndYear: 2010})
	assert.Equal(t, s.Criteria, after.Criteria)
	assert.Equal(t, 2, after.Page)
	assert.Equal(t, s.Active.Titles(), after.Active.Titles())
}

func TestStateFiltersSurviveSnapshots(t *testing.T) {
	s := New(50).BeginSearch("graphs")
	s = s.ApplyFilters(filter.Criteria{StartYear: 2015})
	s, _ = s.Merge(s.Token, dataset(30))
	for _, p := range s.Active {
		n, _ := p.Year.Int()
		assert.GreaterOrEqual(t, n, 2015)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore(50)
	token := store.BeginSearch("graphs")

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.Merge(token, dataset(n*10))
			store.SetPage(1)
			store.ApplyFilters(filter.Criteria{})
		}(i)
	}
	wg.Wait()

	require.True(t, store.Complete(token, dataset(120)))
	snap := store.Snapshot()
	assert.True(t, snap.Completed)
	assert.Len(t, snap.Original, 120)
}

func TestStoreSummary(t *testing.T) {
	store := NewStore(50)
	token := store.BeginSearch("graphs")
	require.True(t, store.SetSummary(token, "overview"))
	assert.Equal(t, "overview", store.Summary())

	next := store.BeginSearch("other")
	assert.Empty(t, store.Summary(), "new search clears the summary")
	assert.False(t, store.SetSummary(token, "late"))
	assert.True(t, store.SetSummary(next, "fresh"))
}
