// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/vidvaan/pkg/types"
)

func sample() types.Dataset {
	return types.Dataset{
		{Title: "Old", Year: types.YearOf(1995), Authors: "Alan Turing", Repository: types.RepoDBLP},
		{Title: "Mid", Year: types.YearOf(2005), Authors: "Jane Doe, John Smith", Repository: types.RepoArXiv},
		{Title: "New", Year: types.YearOf(2021), Authors: "Grace HOPPER", Repository: types.RepoOpenAlex},
		{Title: "Book", Year: types.UnknownYear("Unknown Year"), Authors: "Unknown Authors", Repository: types.RepoOpenLibrary},
	}
}

// cmpYear lets go-cmp compare the unexported Year fields by display.
var cmpYear = cmp.Comparer(func(a, b types.Year) bool { return a.String() == b.String() })

func TestApplyDefaultCriteriaIsIdentity(t *testing.T) {
	ds := sample()
	got, err := Apply(ds, Criteria{})
	require.NoError(t, err)
	if diff := cmp.Diff(ds, got, cmpYear); diff != "" {
		t.Errorf("identity filter changed dataset (-want +got):\n%s", diff)
	}
	assert.True(t, Criteria{}.IsIdentity())
	assert.True(t, Criteria{StartYear: 1800, EndYear: 9999, Author: "  "}.IsIdentity())
	assert.False(t, Criteria{Author: "x"}.IsIdentity())
}

func TestApplyDefaultCriteriaKeepsOutOfRangeYears(t *testing.T) {
	ds := types.Dataset{
		{Title: "Don Quixote", Year: types.YearOf(1605), Authors: "Miguel de Cervantes", Repository: types.RepoOpenLibrary},
		{Title: "Typo", Year: types.ParseYear("20201"), Authors: "A", Repository: types.RepoOpenLibrary},
	}
	require.True(t, Criteria{}.IsIdentity())

	got, err := Apply(ds, Criteria{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Don Quixote", "Typo"}, titlesOf(got))

	got, err = Apply(ds, Criteria{StartYear: 1800, EndYear: 9999})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = Apply(ds, Criteria{StartYear: 1900})
	require.NoError(t, err)
	assert.Equal(t, []string{"Typo"}, titlesOf(got), "a bound restores the year comparison")
}

func TestApplyYearRange(t *testing.T) {
	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"start only", Criteria{StartYear: 2000}, []string{"Mid", "New"}},
		{"end only", Criteria{EndYear: 2005}, []string{"Old", "Mid"}},
		{"inclusive bounds", Criteria{StartYear: 2005, EndYear: 2021}, []string{"Mid", "New"}},
		{"single year", Criteria{StartYear: 1995, EndYear: 1995}, []string{"Old"}},
		{"empty window", Criteria{StartYear: 2010, EndYear: 2015}, []string{}},
		{"explicit defaults keep unknown", Criteria{StartYear: 1800, EndYear: 9999}, []string{"Old", "Mid", "New", "Book"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(sample(), tt.c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titlesOf(got))
		})
	}
}

func TestApplyUnknownYearExcludedByBound(t *testing.T) {
	got, err := Apply(sample(), Criteria{StartYear: 2000})
	require.NoError(t, err)
	assert.NotContains(t, got.Titles(), "Book")
}

func TestApplyAuthorSubstring(t *testing.T) {
	got, err := Apply(sample(), Criteria{Author: "doe"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mid"}, titlesOf(got))

	got, err = Apply(sample(), Criteria{Author: " hopper "})
	require.NoError(t, err)
	assert.Equal(t, []string{"New"}, titlesOf(got))

	got, err = Apply(sample(), Criteria{Author: "doe", StartYear: 2010})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestApplyInvertedRange(t *testing.T) {
	got, err := Apply(sample(), Criteria{StartYear: 2020, EndYear: 2010})
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.Nil(t, got)

	_, err = Apply(sample(), Criteria{StartYear: 10000})
	assert.ErrorIs(t, err, ErrInvalidRange, "start past the default end inverts the range")
}

func TestApplyIdempotentAndPure(t *testing.T) {
	ds := sample()
	c := Criteria{StartYear: 2000, Author: "o"}

	first, err := Apply(ds, c)
	require.NoError(t, err)
	second, err := Apply(ds, c)
	require.NoError(t, err)
	if diff := cmp.Diff(first, second, cmpYear); diff != "" {
		t.Errorf("second application differs (-first +second):\n%s", diff)
	}

	if diff := cmp.Diff(sample(), ds, cmpYear); diff != "" {
		t.Errorf("original mutated (-want +got):\n%s", diff)
	}
}

func titlesOf(ds types.Dataset) []string {
	out := make([]string, 0, len(ds))
	for _, p := range ds {
		out = append(out, p.Title)
	}
	return out
}
