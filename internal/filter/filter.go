// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter narrows a search dataset by publication year range and
// author substring. Filtering is pure: it always recomputes from the
// original dataset and never mutates it.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/vidvaan/pkg/types"
)

// Default year bounds used when the caller leaves a bound unset.
const (
	DefaultStartYear = 1800
	DefaultEndYear   = 9999
)

// ErrInvalidRange is returned when the end year precedes the start year.
var ErrInvalidRange = errors.New("end year is before start year")

// Criteria selects publications. Zero years mean "not supplied".
type Criteria struct {
	StartYear int    `json:"start_year,omitempty" yaml:"start_year,omitempty"`
	EndYear   int    `json:"end_year,omitempty" yaml:"end_year,omitempty"`
	Author    string `json:"author,omitempty" yaml:"author,omitempty"`
}

// Normalize fills unset bounds with the defaults and trims the author.
func (c Criteria) Normalize() Criteria {
	if c.StartYear == 0 {
		c.StartYear = DefaultStartYear
	}
	if c.EndYear == 0 {
		c.EndYear = DefaultEndYear
	}
	c.Author = strings.TrimSpace(c.Author)
	return c
}

// Validate reports an inverted year range.
func (c Criteria) Validate() error {
	n := c.Normalize()
	if n.EndYear < n.StartYear {
		return fmt.Errorf("%w: %d-%d", ErrInvalidRange, n.StartYear, n.EndYear)
	}
	return nil
}

// IsIdentity reports whether c keeps every publication.
func (c Criteria) IsIdentity() bool {
	n := c.Normalize()
	return n.unbounded() && n.Author == ""
}

func (c Criteria) unbounded() bool {
	return c.StartYear == DefaultStartYear && c.EndYear == DefaultEndYear
}

// Apply returns the publications of original that satisfy c, in their
// original order. An inverted range returns ErrInvalidRange and no dataset.
func Apply(original types.Dataset, c Criteria) (types.Dataset, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c = c.Normalize()
	needle := strings.ToLower(c.Author)

	out := make(types.Dataset, 0, len(original))
	for _, p := range original {
		if c.matchYear(p.Year) && matchAuthor(p.Authors, needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

// matchYear expects normalized criteria. An unbounded range keeps every
// year, including unknown ones and known years outside 1800-9999.
func (c Criteria) matchYear(y types.Year) bool {
	if c.unbounded() {
		return true
	}
	n, ok := y.Int()
	if !ok {
		return false
	}
	return c.StartYear <= n && n <= c.EndYear
}

func matchAuthor(authors, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(authors), needle)
}
