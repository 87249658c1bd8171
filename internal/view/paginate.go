// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package view holds the browsing state of a search: the original dataset,
// the filtered active view, the applied criteria, and the current page.
// State is a plain value; every transition returns a new State.
package view

import "github.com/pdiddy/vidvaan/pkg/types"

// DefaultPageSize is the number of rows per page when none is given.
const DefaultPageSize = 50

// Page is one slice of a dataset.
type Page struct {
	Rows       types.Dataset `json:"rows"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
	Total      int           `json:"total"`
}

// TotalPages returns the number of pages of size pageSize needed for n rows.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate returns page (1-based) of ds. Pages outside 1..TotalPages
// produce no rows.
func Paginate(ds types.Dataset, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	p := Page{
		Rows:       types.Dataset{},
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(len(ds), pageSize),
		Total:      len(ds),
	}
	if page < 1 || page > p.TotalPages {
		return p
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(ds))
	p.Rows = ds[start:end:end]
	return p
}
