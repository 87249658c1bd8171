// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders a search dataset into downloadable documents:
// spreadsheets, CSV, Word-compatible HTML, JSON, YAML, and plain text
// tables. Every tabular format shares the row layout produced by Rows.
package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdiddy/vidvaan/pkg/types"
)

// Header is the first row of every tabular export.
var Header = []string{"Title", "Year", "Authors", "Link", "Summary", "Academic Database"}

// Column index of the link in Header.
const linkColumn = 3

// Document is what gets exported: the dataset of one search and the AI
// summary, if one was requested.
type Document struct {
	Topic        string        `json:"topic" yaml:"topic"`
	Publications types.Dataset `json:"publications" yaml:"publications"`
	Summary      string        `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Exporter writes a Document in one format.
type Exporter interface {
	Export(w io.Writer, doc Document) error

	// ContentType is the MIME type of the output.
	ContentType() string

	// Extension is the file extension, without the dot.
	Extension() string
}

// Rows returns Header followed by one row per publication.
func Rows(ds types.Dataset) [][]string {
	rows := make([][]string, 0, len(ds)+1)
	rows = append(rows, append([]string(nil), Header...))
	for _, p := range ds {
		rows = append(rows, []string{
			p.Title,
			p.Year.String(),
			p.Authors,
			p.URL,
			p.Summary,
			string(p.Repository),
		})
	}
	return rows
}

var exporters = map[string]func() Exporter{
	"xlsx":  func() Exporter { return &XLSX{} },
	"csv":   func() Exporter { return &CSV{} },
	"doc":   func() Exporter { return &Word{} },
	"json":  func() Exporter { return &JSON{} },
	"yaml":  func() Exporter { return &YAML{} },
	"table": func() Exporter { return &Table{} },
}

// Formats lists the supported format names.
func Formats() []string {
	names := make([]string, 0, len(exporters))
	for name := range exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForFormat returns the exporter for name (case-insensitive). "xls" and
// "excel" select xlsx; "word" selects doc; "yml" selects yaml.
func ForFormat(name string) (Exporter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "xls", "excel":
		name = "xlsx"
	case "word", "docx":
		name = "doc"
	case "yml":
		name = "yaml"
	case "text", "txt":
		name = "table"
	}
	mk, ok := exporters[name]
	if !ok {
		return nil, fmt.Errorf("unknown export format %q (supported: %s)", name, strings.Join(Formats(), ", "))
	}
	return mk(), nil
}

// Filename builds a download name for doc in the exporter's format.
func Filename(e Exporter, doc Document) string {
	base := "Vidvaan Report"
	if t := slug(doc.Topic); t != "" {
		base += " - " + t
	}
	return base + "." + e.Extension()
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r == '/' || r == '\\' || r == '"' || r < ' ':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isLink reports whether a link cell holds an address worth hyperlinking.
func isLink(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
