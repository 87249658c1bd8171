// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/vidvaan/pkg/types"
)

// Table writes a fixed-width text table for terminal display. Offset is
// the number of rows before the first one shown, so numbering continues
// across pages.
type Table struct {
	Offset int
}

func (*Table) ContentType() string { return "text/plain; charset=utf-8" }

func (*Table) Extension() string { return "txt" }

func (t *Table) Export(w io.Writer, doc Document) error {
	WriteTable(w, doc.Publications, t.Offset)
	if doc.Summary != "" {
		fmt.Fprintf(w, "\nAI SUMMARY:\n%s\n", doc.Summary)
	}
	return nil
}

// WriteTable writes rows numbered from offset+1.
func WriteTable(w io.Writer, rows types.Dataset, offset int) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-24s  %-12s  %s\n",
		"#", "Title", "Authors", "Year", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 116))

	for i, p := range rows {
		fmt.Fprintf(w, "%-4d  %-60s  %-24s  %-12s  %s\n",
			offset+i+1, truncate(p.Title, 60), truncate(p.Authors, 24), truncate(p.Year.String(), 12), p.Repository)
	}
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
