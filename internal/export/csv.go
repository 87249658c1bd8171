// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// utf8BOM makes spreadsheet applications detect UTF-8.
const utf8BOM = "\ufeff"

// CSV writes the report rows as comma-separated values. Link cells become
// HYPERLINK formulas so spreadsheets open them as links; any other cell
// that a spreadsheet would evaluate as a formula is quoted as text.
type CSV struct{}

func (*CSV) ContentType() string { return "text/csv; charset=utf-8" }

func (*CSV) Extension() string { return "csv" }

func (*CSV) Export(w io.Writer, doc Document) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	for i, row := range Rows(doc.Publications) {
		if i > 0 {
			for j, cell := range row {
				row[j] = escapeFormula(cell)
			}
			if isLink(row[linkColumn]) {
				row[linkColumn] = hyperlinkFormula(row[linkColumn])
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func hyperlinkFormula(url string) string {
	return `=HYPERLINK("` + strings.ReplaceAll(url, `"`, `""`) + `")`
}

// escapeFormula prefixes cells starting with a formula trigger with a
// single quote.
func escapeFormula(cell string) string {
	if cell != "" && strings.ContainsRune("=+-@\t\r", rune(cell[0])) {
		return "'" + cell
	}
	return cell
}
