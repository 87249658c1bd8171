// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the report.
const SheetName = "Report Sheet"

// XLSX writes an Excel workbook with one report sheet. Link cells are
// clickable hyperlinks.
type XLSX struct{}

func (*XLSX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (*XLSX) Extension() string { return "xlsx" }

func (*XLSX) Export(w io.Writer, doc Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:       "Vidvaan Report",
		Subject:     "Report",
		Creator:     "Team Vidvaan",
		Description: doc.Topic,
	}); err != nil {
		return fmt.Errorf("setting document properties: %w", err)
	}

	for i, row := range Rows(doc.Publications) {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		start, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, start, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
		if i == 0 || !isLink(row[linkColumn]) {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(linkColumn+1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetCellHyperLink(SheetName, cell, row[linkColumn], "External"); err != nil {
			return fmt.Errorf("linking %s: %w", cell, err)
		}
	}

	if doc.Summary != "" {
		sheet := "AI Summary"
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("adding summary sheet: %w", err)
		}
		if err := f.SetCellValue(sheet, "A1", "AI SUMMARY"); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, "A2", doc.Summary); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
