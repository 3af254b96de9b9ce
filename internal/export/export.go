// Package export serializes report shapes into downloadable spreadsheet
// payloads. Column order and header names are fixed; empty input produces
// a valid header-only sheet.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/voltrack/voltrack/internal/report"
)

// DetailColumns is the header row of the flat per-entry report.
var DetailColumns = []string{"Full Name", "Date", "Event", "Start", "End", "Hours", "Notes"}

// TotalsColumns is the header row of the totals-only report.
var TotalsColumns = []string{"Full Name", "Total Hours"}

const (
	detailSheet = "Entries"
	totalsSheet = "Totals"
)

// DetailXLSX builds the per-entry workbook.
func DetailXLSX(rows []report.Row) ([]byte, error) {
	cells := make([][]any, len(rows))
	for i, r := range rows {
		cells[i] = []any{r.FullName, r.Date, r.Event, r.Start, r.End, r.Hours, r.Notes}
	}
	return workbook(detailSheet, DetailColumns, cells)
}

// TotalsXLSX builds the per-person totals workbook.
func TotalsXLSX(totals []report.Total) ([]byte, error) {
	cells := make([][]any, len(totals))
	for i, t := range totals {
		cells[i] = []any{t.FullName, t.Hours}
	}
	return workbook(totalsSheet, TotalsColumns, cells)
}

func workbook(sheet string, header []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for i, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// DetailCSV renders the per-entry report as CSV, the format the earliest
// version of this system kept on disk. Used by the CLI exporter.
func DetailCSV(rows []report.Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(DetailColumns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.FullName, r.Date, r.Event, r.Start, r.End,
			strconv.FormatFloat(r.Hours, 'f', 2, 64), r.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
