package designio

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/helix-bio/formulation-cli/internal/model"
)

// XLSXOptions configures the XLSX design reader.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
	SkipRows   int    // extra leading rows before the header row
}

// ReadDesignsXLSX reads formulation designs from an XLSX sheet using the
// same column schema as ParseDesignsCSV.
func ReadDesignsXLSX(path string, opts XLSXOptions) ([]model.Design, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "designio: open xlsx")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for i, row := range sheet.Rows {
		if i < opts.SkipRows {
			continue
		}
		rows = append(rows, rowToStrings(row))
	}

	return designsFromRows(rows)
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("designio: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("designio: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

// WriteResultsXLSX writes evaluation report rows to an XLSX file with a
// single "Results" sheet. Rows come pre-rendered from ResultRows so the
// CSV and XLSX exports stay column-identical.
func WriteResultsXLSX(path string, header []string, rows [][]string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Results")
	if err != nil {
		return eris.Wrap(err, "designio: add xlsx sheet")
	}

	hr := sheet.AddRow()
	for _, col := range header {
		hr.AddCell().Value = col
	}
	for _, row := range rows {
		r := sheet.AddRow()
		for _, cell := range row {
			r.AddCell().Value = cell
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "designio: save xlsx %s", path)
	}
	return nil
}

// FormatFloat renders a float for report cells with two decimal places.
func FormatFloat(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
