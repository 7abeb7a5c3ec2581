// Package designio reads and writes formulation designs and evaluation
// reports in CSV, XLSX, and JSON form.
package designio

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/helix-bio/formulation-cli/internal/model"
)

// Required design columns. Optional columns: pdi, hydrodynamic_nm,
// stability_pct, surface_area, degradation_days, material, name.
var requiredColumns = []string{"size_nm", "charge_mv", "encapsulation_pct"}

// ParseDesignsCSV reads a header-driven CSV of formulation designs.
// Blank cells in optional columns leave the parameter unset so the engine
// applies its documented defaults.
func ParseDesignsCSV(path string) ([]model.Design, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "designio: open csv")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "designio: read csv")
	}

	return designsFromRows(records)
}

// designsFromRows converts header-plus-data rows into designs. Shared by
// the CSV and XLSX readers.
func designsFromRows(rows [][]string) ([]model.Design, error) {
	if len(rows) < 2 {
		return nil, eris.New("designio: no data rows")
	}

	header := rows[0]
	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, eris.Errorf("designio: missing required column %q", col)
		}
	}

	var designs []model.Design
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after header

		// Skip fully blank rows (trailing XLSX rows are often empty).
		if isBlankRow(row) {
			continue
		}

		d, err := designFromRow(row, colIdx)
		if err != nil {
			return nil, eris.Wrapf(err, "designio: row %d", rowNum)
		}
		designs = append(designs, d)
	}

	if len(designs) == 0 {
		return nil, eris.New("designio: no valid designs found")
	}
	return designs, nil
}

func designFromRow(row []string, colIdx map[string]int) (model.Design, error) {
	var d model.Design
	d.Name = getCol(row, colIdx, "name")
	d.Material = getCol(row, colIdx, "material")

	for _, col := range requiredColumns {
		if getCol(row, colIdx, col) == "" {
			return model.Design{}, eris.Errorf("missing required parameter %q", col)
		}
	}

	var err error
	if d.Size, err = parseFloat(row, colIdx, "size_nm"); err != nil {
		return model.Design{}, err
	}
	if d.Charge, err = parseFloat(row, colIdx, "charge_mv"); err != nil {
		return model.Design{}, err
	}
	if d.Encapsulation, err = parseFloat(row, colIdx, "encapsulation_pct"); err != nil {
		return model.Design{}, err
	}

	optional := []struct {
		col  string
		dest **float64
	}{
		{"pdi", &d.PDI},
		{"hydrodynamic_nm", &d.HydrodynamicSize},
		{"stability_pct", &d.Stability},
		{"surface_area", &d.SurfaceArea},
		{"degradation_days", &d.DegradationTime},
	}
	for _, o := range optional {
		if getCol(row, colIdx, o.col) == "" {
			continue
		}
		v, err := parseFloat(row, colIdx, o.col)
		if err != nil {
			return model.Design{}, err
		}
		*o.dest = &v
	}

	if err := d.Validate(); err != nil {
		return model.Design{}, err
	}
	return d, nil
}

func parseFloat(row []string, colIdx map[string]int, col string) (float64, error) {
	raw := getCol(row, colIdx, col)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, eris.Errorf("invalid parameter value %q for %s", raw, col)
	}
	return v, nil
}

// getCol safely retrieves a column value from a row.
func getCol(row []string, colIdx map[string]int, col string) string {
	idx, ok := colIdx[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
