package designio

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rotisserie/eris"

	"github.com/helix-bio/formulation-cli/internal/engine"
)

// ResultHeader is the column layout shared by the CSV and XLSX exports.
func ResultHeader() []string {
	return []string{
		"rank", "name", "size_nm", "charge_mv", "encapsulation_pct",
		"delivery", "toxicity", "cost", "overall", "checklist_pct", "passed",
	}
}

// ResultRows renders evaluations into report cells matching ResultHeader.
func ResultRows(evals []engine.Evaluation) [][]string {
	rows := make([][]string, 0, len(evals))
	for _, ev := range evals {
		rows = append(rows, []string{
			fmt.Sprintf("%d", ev.Rank),
			ev.Design.Name,
			FormatFloat(ev.Design.Size),
			FormatFloat(ev.Design.Charge),
			FormatFloat(ev.Design.Encapsulation),
			FormatFloat(ev.Impact.Delivery),
			FormatFloat(ev.Impact.Toxicity),
			FormatFloat(ev.Impact.Cost),
			FormatFloat(ev.Overall),
			FormatFloat(ev.Checklist.PassPct),
			fmt.Sprintf("%v", ev.Passed),
		})
	}
	return rows
}

// WriteResultsCSV writes evaluation results as CSV.
func WriteResultsCSV(w io.Writer, evals []engine.Evaluation) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(ResultHeader()); err != nil {
		return eris.Wrap(err, "designio: write csv header")
	}
	for _, row := range ResultRows(evals) {
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "designio: write csv row")
		}
	}
	return nil
}
