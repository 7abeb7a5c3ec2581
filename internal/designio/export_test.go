package designio

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helix-bio/formulation-cli/internal/engine"
	"github.com/helix-bio/formulation-cli/internal/model"
)

func sampleEvaluations(t *testing.T) []engine.Evaluation {
	t.Helper()
	cfg := engine.DefaultEngineConfig()
	designs := []model.Design{
		{Name: "alpha", Size: 100, Charge: 5, Encapsulation: 85},
		{Name: "beta", Size: 250, Charge: 30, Encapsulation: 50},
	}
	evals, err := engine.EvaluateBatch(designs, cfg, nil)
	require.NoError(t, err)
	return evals
}

func TestResultRowsMatchHeader(t *testing.T) {
	evals := sampleEvaluations(t)
	header := ResultHeader()
	rows := ResultRows(evals)

	require.Len(t, rows, len(evals))
	for _, row := range rows {
		assert.Len(t, row, len(header))
	}

	// Ranked output: first row is rank 1 and the stronger design.
	assert.Equal(t, "1", rows[0][0])
	assert.Equal(t, "alpha", rows[0][1])
}

func TestWriteResultsCSV(t *testing.T) {
	evals := sampleEvaluations(t)

	var buf bytes.Buffer
	require.NoError(t, WriteResultsCSV(&buf, evals))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(evals)+1)
	assert.Equal(t, ResultHeader(), records[0])
	assert.Equal(t, "alpha", records[1][1])
	assert.Equal(t, "87.35", records[1][8])
}
