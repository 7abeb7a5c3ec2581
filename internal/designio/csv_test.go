package designio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "designs.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseDesignsCSV(t *testing.T) {
	path := writeCSV(t, `name,size_nm,charge_mv,encapsulation_pct,pdi,material
alpha,100,5,85,0.12,Lipid NP
beta,95,-8,92,,PLGA
`)

	designs, err := ParseDesignsCSV(path)
	require.NoError(t, err)
	require.Len(t, designs, 2)

	assert.Equal(t, "alpha", designs[0].Name)
	assert.Equal(t, 100.0, designs[0].Size)
	assert.Equal(t, 5.0, designs[0].Charge)
	assert.Equal(t, 85.0, designs[0].Encapsulation)
	require.NotNil(t, designs[0].PDI)
	assert.InDelta(t, 0.12, *designs[0].PDI, 0.001)
	assert.Equal(t, "Lipid NP", designs[0].Material)

	// Blank optional cell → unset, so engine defaults apply.
	assert.Nil(t, designs[1].PDI)
	assert.Equal(t, "PLGA", designs[1].Material)
}

func TestParseDesignsCSVHeaderCaseInsensitive(t *testing.T) {
	path := writeCSV(t, `Name,Size_nm,Charge_mV,Encapsulation_pct
gamma,110,0,88
`)
	designs, err := ParseDesignsCSV(path)
	require.NoError(t, err)
	require.Len(t, designs, 1)
	assert.Equal(t, 110.0, designs[0].Size)
}

func TestParseDesignsCSVErrors(t *testing.T) {
	t.Run("missing required column", func(t *testing.T) {
		path := writeCSV(t, "name,size_nm,charge_mv\nx,100,5\n")
		_, err := ParseDesignsCSV(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `missing required column "encapsulation_pct"`)
	})

	t.Run("missing required cell", func(t *testing.T) {
		path := writeCSV(t, "size_nm,charge_mv,encapsulation_pct\n100,5,\n")
		_, err := ParseDesignsCSV(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required parameter")
		assert.Contains(t, err.Error(), "row 2")
	})

	t.Run("non-numeric value", func(t *testing.T) {
		path := writeCSV(t, "size_nm,charge_mv,encapsulation_pct\nbig,5,85\n")
		_, err := ParseDesignsCSV(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid parameter value")
	})

	t.Run("NaN rejected", func(t *testing.T) {
		path := writeCSV(t, "size_nm,charge_mv,encapsulation_pct\nNaN,5,85\n")
		_, err := ParseDesignsCSV(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid parameter value")
	})

	t.Run("header only", func(t *testing.T) {
		path := writeCSV(t, "size_nm,charge_mv,encapsulation_pct\n")
		_, err := ParseDesignsCSV(path)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseDesignsCSV(filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)
	})
}

func TestDesignsFromRowsSkipsBlankRows(t *testing.T) {
	rows := [][]string{
		{"size_nm", "charge_mv", "encapsulation_pct"},
		{"100", "5", "85"},
		{"", "", ""},
	}
	designs, err := designsFromRows(rows)
	require.NoError(t, err)
	assert.Len(t, designs, 1)
}
