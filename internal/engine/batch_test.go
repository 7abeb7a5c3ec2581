package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helix-bio/formulation-cli/internal/model"
)

func TestEvaluate(t *testing.T) {
	cfg := DefaultEngineConfig()

	ev, err := Evaluate(model.Design{Name: "candidate-a", Size: 100, Charge: 5, Encapsulation: 85}, cfg)
	require.NoError(t, err)

	assert.Equal(t, "candidate-a", ev.Design.Name)
	assert.InDelta(t, 92.0, ev.Impact.Delivery, 0.001)
	assert.InDelta(t, 87.35, ev.Overall, 0.001)
	assert.True(t, ev.Passed)
	assert.Len(t, ev.Recommendations, 1)
	assert.Equal(t, 8, ev.Checklist.Total)
	assert.Contains(t, ev.Components, "hydrodynamic")
}

func TestEvaluateBatchRanking(t *testing.T) {
	cfg := DefaultEngineConfig()

	designs := []model.Design{
		{Name: "poor", Size: 300, Charge: 40, Encapsulation: 30},
		{Name: "great", Size: 100, Charge: 0, Encapsulation: 95},
		{Name: "middling", Size: 140, Charge: 15, Encapsulation: 75},
	}

	results, err := EvaluateBatch(designs, cfg, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "great", results[0].Design.Name)
	assert.Equal(t, "poor", results[2].Design.Name)
	for i, r := range results {
		assert.Equal(t, i+1, r.Rank)
	}
	assert.GreaterOrEqual(t, results[0].Overall, results[1].Overall)
	assert.GreaterOrEqual(t, results[1].Overall, results[2].Overall)
}

func TestEvaluateBatchFilters(t *testing.T) {
	cfg := DefaultEngineConfig()
	designs := []model.Design{
		{Name: "a", Size: 100, Charge: 0, Encapsulation: 95},
		{Name: "b", Size: 100, Charge: 5, Encapsulation: 85},
		{Name: "c", Size: 250, Charge: 35, Encapsulation: 40},
	}

	t.Run("limit truncates after ranking", func(t *testing.T) {
		results, err := EvaluateBatch(designs, cfg, &BatchFilters{Limit: 2})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "a", results[0].Design.Name)
	})

	t.Run("min overall marks passed without dropping", func(t *testing.T) {
		results, err := EvaluateBatch(designs, cfg, &BatchFilters{MinOverall: 85})
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.True(t, results[0].Passed)
		assert.False(t, results[2].Passed)
	})
}

func TestEvaluateBatchInvalidDesign(t *testing.T) {
	cfg := DefaultEngineConfig()
	designs := []model.Design{
		{Name: "ok", Size: 100, Charge: 0, Encapsulation: 90},
		{Name: "broken", Size: math.NaN(), Charge: 0, Encapsulation: 90},
	}

	_, err := EvaluateBatch(designs, cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestRankEvaluations(t *testing.T) {
	evals := []Evaluation{
		{Overall: 30},
		{Overall: 90},
		{Overall: 60},
	}
	RankEvaluations(evals)

	assert.Equal(t, 90.0, evals[0].Overall)
	assert.Equal(t, 60.0, evals[1].Overall)
	assert.Equal(t, 30.0, evals[2].Overall)
	assert.Equal(t, 1, evals[0].Rank)
	assert.Equal(t, 3, evals[2].Rank)
}
