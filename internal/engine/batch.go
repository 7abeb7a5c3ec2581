package engine

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/helix-bio/formulation-cli/internal/config"
	"github.com/helix-bio/formulation-cli/internal/model"
)

// Evaluation holds the full engine output for a single design.
type Evaluation struct {
	Design          model.Design       `json:"design"`
	Components      map[string]float64 `json:"components"`
	Impact          Impact             `json:"impact"`
	Overall         float64            `json:"overall"`
	Recommendations []Recommendation   `json:"recommendations"`
	Checklist       ChecklistResult    `json:"checklist"`
	Rank            int                `json:"rank,omitempty"`
	Passed          bool               `json:"passed"`
}

// BatchFilters narrows and truncates batch evaluation results.
type BatchFilters struct {
	MinOverall float64 `json:"min_overall,omitempty"`
	Limit      int     `json:"limit,omitempty"`
}

// Evaluate runs the whole engine over one design: impact scores, overall
// composite, recommendations, and the regulatory checklist.
func Evaluate(d model.Design, cfg config.EngineConfig) (Evaluation, error) {
	impact, err := ComputeImpact(d, cfg)
	if err != nil {
		return Evaluation{}, err
	}

	overall := OverallScore(impact)
	return Evaluation{
		Design:          d,
		Components:      ComponentScores(d.Resolve()),
		Impact:          impact,
		Overall:         math.Round(overall*100) / 100, // 2 decimal places
		Recommendations: Recommendations(d),
		Checklist:       Checklist(d),
		Passed:          overall >= cfg.MinOverall,
	}, nil
}

// EvaluateBatch evaluates a set of designs and returns them ranked by
// overall score, best first. Filters default to the config's MinOverall
// and MaxDesigns; MinOverall only marks Passed, it does not drop rows.
func EvaluateBatch(designs []model.Design, cfg config.EngineConfig, filters *BatchFilters) ([]Evaluation, error) {
	minOverall := cfg.MinOverall
	if filters != nil && filters.MinOverall > 0 {
		minOverall = filters.MinOverall
	}

	var results []Evaluation
	for i, d := range designs {
		ev, err := Evaluate(d, cfg)
		if err != nil {
			return nil, eris.Wrapf(err, "engine: design %d (%s)", i, d.Name)
		}
		ev.Passed = ev.Overall >= minOverall
		results = append(results, ev)
	}

	RankEvaluations(results)

	limit := cfg.MaxDesigns
	if filters != nil && filters.Limit > 0 {
		limit = filters.Limit
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	zap.L().Info("engine: batch evaluation complete",
		zap.Int("designs_evaluated", len(designs)),
		zap.Int("designs_passed", countPassed(results)),
	)

	return results, nil
}

// RankEvaluations sorts evaluations descending by overall score and
// assigns 1-based ranks.
func RankEvaluations(evals []Evaluation) {
	sortByOverall(evals)
	for i := range evals {
		evals[i].Rank = i + 1
	}
}

// sortByOverall sorts Evaluations descending by overall score.
func sortByOverall(evals []Evaluation) {
	// Insertion sort is fine for typical batch sizes (<1000).
	for i := 1; i < len(evals); i++ {
		for j := i; j > 0 && evals[j].Overall > evals[j-1].Overall; j-- {
			evals[j], evals[j-1] = evals[j-1], evals[j]
		}
	}
}

func countPassed(evals []Evaluation) int {
	n := 0
	for i := range evals {
		if evals[i].Passed {
			n++
		}
	}
	return n
}
