package main

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/helix-bio/formulation-cli/internal/designio"
	"github.com/helix-bio/formulation-cli/internal/engine"
	"github.com/helix-bio/formulation-cli/internal/model"
)

var (
	batchInput       string
	batchSheet       string
	batchLimit       int
	batchConcurrency int
	batchMinOverall  float64
	batchOutput      string
	batchFormat      string
	batchWeights     string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate a file of formulation designs concurrently",
	Long: `Reads designs from a CSV, XLSX, or JSON file, evaluates each design
(impact scores, recommendations, regulatory checklist), and emits a ranked
report. Designs are independent, so evaluation is parallelized across a
worker pool.

Examples:
  # Rank a CSV of candidate designs
  formulation-cli batch --input designs.csv

  # XLSX input, specific sheet, top 50 to an XLSX report
  formulation-cli batch --input screen.xlsx --sheet Candidates --limit 50 \
      --format xlsx --output ranked.xlsx

  # Stricter pass threshold with custom weights
  formulation-cli batch --input designs.csv --min-overall 75 --weights lipid.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		runID := uuid.NewString()
		log := zap.L().With(zap.String("run_id", runID))

		var designs []model.Design
		var err error
		if batchSheet != "" {
			designs, err = designio.ReadDesignsXLSX(batchInput, designio.XLSXOptions{SheetName: batchSheet})
		} else {
			designs, err = designio.ReadDesignsFile(batchInput)
		}
		if err != nil {
			return eris.Wrap(err, "batch: read designs")
		}
		log.Info("parsed designs", zap.Int("designs", len(designs)))

		engineCfg := cfg.Engine
		if batchWeights != "" {
			engineCfg, err = engine.LoadWeightProfile(batchWeights, engineCfg)
			if err != nil {
				return err
			}
		}
		if err := engine.ValidateConfig(engineCfg); err != nil {
			return err
		}

		minOverall := engineCfg.MinOverall
		if batchMinOverall > 0 {
			minOverall = batchMinOverall
		}

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.Concurrency
		}

		// Evaluate designs concurrently; each evaluation is pure and
		// independent, so no coordination beyond collecting results.
		g, _ := errgroup.WithContext(cmd.Context())
		g.SetLimit(concurrency)

		var mu sync.Mutex
		var results []engine.Evaluation

		for i, design := range designs {
			i, design := i, design
			g.Go(func() error {
				ev, evalErr := engine.Evaluate(design, engineCfg)
				if evalErr != nil {
					return eris.Wrapf(evalErr, "batch: design %d (%s)", i, design.Name)
				}
				ev.Passed = ev.Overall >= minOverall
				mu.Lock()
				results = append(results, ev)
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		engine.RankEvaluations(results)
		limit := engineCfg.MaxDesigns
		if batchLimit > 0 {
			limit = batchLimit
		}
		if limit > 0 && len(results) > limit {
			results = results[:limit]
		}

		log.Info("batch evaluation complete",
			zap.Int("total", len(designs)),
			zap.Int("reported", len(results)),
			zap.Float64("min_overall", minOverall),
		)

		if err := outputResults(results, batchFormat, batchOutput); err != nil {
			return err
		}
		printResultSummary(results)
		return nil
	},
}

func init() {
	f := batchCmd.Flags()
	f.StringVar(&batchInput, "input", "", "input file of designs (.json, .csv, or .xlsx)")
	f.StringVar(&batchSheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	f.IntVar(&batchLimit, "limit", 0, "maximum number of results (0=use config default)")
	f.IntVar(&batchConcurrency, "concurrency", 0, "evaluation workers (default from config)")
	f.Float64Var(&batchMinOverall, "min-overall", 0, "overall score pass threshold (overrides config)")
	f.StringVar(&batchOutput, "output", "", "output file path (default: stdout)")
	f.StringVar(&batchFormat, "format", "table", "output format: table, csv, json, or xlsx")
	f.StringVar(&batchWeights, "weights", "", "weight-profile YAML file")
	_ = batchCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(batchCmd)
}
