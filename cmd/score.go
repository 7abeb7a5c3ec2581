package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helix-bio/formulation-cli/internal/config"
	"github.com/helix-bio/formulation-cli/internal/designio"
	"github.com/helix-bio/formulation-cli/internal/engine"
	"github.com/helix-bio/formulation-cli/internal/model"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one or more formulation designs",
	Long: `Score candidate nanoparticle formulations.

A design is supplied either inline via flags (--size, --charge,
--encapsulation plus optional parameters) or from a file (--input) holding
JSON, CSV, or XLSX designs. Output includes the delivery/toxicity/cost
impact scores, the composite overall score, design recommendations, and the
regulatory-readiness checklist.

Examples:
  # Score a single design from flags
  score --size 100 --charge 5 --encapsulation 85

  # Full parameter set with material
  score --size 95 --charge -8 --encapsulation 92 --pdi 0.12 --material "Lipid NP"

  # Score a file of designs, ranked, top 20 as CSV
  score --input designs.csv --limit 20 --format csv --output ranked.csv

  # Custom delivery weights
  score --input designs.json --weights aggressive.yaml`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("name", "", "design name")
	f.Float64("size", 0, "core particle size in nm (required inline)")
	f.Float64("charge", 0, "zeta potential in mV (required inline)")
	f.Float64("encapsulation", 0, "encapsulation efficiency percent (required inline)")
	f.Float64("pdi", 0, "polydispersity index (default 0.15)")
	f.Float64("hydrodynamic", 0, "hydrodynamic size in nm (default size*1.2)")
	f.Float64("stability", 0, "stability percent (default 85)")
	f.Float64("surface-area", 0, "surface area in m²/g (default 250)")
	f.Float64("degradation", 0, "degradation time in days (default 30)")
	f.String("material", "", "carrier material (e.g. \"Lipid NP\", \"PLGA\")")
	f.String("input", "", "input file of designs (.json, .csv, or .xlsx)")
	f.String("weights", "", "weight-profile YAML file")
	f.Float64("min-overall", 0, "overall score pass threshold (overrides config)")
	f.Int("limit", 0, "maximum number of results (0=use config default)")
	f.String("output", "", "output file path (default: stdout)")
	f.String("format", "table", "output format: table, csv, json, or xlsx")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")

	if format != "table" && format != "csv" && format != "json" && format != "xlsx" {
		return eris.Errorf("score: --format must be table, csv, json, or xlsx (got %q)", format)
	}

	engineCfg, err := resolveEngineConfig(cmd, cfg.Engine)
	if err != nil {
		return err
	}

	// Inline single-design mode.
	if input == "" {
		design, err := designFromFlags(cmd)
		if err != nil {
			return err
		}
		ev, err := engine.Evaluate(design, engineCfg)
		if err != nil {
			return eris.Wrap(err, "score: evaluate design")
		}
		if format != "table" {
			return outputResults([]engine.Evaluation{ev}, format, outputPath)
		}
		printEvaluation(&ev)
		return nil
	}

	designs, err := designio.ReadDesignsFile(input)
	if err != nil {
		return eris.Wrapf(err, "score: read %s", input)
	}

	filters := batchFiltersFromFlags(cmd, engineCfg)
	zap.L().Info("scoring designs",
		zap.Int("designs", len(designs)),
		zap.Float64("min_overall", filters.MinOverall),
		zap.Int("limit", filters.Limit),
	)

	results, err := engine.EvaluateBatch(designs, engineCfg, filters)
	if err != nil {
		return eris.Wrap(err, "score: evaluate batch")
	}

	if err := outputResults(results, format, outputPath); err != nil {
		return err
	}
	printResultSummary(results)
	return nil
}

// resolveEngineConfig applies the weight-profile file (if any) and
// validates the resulting config.
func resolveEngineConfig(cmd *cobra.Command, base config.EngineConfig) (config.EngineConfig, error) {
	c := base
	if profile, _ := cmd.Flags().GetString("weights"); profile != "" {
		loaded, err := engine.LoadWeightProfile(profile, c)
		if err != nil {
			return c, err
		}
		c = loaded
	}
	if err := engine.ValidateConfig(c); err != nil {
		return c, err
	}
	return c, nil
}

func batchFiltersFromFlags(cmd *cobra.Command, engineCfg config.EngineConfig) *engine.BatchFilters {
	filters := &engine.BatchFilters{
		MinOverall: engineCfg.MinOverall,
		Limit:      engineCfg.MaxDesigns,
	}
	if v, _ := cmd.Flags().GetFloat64("min-overall"); v > 0 {
		filters.MinOverall = v
	}
	if v, _ := cmd.Flags().GetInt("limit"); v > 0 {
		filters.Limit = v
	}
	return filters
}

// designFromFlags builds a design from inline flags. Optional parameters
// are only set when their flag was actually passed, so engine defaults
// still apply.
func designFromFlags(cmd *cobra.Command) (model.Design, error) {
	f := cmd.Flags()

	var missing []string
	for _, name := range []string{"size", "charge", "encapsulation"} {
		if !f.Changed(name) {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return model.Design{}, eris.Errorf("score: missing required parameter: %s", strings.Join(missing, ", "))
	}

	var d model.Design
	d.Name, _ = f.GetString("name")
	d.Size, _ = f.GetFloat64("size")
	d.Charge, _ = f.GetFloat64("charge")
	d.Encapsulation, _ = f.GetFloat64("encapsulation")
	d.Material, _ = f.GetString("material")

	optional := map[string]**float64{
		"pdi":          &d.PDI,
		"hydrodynamic": &d.HydrodynamicSize,
		"stability":    &d.Stability,
		"surface-area": &d.SurfaceArea,
		"degradation":  &d.DegradationTime,
	}
	for name, dest := range optional {
		if f.Changed(name) {
			v, _ := f.GetFloat64(name)
			*dest = &v
		}
	}

	if err := d.Validate(); err != nil {
		return model.Design{}, err
	}
	return d, nil
}

func printEvaluation(ev *engine.Evaluation) {
	name := ev.Design.Name
	if name == "" {
		name = "(unnamed design)"
	}
	fmt.Printf("Design:   %s\n", name)
	fmt.Printf("Delivery: %.1f\n", ev.Impact.Delivery)
	fmt.Printf("Toxicity: %.2f / 10\n", ev.Impact.Toxicity)
	fmt.Printf("Cost:     %.1f / 100\n", ev.Impact.Cost)
	fmt.Printf("Overall:  %.1f / 100\n", ev.Overall)
	fmt.Printf("Passed:   %v\n", ev.Passed)

	if len(ev.Components) > 0 {
		fmt.Println("\nDelivery components:")
		for _, k := range []string{"size", "charge", "encapsulation", "pdi", "hydrodynamic", "stability"} {
			fmt.Printf("  %-15s %.2f\n", k, ev.Components[k])
		}
	}

	fmt.Println("\nRecommendations:")
	for _, rec := range ev.Recommendations {
		fmt.Printf("  [%-6s] %s\n", rec.Severity, rec.Message)
	}

	fmt.Printf("\nRegulatory readiness: %.1f%% (%d/%d)\n",
		ev.Checklist.PassPct, ev.Checklist.Passed, ev.Checklist.Total)
	for _, item := range ev.Checklist.Items {
		mark := "PASS"
		if !item.Passed {
			mark = "FAIL"
		}
		fmt.Printf("  [%s] %s\n", mark, item.Name)
	}
}

func printResultSummary(results []engine.Evaluation) {
	if len(results) == 0 {
		fmt.Println("No results.")
		return
	}
	var passed, total int
	var sumScore float64
	var maxScore, minScore float64
	minScore = 101
	for _, r := range results {
		total++
		sumScore += r.Overall
		if r.Overall > maxScore {
			maxScore = r.Overall
		}
		if r.Overall < minScore {
			minScore = r.Overall
		}
		if r.Passed {
			passed++
		}
	}
	fmt.Printf("\n--- Summary ---\n")
	fmt.Printf("Total scored:  %d\n", total)
	fmt.Printf("Passed:        %d (%.1f%%)\n", passed, float64(passed)/float64(total)*100)
	fmt.Printf("Score range:   %.1f - %.1f\n", minScore, maxScore)
	fmt.Printf("Average score: %.1f\n", sumScore/float64(total))
}

func outputResults(results []engine.Evaluation, format, outputPath string) error {
	switch format {
	case "json":
		return writeEvaluationsJSON(outputPath, results)
	case "csv":
		w, closeFn, err := openOutput(outputPath)
		if err != nil {
			return err
		}
		defer closeFn()
		return designio.WriteResultsCSV(w, results)
	case "table":
		w, closeFn, err := openOutput(outputPath)
		if err != nil {
			return err
		}
		defer closeFn()
		return writeResultTable(w, results)
	case "xlsx":
		if outputPath == "" {
			return eris.New("xlsx format requires --output")
		}
		return designio.WriteResultsXLSX(outputPath, designio.ResultHeader(), designio.ResultRows(results))
	default:
		return eris.Errorf("unsupported format %q", format)
	}
}

func openOutput(outputPath string) (*os.File, func(), error) {
	if outputPath == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create output file %s", outputPath)
	}
	return f, func() { _ = f.Close() }, nil
}

func writeEvaluationsJSON(outputPath string, results []engine.Evaluation) error {
	w, closeFn, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeFn()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return eris.Wrap(err, "encode results json")
	}
	return nil
}

func writeResultTable(w *os.File, results []engine.Evaluation) error {
	header := fmt.Sprintf("%-5s %-30s %8s %8s %7s %9s %7s %6s\n",
		"Rank", "Design", "Size", "Delivery", "Tox", "Cost", "Overall", "Pass")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 88)); err != nil {
		return eris.Wrap(err, "write table separator")
	}

	for _, r := range results {
		name := r.Design.Name
		if name == "" {
			name = "(unnamed)"
		}
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		line := fmt.Sprintf("%-5d %-30s %8.1f %8.1f %7.2f %9.1f %7.1f %6v\n",
			r.Rank, name, r.Design.Size, r.Impact.Delivery, r.Impact.Toxicity,
			r.Impact.Cost, r.Overall, r.Passed)
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "write table row")
		}
	}
	return nil
}
