package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/helix-bio/formulation-cli/internal/designio"
	"github.com/helix-bio/formulation-cli/internal/engine"
)

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Run the regulatory-readiness checklist for a design",
	Long: `Evaluates the fixed regulatory-readiness predicates (size, PDI,
charge, encapsulation, stability, approved material, degradation
characterization, sterilization) against a design and prints the pass
percentage.

Examples:
  checklist --size 100 --charge 0 --encapsulation 90 --material "Lipid NP"
  checklist --input design.json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		input, _ := cmd.Flags().GetString("input")

		if input == "" {
			design, err := designFromFlags(cmd)
			if err != nil {
				return err
			}
			printChecklist(design.Name, engine.Checklist(design))
			return nil
		}

		designs, err := designio.ReadDesignsFile(input)
		if err != nil {
			return eris.Wrapf(err, "checklist: read %s", input)
		}
		for i, d := range designs {
			if i > 0 {
				fmt.Println()
			}
			printChecklist(d.Name, engine.Checklist(d))
		}
		return nil
	},
}

func init() {
	f := checklistCmd.Flags()
	f.String("name", "", "design name")
	f.Float64("size", 0, "core particle size in nm")
	f.Float64("charge", 0, "zeta potential in mV")
	f.Float64("encapsulation", 0, "encapsulation efficiency percent")
	f.Float64("pdi", 0, "polydispersity index (default 0.15)")
	f.Float64("hydrodynamic", 0, "hydrodynamic size in nm (default size*1.2)")
	f.Float64("stability", 0, "stability percent (default 85)")
	f.Float64("surface-area", 0, "surface area in m²/g (default 250)")
	f.Float64("degradation", 0, "degradation time in days (default 30)")
	f.String("material", "", "carrier material")
	f.String("input", "", "input file of designs (.json, .csv, or .xlsx)")

	rootCmd.AddCommand(checklistCmd)
}

func printChecklist(name string, result engine.ChecklistResult) {
	if name == "" {
		name = "(unnamed design)"
	}
	fmt.Printf("Design: %s\n", name)
	fmt.Printf("Regulatory readiness: %.1f%% (%d/%d)\n", result.PassPct, result.Passed, result.Total)
	for _, item := range result.Items {
		mark := "PASS"
		if !item.Passed {
			mark = "FAIL"
		}
		fmt.Printf("  [%s] %s\n", mark, item.Name)
	}
}
