// Package engine implements the formulation scoring and evaluation engine:
// delivery/toxicity/cost impact scoring, design recommendations, parameter
// validation, the regulatory checklist, and composite ranking.
package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/helix-bio/formulation-cli/internal/config"
)

// DefaultEngineConfig returns a config.EngineConfig with the standard
// delivery weights. Weights sum to 1.0.
func DefaultEngineConfig() config.EngineConfig {
	return config.EngineConfig{
		// Delivery sub-score weights (sum = 1.0).
		SizeWeight:          0.25,
		ChargeWeight:        0.20,
		EncapsulationWeight: 0.25,
		PDIWeight:           0.15,
		HydrodynamicWeight:  0.10,
		StabilityWeight:     0.05,

		// Batch thresholds.
		MinOverall: 60,
		MaxDesigns: 500,
	}
}

// WeightSum returns the sum of the delivery sub-score weights.
func WeightSum(c config.EngineConfig) float64 {
	return c.SizeWeight + c.ChargeWeight + c.EncapsulationWeight +
		c.PDIWeight + c.HydrodynamicWeight + c.StabilityWeight
}

// ValidateConfig checks that an EngineConfig is internally consistent.
func ValidateConfig(c config.EngineConfig) error {
	var errs []string

	weights := map[string]float64{
		"size_weight":          c.SizeWeight,
		"charge_weight":        c.ChargeWeight,
		"encapsulation_weight": c.EncapsulationWeight,
		"pdi_weight":           c.PDIWeight,
		"hydrodynamic_weight":  c.HydrodynamicWeight,
		"stability_weight":     c.StabilityWeight,
	}
	for name, w := range weights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	sum := WeightSum(c)
	if sum <= 0 {
		errs = append(errs, "weight sum must be > 0")
	}
	if math.Abs(sum-1.0) > 0.01 {
		errs = append(errs, fmt.Sprintf("weights should sum to 1.0, got %.3f", sum))
	}

	if c.MinOverall < 0 || c.MinOverall > 100 {
		errs = append(errs, "min_overall must be between 0 and 100")
	}
	if c.MaxDesigns < 0 {
		errs = append(errs, "max_designs must be >= 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("engine: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
