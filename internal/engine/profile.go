package engine

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/helix-bio/formulation-cli/internal/config"
)

// WeightProfile is an operator-supplied override for the delivery weights,
// loaded from a standalone YAML file. Nil fields keep the base config's
// value so a profile can override a single weight.
type WeightProfile struct {
	Size          *float64 `yaml:"size"`
	Charge        *float64 `yaml:"charge"`
	Encapsulation *float64 `yaml:"encapsulation"`
	PDI           *float64 `yaml:"pdi"`
	Hydrodynamic  *float64 `yaml:"hydrodynamic"`
	Stability     *float64 `yaml:"stability"`

	MinOverall *float64 `yaml:"min_overall"`
}

type profileFile struct {
	Weights WeightProfile `yaml:"weights"`
}

// LoadWeightProfile reads a weight-profile YAML file and returns the base
// config with the profile's overrides applied and validated.
func LoadWeightProfile(path string, base config.EngineConfig) (config.EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, eris.Wrapf(err, "engine: read weight profile %s", path)
	}

	// The YAML has a top-level "weights" key.
	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return base, eris.Wrapf(err, "engine: parse weight profile %s", path)
	}

	cfg := ApplyProfile(base, pf.Weights)
	if err := ValidateConfig(cfg); err != nil {
		return base, eris.Wrapf(err, "engine: weight profile %s", path)
	}
	return cfg, nil
}

// ApplyProfile overlays non-nil profile fields onto a base config.
func ApplyProfile(base config.EngineConfig, p WeightProfile) config.EngineConfig {
	c := base
	if p.Size != nil {
		c.SizeWeight = *p.Size
	}
	if p.Charge != nil {
		c.ChargeWeight = *p.Charge
	}
	if p.Encapsulation != nil {
		c.EncapsulationWeight = *p.Encapsulation
	}
	if p.PDI != nil {
		c.PDIWeight = *p.PDI
	}
	if p.Hydrodynamic != nil {
		c.HydrodynamicWeight = *p.Hydrodynamic
	}
	if p.Stability != nil {
		c.StabilityWeight = *p.Stability
	}
	if p.MinOverall != nil {
		c.MinOverall = *p.MinOverall
	}
	return c
}
