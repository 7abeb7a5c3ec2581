// Package model defines the formulation design record shared across the CLI.
package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"
)

// Defaults applied when an optional design parameter is absent.
const (
	DefaultPDI             = 0.15
	DefaultStability       = 85
	DefaultSurfaceArea     = 250
	DefaultDegradationDays = 30

	// HydrodynamicFactor estimates hydrodynamic size from core size when
	// no DLS measurement is supplied.
	HydrodynamicFactor = 1.2
)

// ApprovedMaterials are carrier materials accepted for medical use.
var ApprovedMaterials = []string{"Lipid NP", "PLGA"}

// Design is a candidate nanoparticle drug-delivery formulation.
// Size, Charge, and Encapsulation are required; the pointer fields are
// optional measurements that fall back to documented defaults when nil.
type Design struct {
	Name          string  `json:"name,omitempty"`
	Size          float64 `json:"size_nm"`            // core diameter, nm
	Charge        float64 `json:"charge_mv"`          // zeta potential, mV
	Encapsulation float64 `json:"encapsulation_pct"`  // payload efficiency, percent

	PDI              *float64 `json:"pdi,omitempty"`              // polydispersity index
	HydrodynamicSize *float64 `json:"hydrodynamic_nm,omitempty"`  // DLS size, nm
	Stability        *float64 `json:"stability_pct,omitempty"`    // colloidal stability, percent
	SurfaceArea      *float64 `json:"surface_area,omitempty"`     // m²/g
	DegradationTime  *float64 `json:"degradation_days,omitempty"` // days
	Material         string   `json:"material,omitempty"`
}

// Resolved is a Design with every optional parameter filled in.
type Resolved struct {
	Name            string
	Size            float64
	Charge          float64
	Encapsulation   float64
	PDI             float64
	Hydrodynamic    float64
	Stability       float64
	SurfaceArea     float64
	DegradationDays float64
	Material        string
}

// Resolve applies defaults to the optional parameters. The hydrodynamic
// default is derived from the core size.
func (d Design) Resolve() Resolved {
	return Resolved{
		Name:            d.Name,
		Size:            d.Size,
		Charge:          d.Charge,
		Encapsulation:   d.Encapsulation,
		PDI:             orDefault(d.PDI, DefaultPDI),
		Hydrodynamic:    orDefault(d.HydrodynamicSize, d.Size*HydrodynamicFactor),
		Stability:       orDefault(d.Stability, DefaultStability),
		SurfaceArea:     orDefault(d.SurfaceArea, DefaultSurfaceArea),
		DegradationDays: orDefault(d.DegradationTime, DefaultDegradationDays),
		Material:        d.Material,
	}
}

// Validate rejects NaN or infinite parameter values. Presence of the
// required fields is checked at the ingestion boundary, where "absent" is
// still representable.
func (d Design) Validate() error {
	checks := []struct {
		name  string
		value *float64
	}{
		{"size_nm", &d.Size},
		{"charge_mv", &d.Charge},
		{"encapsulation_pct", &d.Encapsulation},
		{"pdi", d.PDI},
		{"hydrodynamic_nm", d.HydrodynamicSize},
		{"stability_pct", d.Stability},
		{"surface_area", d.SurfaceArea},
		{"degradation_days", d.DegradationTime},
	}

	var bad []string
	for _, c := range checks {
		if c.value == nil {
			continue
		}
		if math.IsNaN(*c.value) || math.IsInf(*c.value, 0) {
			bad = append(bad, fmt.Sprintf("%s=%v", c.name, *c.value))
		}
	}
	if len(bad) > 0 {
		return eris.Errorf("model: invalid parameter value: %s", strings.Join(bad, ", "))
	}
	return nil
}

// MaterialApproved reports whether the design's material is on the
// approved-materials list.
func (d Design) MaterialApproved() bool {
	for _, m := range ApprovedMaterials {
		if d.Material == m {
			return true
		}
	}
	return false
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// Float64Ptr returns a pointer to v. Convenience for building designs with
// explicit optional parameters.
func Float64Ptr(v float64) *float64 { return &v }
