package engine

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/helix-bio/formulation-cli/internal/config"
	"github.com/helix-bio/formulation-cli/internal/model"
)

// Impact holds the three normalized impact scores for a design.
// Delivery is nominally 0-100 but is a raw weighted sum and can leave that
// range for extreme inputs; Toxicity and Cost are clamped to [0,10] and
// [0,100] at the final step.
type Impact struct {
	Delivery float64 `json:"delivery"`
	Toxicity float64 `json:"toxicity"`
	Cost     float64 `json:"cost"`
}

// ComputeImpact scores a design's delivery efficacy, toxicity, and
// production cost. Optional parameters fall back to their documented
// defaults. The only failure mode is an invalid (NaN/Inf) parameter.
func ComputeImpact(d model.Design, cfg config.EngineConfig) (Impact, error) {
	if err := d.Validate(); err != nil {
		return Impact{}, eris.Wrap(err, "engine: compute impact")
	}

	r := d.Resolve()
	components := ComponentScores(r)

	delivery := components["size"]*cfg.SizeWeight +
		components["charge"]*cfg.ChargeWeight +
		components["encapsulation"]*cfg.EncapsulationWeight +
		components["pdi"]*cfg.PDIWeight +
		components["hydrodynamic"]*cfg.HydrodynamicWeight +
		components["stability"]*cfg.StabilityWeight

	return Impact{
		Delivery: delivery,
		Toxicity: toxicity(r),
		Cost:     cost(r),
	}, nil
}

// ComponentScores returns the individual delivery sub-scores for a resolved
// design, keyed by component name. Each is on a 0-100 scale except
// encapsulation and stability, which pass through unclamped.
func ComponentScores(r model.Resolved) map[string]float64 {
	return map[string]float64{
		"size":          sizeScore(r.Size),
		"charge":        chargeScore(r.Charge),
		"encapsulation": r.Encapsulation,
		"pdi":           pdiScore(r.PDI),
		"hydrodynamic":  hydrodynamicScore(r.Size, r.Hydrodynamic),
		"stability":     r.Stability,
	}
}

// sizeScore is plateau-shaped: 100 inside the optimal 80-120nm band, a
// linear ramp up to it from below, and a linear decay above that reaches 0
// at 320nm.
func sizeScore(size float64) float64 {
	switch {
	case size >= 80 && size <= 120:
		return 100
	case size < 80:
		return (size / 80) * 100
	default:
		return math.Max(0, 100-(size-120)/2)
	}
}

// chargeScore plateaus at 100 for |charge| <= 10mV, then decays 3 points
// per mV, floored at 0.
func chargeScore(charge float64) float64 {
	if math.Abs(charge) <= 10 {
		return 100
	}
	return math.Max(0, 100-(math.Abs(charge)-10)*3)
}

// pdiScore rewards narrow size distributions; 0 for PDI >= 0.5.
func pdiScore(pdi float64) float64 {
	return math.Max(0, 100-pdi*200)
}

// hydrodynamicScore scores the hydrodynamic-to-core size ratio. A zero core
// size defaults the ratio to 1.0 rather than dividing.
func hydrodynamicScore(size, hydrodynamic float64) float64 {
	ratio := 1.0
	if size != 0 {
		ratio = hydrodynamic / size
	}
	if ratio >= 1.0 && ratio <= 1.3 {
		return 100
	}
	return math.Max(0, 100-math.Abs(ratio-1.15)*50)
}

// toxicity estimates a 0-10 toxicity index. The charge/size base term is
// capped at 10 before the PDI and degradation terms are added, then the
// total is capped again.
func toxicity(r model.Resolved) float64 {
	base := math.Min(10, math.Abs(r.Charge)/10+math.Max(0, math.Abs(r.Size-100))/50)
	total := base + r.PDI*2 + math.Max(0, (r.DegradationDays-30)/30)
	return math.Min(10, total)
}

// cost estimates a 0-100 relative production cost. Like toxicity, the
// encapsulation/size base term is capped before the remaining terms are
// added, and the total is capped again.
func cost(r model.Resolved) float64 {
	base := math.Min(100, (100-r.Encapsulation)*0.8+r.Size/4)
	total := base +
		r.SurfaceArea/20 +
		(0.2-math.Min(r.PDI, 0.2))*100 +
		math.Max(0, (r.DegradationDays-60)/10)
	return math.Min(100, total)
}
