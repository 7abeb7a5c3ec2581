package engine

import (
	"math"

	"github.com/helix-bio/formulation-cli/internal/model"
)

// Severity grades a recommendation.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityPass   Severity = "pass"
)

// Recommendation is a single piece of design guidance.
type Recommendation struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Recommendations derives design guidance from out-of-range parameters.
// Categories are evaluated in fixed order (size, charge, encapsulation)
// with at most one recommendation each; a lone affirmative entry is
// returned when every parameter is in range.
//
// The size tolerance here (80-150nm) is deliberately wider than the scoring
// optimum (80-120nm): sizes in the 120-150nm band lose delivery score but
// are not flagged for rework.
func Recommendations(d model.Design) []Recommendation {
	var recs []Recommendation

	if d.Size < 80 {
		recs = append(recs, Recommendation{
			Message:  "Increase size to 80-120nm for better stability and circulation",
			Severity: SeverityHigh,
		})
	} else if d.Size > 150 {
		recs = append(recs, Recommendation{
			Message:  "Reduce size to 80-120nm for better cellular uptake",
			Severity: SeverityHigh,
		})
	}

	if math.Abs(d.Charge) > 15 {
		recs = append(recs, Recommendation{
			Message:  "Lower surface charge to within ±10mV for reduced toxicity",
			Severity: SeverityHigh,
		})
	} else if math.Abs(d.Charge) > 10 {
		recs = append(recs, Recommendation{
			Message:  "Reduce charge closer to neutral for optimal safety",
			Severity: SeverityMedium,
		})
	}

	if d.Encapsulation < 70 {
		recs = append(recs, Recommendation{
			Message:  "Improve encapsulation to >80% for better drug delivery efficiency",
			Severity: SeverityHigh,
		})
	} else if d.Encapsulation < 85 {
		recs = append(recs, Recommendation{
			Message:  "Aim for >85% encapsulation for optimal performance",
			Severity: SeverityMedium,
		})
	}

	if len(recs) == 0 {
		recs = append(recs, Recommendation{
			Message:  "Excellent design: all parameters are within optimal ranges",
			Severity: SeverityPass,
		})
	}

	return recs
}
