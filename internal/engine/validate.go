package engine

import "math"

// Status classifies a parameter value against its optimal range.
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusBad     Status = "bad"
)

// ValidateParameter classifies value against the optimal range [lo, hi]:
// ok inside the range, warning within 20 absolute units of either bound,
// bad otherwise.
func ValidateParameter(param string, value, lo, hi float64) Status {
	_ = param // kept for call-site readability and future per-parameter rules
	if lo <= value && value <= hi {
		return StatusOK
	}
	if math.Abs(value-lo) < 20 || math.Abs(value-hi) < 20 {
		return StatusWarning
	}
	return StatusBad
}
