package engine

import "math"

// OverallScore folds the three impact scores into one 0-100 composite for
// cross-design ranking. Higher is uniformly better.
func OverallScore(impact Impact) float64 {
	score := impact.Delivery*0.6 + (10-impact.Toxicity)*3 + (100-impact.Cost)*0.1
	return clip(score, 0, 100)
}

func clip(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
