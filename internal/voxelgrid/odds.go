package voxelgrid

import "math"

// LogOdds converts a probability in (0, 1) to its log-odds representation.
// p values at or outside the open interval are clamped to avoid ±Inf.
func LogOdds(p float64) float64 {
	const eps = 1e-9
	if p < eps {
		p = eps
	} else if p > 1-eps {
		p = 1 - eps
	}
	return math.Log(p / (1 - p))
}

// LogOddsToProbability is the inverse of LogOdds (the logistic sigmoid).
func LogOddsToProbability(l float64) float64 {
	return 1 / (1 + math.Exp(-l))
}
