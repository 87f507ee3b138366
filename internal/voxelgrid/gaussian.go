package voxelgrid

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultGaussianSamples is the half-profile table size used by New unless
// a caller overrides it via Config.
const DefaultGaussianSamples = 10

// GaussianHalfLookup builds a non-increasing n-element table sampling
// exp(-t^2) at t = i/n for i in [0, n). It is precomputed once at grid
// construction and indexed by a lateral offset fraction during ray
// insertion (spec.md §4.4, §9).
func GaussianHalfLookup(n int) []float64 {
	if n <= 0 {
		return nil
	}
	t := make([]float64, n)
	floats.Span(t, 0, float64(n-1)/float64(n))
	out := make([]float64, n)
	for i, ti := range t {
		out[i] = math.Exp(-ti * ti)
	}
	return out
}

// sampleGaussian looks up the half-profile table at a saturating index,
// clamping idx into [0, len(table)-1].
func sampleGaussian(table []float64, idx int) float64 {
	if len(table) == 0 {
		return 0
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(table) {
		idx = len(table) - 1
	}
	return table[idx]
}
