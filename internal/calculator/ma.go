package calculator

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RollingMean returns the mean of each trailing window. The first window-1
// positions use the shorter window that is available.
func RollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 0 {
		return out
	}
	for i := range values {
		out[i] = stat.Mean(values[windowStart(i, window):i+1], nil)
	}
	return out
}

// RollingStd returns the sample standard deviation of each trailing window,
// shrinking the window at the head. A single-element window yields 0.
func RollingStd(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 0 {
		return out
	}
	for i := range values {
		w := values[windowStart(i, window) : i+1]
		if len(w) < 2 {
			continue
		}
		out[i] = stat.StdDev(w, nil)
	}
	return out
}

// WeightedMean averages values with weights spaced linearly from 1 (oldest)
// to 2 (newest).
func WeightedMean(values []float64) float64 {
	switch len(values) {
	case 0:
		return 0
	case 1:
		return values[0]
	}
	weights := floats.Span(make([]float64, len(values)), 1, 2)
	return stat.Mean(values, weights)
}

func windowStart(i, window int) int {
	start := i - window + 1
	if start < 0 {
		return 0
	}
	return start
}
