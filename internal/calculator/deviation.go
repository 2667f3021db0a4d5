package calculator

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Tail returns the last n values, or all of them when fewer are available.
func Tail(values []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

// TailStdDev is the population standard deviation of the last window values.
// Returns 0 for an empty input.
func TailStdDev(values []float64, window int) float64 {
	t := Tail(values, window)
	if len(t) == 0 {
		return 0
	}
	_, std := stat.PopMeanStdDev(t, nil)
	return std
}

// TailMean is the mean of the last window values, 0 when empty.
func TailMean(values []float64, window int) float64 {
	t := Tail(values, window)
	if len(t) == 0 {
		return 0
	}
	return stat.Mean(t, nil)
}

// PopStdDev is the population standard deviation of values, 0 when empty.
func PopStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	_, std := stat.PopMeanStdDev(values, nil)
	return std
}

// PctChange returns the relative change from the previous value. The first
// position, and any position following a zero, is 0.
func PctChange(values []float64) []float64 {
	out := make([]float64, len(values))
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 {
			continue
		}
		out[i] = (values[i] - prev) / prev
	}
	return out
}

// Lag shifts values k positions forward, filling the head with 0.
func Lag(values []float64, k int) []float64 {
	out := make([]float64, len(values))
	for i := k; i < len(values); i++ {
		out[i] = values[i-k]
	}
	return out
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
