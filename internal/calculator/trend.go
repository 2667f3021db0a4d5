package calculator

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrFlatInput is returned when a trend cannot be fitted.
var ErrFlatInput = errors.New("at least two points are required for a trend")

// LinearTrend fits value = intercept + slope*index by least squares over the
// positions 0..n-1.
func LinearTrend(values []float64) (intercept, slope float64, err error) {
	if len(values) < 2 {
		return 0, 0, ErrFlatInput
	}
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	intercept, slope = stat.LinearRegression(xs, values, nil, false)
	if math.IsNaN(intercept) || math.IsNaN(slope) {
		return 0, 0, ErrFlatInput
	}
	return intercept, slope, nil
}

// ExtrapolateNext fits a linear trend and evaluates it at the position that
// follows the last value.
func ExtrapolateNext(values []float64) (float64, error) {
	intercept, slope, err := LinearTrend(values)
	if err != nil {
		return 0, err
	}
	return intercept + slope*float64(len(values)), nil
}
