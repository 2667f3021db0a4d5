package predictor

import (
	"fmt"
	"math"

	"TrendSentinel/internal/calculator"
	"TrendSentinel/internal/model"
)

// Predictor estimates the next crash multiplier from the full sequence.
type Predictor interface {
	Name() string
	Predict(values []float64) model.RangePrediction
}

// Fallback range returned while there is too little history.
var (
	DefaultRange      = [3]float64{1.2, 1.5, 1.8}
	DefaultConfidence = 40.0
)

// TrendConfig tunes the weighted-mean / linear-trend predictor.
type TrendConfig struct {
	MinSamples       int     `yaml:"min_samples" validate:"gte=1"`
	LinearMinSamples int     `yaml:"linear_min_samples" validate:"gte=2"`
	DeviationWindow  int     `yaml:"deviation_window" validate:"gte=1"`
	Floor            float64 `yaml:"floor" validate:"gte=1"`
}

// DefaultTrendConfig returns the dashboard constants.
func DefaultTrendConfig() TrendConfig {
	return TrendConfig{MinSamples: 5, LinearMinSamples: 6, DeviationWindow: 10, Floor: 1.01}
}

// TrendPredictor extrapolates a least-squares line over the whole sequence,
// falling back to a recency-weighted mean on short sequences.
type TrendPredictor struct {
	cfg TrendConfig
}

func NewTrendPredictor(cfg TrendConfig) *TrendPredictor {
	return &TrendPredictor{cfg: cfg}
}

func (p *TrendPredictor) Name() string { return "linear" }

func (p *TrendPredictor) Predict(values []float64) model.RangePrediction {
	n := len(values)
	if n < p.cfg.MinSamples {
		return defaultPrediction(n)
	}

	dev := calculator.TailStdDev(values, p.cfg.DeviationWindow)
	point := calculator.WeightedMean(values)
	method := "weighted_mean"
	if n >= p.cfg.LinearMinSamples {
		if next, err := calculator.ExtrapolateNext(values); err == nil {
			point, method = next, "linear_trend"
		}
	}

	pred := buildRange(point, dev, p.cfg.Floor)
	pred.Confidence = confidence(dev, 100)
	pred.Level = model.LevelOf(pred.Confidence)
	pred.Method = method
	pred.Samples = n
	pred.Explanation = explain(values, p.cfg.DeviationWindow, dev)
	return pred
}

func defaultPrediction(n int) model.RangePrediction {
	return model.RangePrediction{
		Min:         DefaultRange[0],
		Mid:         DefaultRange[1],
		Max:         DefaultRange[2],
		Confidence:  DefaultConfidence,
		Level:       model.LevelOf(DefaultConfidence),
		Method:      "default",
		Explanation: "Not enough data for an accurate analysis.",
		Samples:     n,
	}
}

// buildRange centres a band of +/- dev on point. The lower bound never drops
// below floor and the upper bound never drops below the lower one.
func buildRange(point, dev, floor float64) model.RangePrediction {
	lo := math.Max(floor, point-dev)
	hi := math.Max(lo, point+dev)
	return model.RangePrediction{
		Min: calculator.Round(lo, 2),
		Mid: calculator.Round((lo+hi)/2, 2),
		Max: calculator.Round(hi, 2),
	}
}

// confidence is 100 - scale*dev, bounded to [10, 100] and rounded to one decimal.
func confidence(dev, scale float64) float64 {
	c := math.Min(100, math.Max(10, 100-scale*dev))
	return calculator.Round(c, 1)
}

func explain(values []float64, window int, dev float64) string {
	tail := calculator.Tail(values, window)
	return fmt.Sprintf("Over the last %d rounds the mean was %.2fx with a deviation of %.2f.",
		len(tail), calculator.TailMean(values, window), dev)
}
