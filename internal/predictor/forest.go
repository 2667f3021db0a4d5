package predictor

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"TrendSentinel/internal/calculator"
	"TrendSentinel/internal/features"
	"TrendSentinel/internal/forest"
	"TrendSentinel/internal/model"
)

// ForestConfig tunes the random-forest predictor.
type ForestConfig struct {
	MinSamples      int           `yaml:"min_samples" validate:"gte=3"`
	DeviationWindow int           `yaml:"deviation_window" validate:"gte=1"`
	Floor           float64       `yaml:"floor" validate:"gte=1"`
	Forest          forest.Config `yaml:"forest"`
}

func DefaultForestConfig() ForestConfig {
	return ForestConfig{MinSamples: 10, DeviationWindow: 10, Floor: 1.01, Forest: forest.DefaultConfig()}
}

// ForestPredictor regresses the next value on the feature row of the current
// one. A fresh forest is trained on every call.
type ForestPredictor struct {
	cfg      ForestConfig
	fallback Predictor
}

// NewForestPredictor wraps fallback, which answers while the history is
// shorter than cfg.MinSamples or when the fit fails.
func NewForestPredictor(cfg ForestConfig, fallback Predictor) *ForestPredictor {
	return &ForestPredictor{cfg: cfg, fallback: fallback}
}

func (p *ForestPredictor) Name() string { return "forest" }

func (p *ForestPredictor) Predict(values []float64) model.RangePrediction {
	n := len(values)
	if n < p.cfg.MinSamples {
		pred := p.fallback.Predict(values)
		pred.Explanation = fmt.Sprintf("The forest needs at least %d rounds. %s", p.cfg.MinSamples, pred.Explanation)
		return pred
	}

	point, err := p.fit(values)
	if err != nil {
		log.Warn().Err(err).Int("samples", n).Msg("forest fit failed, using fallback")
		pred := p.fallback.Predict(values)
		pred.Explanation = "No forest prediction available. " + pred.Explanation
		return pred
	}

	dev := calculator.TailStdDev(values, p.cfg.DeviationWindow)
	pred := buildRange(point, dev, p.cfg.Floor)
	pred.Confidence = confidence(dev, 50)
	pred.Level = model.LevelOf(pred.Confidence)
	pred.Method = "random_forest"
	pred.Samples = n
	pred.Explanation = explain(values, p.cfg.DeviationWindow, dev)
	return pred
}

func (p *ForestPredictor) fit(values []float64) (float64, error) {
	rows := features.Build(values, nil)
	if len(rows) == 0 {
		return 0, forest.ErrNoData
	}
	var x [][]float64
	var y []float64
	for _, r := range rows {
		if r.Index+1 < len(values) {
			x = append(x, r.Vector())
			y = append(y, values[r.Index+1])
		}
	}
	reg := forest.NewRegressor(p.cfg.Forest)
	if err := reg.Fit(x, y); err != nil {
		return 0, fmt.Errorf("fit regressor: %w", err)
	}
	return reg.Predict(rows[len(rows)-1].Vector())
}
