package predictor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"TrendSentinel/internal/model"
)

// ChangeConfig tunes the window-comparison change detector. Strict adds the
// deviation test and raises the sample requirement.
type ChangeConfig struct {
	Window        int     `yaml:"window" validate:"gte=2"`
	MeanThreshold float64 `yaml:"mean_threshold" validate:"gt=0"`
	StdThreshold  float64 `yaml:"std_threshold" validate:"gt=0"`
	Strict        bool    `yaml:"strict"`
}

func DefaultChangeConfig() ChangeConfig {
	return ChangeConfig{Window: 5, MeanThreshold: 1.0, StdThreshold: 1.2}
}

// MinSamples is the history length below which DetectChange always reports
// no change.
func (c ChangeConfig) MinSamples() int {
	if c.Strict {
		return 3 * c.Window
	}
	return 2 * c.Window
}

// DetectChange compares the most recent window against the one before it.
func DetectChange(values []float64, cfg ChangeConfig) model.ChangeSignal {
	n := len(values)
	sig := model.ChangeSignal{Samples: n}
	if n < cfg.MinSamples() {
		return sig
	}

	w := cfg.Window
	recent := values[n-w:]
	prior := values[n-2*w : n-w]

	meanRecent, stdRecent := stat.PopMeanStdDev(recent, nil)
	meanPrior, stdPrior := stat.PopMeanStdDev(prior, nil)
	sig.MeanDiff = math.Abs(meanRecent - meanPrior)
	sig.StdDiff = math.Abs(stdRecent - stdPrior)

	switch {
	case sig.MeanDiff > cfg.MeanThreshold:
		sig.Detected = true
		sig.Reason = fmt.Sprintf("mean moved by %.2f (threshold %.2f)", sig.MeanDiff, cfg.MeanThreshold)
	case cfg.Strict && sig.StdDiff > cfg.StdThreshold:
		sig.Detected = true
		sig.Reason = fmt.Sprintf("deviation moved by %.2f (threshold %.2f)", sig.StdDiff, cfg.StdThreshold)
	}
	return sig
}

// ShiftAlert turns a detected change into an alert. Severity grows with the
// mean shift relative to its threshold; the strict detector also counts the
// deviation shift.
func ShiftAlert(sig model.ChangeSignal, cfg ChangeConfig) (model.Alert, bool) {
	if !sig.Detected {
		return model.Alert{}, false
	}
	ratio := sig.MeanDiff / cfg.MeanThreshold
	if cfg.Strict {
		ratio = math.Max(ratio, sig.StdDiff/cfg.StdThreshold)
	}
	return model.Alert{
		Kind:     model.AlertTrendShift,
		Label:    "New pattern detected, adjusting",
		Severity: math.Min(100, math.Round(50*ratio)),
	}, true
}
