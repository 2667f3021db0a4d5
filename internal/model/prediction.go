package model

// ConfidenceLevel buckets a heuristic confidence percentage.
type ConfidenceLevel string

const (
	ConfidenceHigh     ConfidenceLevel = "high"
	ConfidenceModerate ConfidenceLevel = "moderate"
	ConfidenceLow      ConfidenceLevel = "low"
)

// LevelOf maps a confidence percentage to its level.
func LevelOf(confidence float64) ConfidenceLevel {
	switch {
	case confidence >= 75:
		return ConfidenceHigh
	case confidence >= 50:
		return ConfidenceModerate
	default:
		return ConfidenceLow
	}
}

// RangePrediction is the three-point estimate for the next crash multiplier.
type RangePrediction struct {
	Min         float64         `json:"min"`
	Mid         float64         `json:"mid"`
	Max         float64         `json:"max"`
	Confidence  float64         `json:"confidence"` // percent, 10..100
	Level       ConfidenceLevel `json:"level"`
	Method      string          `json:"method"`
	Explanation string          `json:"explanation"`
	Samples     int             `json:"samples"`
}

// AlertKind identifies a detected short-window pattern.
type AlertKind string

const (
	AlertContinuousDrop AlertKind = "continuous_drop"
	AlertContinuousRise AlertKind = "continuous_rise"
	AlertAlternation    AlertKind = "unstable_alternation"
	AlertTrendShift     AlertKind = "trend_shift"
)

// Alert is a transient labelled signal. Severity is a 0..100 heuristic.
type Alert struct {
	Kind     AlertKind `json:"kind"`
	Label    string    `json:"label"`
	Severity float64   `json:"severity"`
}

// ChangeSignal reports the comparison of the two most recent windows.
type ChangeSignal struct {
	Detected bool    `json:"detected"`
	MeanDiff float64 `json:"mean_diff"`
	StdDiff  float64 `json:"std_diff"`
	Reason   string  `json:"reason,omitempty"`
	Samples  int     `json:"samples"`
}
