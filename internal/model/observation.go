package model

import "time"

// Variant names one of the predictor families a session can run.
type Variant string

const (
	VariantCrash    Variant = "crash"
	VariantRoulette Variant = "roulette"
)

// Numeric is the set of raw observation types the sequences hold.
type Numeric interface {
	~int | ~float64
}

// HistoryRecord pairs an observation with the moment it was captured.
type HistoryRecord[T Numeric] struct {
	Value      T         `json:"value"`
	CapturedAt time.Time `json:"captured_at"`
}

// Band classifies a crash multiplier for display.
type Band string

const (
	BandLow     Band = "low"
	BandNeutral Band = "neutral"
	BandHigh    Band = "high"
)

// Crash band limits shared by the history view and the pattern scanner.
const (
	LowMultiplier  = 1.5
	HighMultiplier = 2.5
)

// BandOf returns the display band of a crash multiplier.
func BandOf(v float64) Band {
	switch {
	case v < LowMultiplier:
		return BandLow
	case v > HighMultiplier:
		return BandHigh
	default:
		return BandNeutral
	}
}
