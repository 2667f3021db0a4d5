package predictor

import "TrendSentinel/internal/model"

const patternWindow = 3

// ScanPatterns checks the last three crash values for drop, rise and
// alternation shapes. More than one alert may fire.
func ScanPatterns(values []float64) []model.Alert {
	if len(values) < patternWindow {
		return nil
	}
	last := values[len(values)-patternWindow:]

	var alerts []model.Alert
	if all(last, func(v float64) bool { return v < model.LowMultiplier }) {
		alerts = append(alerts, model.Alert{Kind: model.AlertContinuousDrop, Label: "Continuous drop", Severity: 70})
	}
	if all(last, func(v float64) bool { return v > model.HighMultiplier }) {
		alerts = append(alerts, model.Alert{Kind: model.AlertContinuousRise, Label: "Continuous rise", Severity: 65})
	}
	if (last[1]-last[0])*(last[2]-last[1]) < 0 {
		alerts = append(alerts, model.Alert{Kind: model.AlertAlternation, Label: "Unstable alternation", Severity: 60})
	}
	return alerts
}

func all(values []float64, ok func(float64) bool) bool {
	for _, v := range values {
		if !ok(v) {
			return false
		}
	}
	return true
}
