package roulette

import (
	"fmt"

	"TrendSentinel/internal/model"
)

// Dominant returns the most frequent label and its share of the window. Ties
// go to the label seen first.
func Dominant(labels []string) (string, float64) {
	if len(labels) == 0 {
		return "", 0
	}
	counts := make(map[string]int, len(labels))
	best := ""
	for _, l := range labels {
		counts[l]++
		if best == "" {
			best = l
		}
	}
	for _, l := range labels {
		if counts[l] > counts[best] {
			best = l
		}
	}
	return best, float64(counts[best]) / float64(len(labels))
}

// Explain renders the dashboard's wording for a short-window trend.
func Explain(field, label string, freq float64, window int) string {
	switch {
	case freq == 1.0 && window > 1:
		return fmt.Sprintf("Only %s came up for %s in the last %d results. Strong trend, but a reversal can happen.", label, field, window)
	case freq >= 0.67:
		return fmt.Sprintf("%s dominates %s over the last %d results. Moderate trend.", label, field, window)
	case freq >= 0.5:
		return fmt.Sprintf("%s is balanced, but %s shows up slightly more.", field, label)
	default:
		return fmt.Sprintf("No strong trend for %s in the last %d results.", field, window)
	}
}

// ShortTrend summarises the last window numbers in market m.
func ShortTrend(m model.Market, numbers []int, window int) model.ShortTrend {
	recent := numbers
	if window > 0 && len(recent) > window {
		recent = recent[len(recent)-window:]
	}
	labels := Labels(m, recent)
	label, freq := Dominant(labels)
	return model.ShortTrend{
		Market:      m,
		Label:       label,
		Frequency:   freq,
		Changed:     distinct(labels) > 1,
		Explanation: Explain(string(m), label, freq, len(recent)),
	}
}

// ShortTrends runs ShortTrend for every market.
func ShortTrends(numbers []int, window int) []model.ShortTrend {
	out := make([]model.ShortTrend, 0, len(model.Markets))
	for _, m := range model.Markets {
		out = append(out, ShortTrend(m, numbers, window))
	}
	return out
}

func distinct(labels []string) int {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		seen[l] = struct{}{}
	}
	return len(seen)
}
