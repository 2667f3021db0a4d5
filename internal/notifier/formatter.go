// Package notifier renders oracle results as plain text for terminals.
package notifier

import (
	"fmt"
	"sort"
	"strings"

	"TrendSentinel/internal/model"
	"TrendSentinel/internal/oracle"
)

var bandMarks = map[model.Band]string{
	model.BandLow:     "[-]",
	model.BandNeutral: "[ ]",
	model.BandHigh:    "[+]",
}

// Banner is the advice line shown under a confidence figure.
func Banner(level model.ConfidenceLevel) string {
	switch level {
	case model.ConfidenceHigh:
		return "High confidence for the next round."
	case model.ConfidenceModerate:
		return "Moderate confidence. Watch closely."
	default:
		return "Low confidence. Avoid hasty moves."
	}
}

// FormatCrashReport formats a crash prediction with its history and alerts.
func FormatCrashReport(rep oracle.CrashReport) string {
	var b strings.Builder

	if len(rep.History) > 0 {
		b.WriteString("History\n")
		for _, h := range rep.History {
			b.WriteString(fmt.Sprintf("  %s %.2fx  %s\n", bandMarks[h.Band], h.Value, h.CapturedAt.Format("02/01/2006 15:04")))
		}
		b.WriteString("\n")
	}

	p := rep.Prediction
	b.WriteString(fmt.Sprintf("Predicted range: %.2fx to %.2fx (expected %.2fx)\n", p.Min, p.Max, p.Mid))
	b.WriteString(fmt.Sprintf("Confidence: %.1f%% [%s]\n", p.Confidence, p.Method))
	b.WriteString(Banner(p.Level) + "\n")
	if p.Explanation != "" {
		b.WriteString(p.Explanation + "\n")
	}

	if len(rep.Alerts) > 0 {
		b.WriteString("\nAlerts\n")
		for _, a := range rep.Alerts {
			b.WriteString(fmt.Sprintf("  ! %s (%.0f)\n", a.Label, a.Severity))
		}
	}
	return b.String()
}

// FormatForecast formats the multi-market roulette outlook.
func FormatForecast(fc model.Forecast) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Last results: %v\n", fc.Recent))
	if fc.Note != "" {
		b.WriteString(fc.Note + "\n")
	}
	for _, p := range fc.Predictions {
		b.WriteString(fmt.Sprintf("  %-7s %-7s", p.Market, p.Label))
		if p.Confidence > 0 {
			b.WriteString(fmt.Sprintf(" %.1f%%", p.Confidence))
		}
		if len(p.Probabilities) > 0 {
			b.WriteString("  " + formatProbabilities(p.Probabilities))
		}
		b.WriteString("\n")
		if p.Explanation != "" {
			b.WriteString("          " + p.Explanation + "\n")
		}
	}
	return b.String()
}

func formatProbabilities(probs map[string]float64) string {
	labels := make([]string, 0, len(probs))
	for l := range probs {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = fmt.Sprintf("%s %.1f%%", l, probs[l]*100)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// FormatShortTrends lists the dominant label per market and any changes.
func FormatShortTrends(trends []model.ShortTrend) string {
	var b strings.Builder
	for _, t := range trends {
		b.WriteString(fmt.Sprintf("  %-7s %s (%.1f%%)\n", t.Market, t.Label, t.Frequency*100))
	}
	for _, t := range trends {
		if t.Changed {
			b.WriteString(fmt.Sprintf("  Change in %s over the last results.\n", t.Market))
		}
	}
	return b.String()
}

// FormatStats formats the statistics summary.
func FormatStats(st model.RouletteStats) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Total: %d\n", st.Total))
	b.WriteString(fmt.Sprintf("Red %d | Black %d | Green %d\n", st.Colors["Red"], st.Colors["Black"], st.Colors["Green"]))
	b.WriteString(fmt.Sprintf("Even %d | Odd %d\n", st.Parities["Even"], st.Parities["Odd"]))
	b.WriteString(fmt.Sprintf("1-18 %d | 19-36 %d | Zero %d\n", st.Halves["1-18"], st.Halves["19-36"], st.Halves["Zero"]))
	b.WriteString(fmt.Sprintf("Longest run: Red %d | Black %d | Green %d\n",
		st.LongestStreak["Red"], st.LongestStreak["Black"], st.LongestStreak["Green"]))

	top := make([]string, len(st.MostFrequent))
	for i, nc := range st.MostFrequent {
		top[i] = fmt.Sprintf("%d (%dx)", nc.Number, nc.Count)
	}
	b.WriteString("Most frequent: " + strings.Join(top, ", ") + "\n")
	return b.String()
}

// FormatSimulation formats a strategy replay.
func FormatSimulation(p model.SimulationParams, res model.SimulationResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Strategy: %s on %s, stake %s from %s\n", p.Policy, p.Target, p.BaseStake, p.InitialBalance))
	b.WriteString(fmt.Sprintf("Rounds %d | Wins %d | Losses %d\n", res.Rounds, res.Wins, res.Losses))

	steps := make([]string, len(res.Trajectory))
	for i, d := range res.Trajectory {
		steps[i] = d.String()
	}
	b.WriteString("Balance: " + strings.Join(steps, " > ") + "\n")
	b.WriteString(fmt.Sprintf("Final balance: %s\n", res.FinalBalance))
	if res.Bust {
		b.WriteString("Bankroll exhausted.\n")
	}
	return b.String()
}
