package roulette

import (
	"sort"

	"TrendSentinel/internal/model"
)

const topNumbers = 5

// Stats summarises the full history: market counts, the most frequent numbers
// (ties by first appearance), a 0..36 histogram and the longest colour runs.
func Stats(numbers []int) model.RouletteStats {
	st := model.RouletteStats{
		Total:         len(numbers),
		Colors:        map[string]int{"Red": 0, "Black": 0, "Green": 0},
		Parities:      map[string]int{"Even": 0, "Odd": 0},
		Halves:        map[string]int{"1-18": 0, "19-36": 0, "Zero": 0},
		LongestStreak: map[string]int{"Red": 0, "Black": 0, "Green": 0},
	}

	firstSeen := make(map[int]int)
	for i, n := range numbers {
		st.Colors[Color(n)]++
		if p := Parity(n); p != "None" {
			st.Parities[p]++
		}
		st.Halves[Half(n)]++
		if n >= 0 && n <= MaxNumber {
			st.Histogram[n]++
		}
		if _, ok := firstSeen[n]; !ok {
			firstSeen[n] = i
		}
	}

	counts := make([]model.NumberCount, 0, len(firstSeen))
	for n := range firstSeen {
		counts = append(counts, model.NumberCount{Number: n, Count: st.Histogram[n]})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return firstSeen[counts[i].Number] < firstSeen[counts[j].Number]
	})
	if len(counts) > topNumbers {
		counts = counts[:topNumbers]
	}
	st.MostFrequent = counts

	colors := Labels(model.MarketColor, numbers)
	for c := range st.LongestStreak {
		st.LongestStreak[c] = LongestRun(colors, c)
	}
	return st
}

// LongestRun is the length of the longest unbroken run of target in labels.
func LongestRun(labels []string, target string) int {
	best, run := 0, 0
	for _, l := range labels {
		if l != target {
			run = 0
			continue
		}
		run++
		best = max(best, run)
	}
	return best
}
