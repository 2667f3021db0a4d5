// Package roulette derives categorical markets from European roulette numbers
// and forecasts, summarises and replays them.
package roulette

import (
	"TrendSentinel/internal/features"
	"TrendSentinel/internal/model"
)

const MaxNumber = 36

var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true, 18: true,
	19: true, 21: true, 23: true, 25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

func Color(n int) string {
	switch {
	case n == 0:
		return "Green"
	case redNumbers[n]:
		return "Red"
	default:
		return "Black"
	}
}

func Parity(n int) string {
	switch {
	case n == 0:
		return "None"
	case n%2 == 0:
		return "Even"
	default:
		return "Odd"
	}
}

func Half(n int) string {
	switch {
	case n == 0:
		return "Zero"
	case n >= 1 && n <= 18:
		return "1-18"
	case n >= 19 && n <= MaxNumber:
		return "19-36"
	default:
		return "None"
	}
}

func Dozen(n int) string {
	switch {
	case n == 0:
		return "None"
	case n <= 12:
		return "1st 12"
	case n <= 24:
		return "2nd 12"
	default:
		return "3rd 12"
	}
}

func Column(n int) string {
	switch {
	case n == 0:
		return "None"
	case n%3 == 1:
		return "1st"
	case n%3 == 2:
		return "2nd"
	default:
		return "3rd"
	}
}

// market ties a label function to its numeric encoding and the sorted label
// set used as classifier classes.
type market struct {
	label   func(int) string
	code    map[string]float64
	classes []string
}

var markets = map[model.Market]market{
	model.MarketColor: {
		label:   Color,
		code:    map[string]float64{"Red": 1, "Black": 0, "Green": -1},
		classes: []string{"Black", "Green", "Red"},
	},
	model.MarketParity: {
		label:   Parity,
		code:    map[string]float64{"Even": 1, "Odd": 0, "None": -1},
		classes: []string{"Even", "None", "Odd"},
	},
	model.MarketHalf: {
		label:   Half,
		code:    map[string]float64{"1-18": 1, "19-36": 2, "Zero": 0, "None": -1},
		classes: []string{"1-18", "19-36", "None", "Zero"},
	},
	model.MarketDozen: {
		label:   Dozen,
		code:    map[string]float64{"1st 12": 1, "2nd 12": 2, "3rd 12": 3, "None": 0},
		classes: []string{"1st 12", "2nd 12", "3rd 12", "None"},
	},
	model.MarketColumn: {
		label:   Column,
		code:    map[string]float64{"1st": 1, "2nd": 2, "3rd": 3, "None": 0},
		classes: []string{"1st", "2nd", "3rd", "None"},
	},
}

// Label returns the label of n in market m.
func Label(m model.Market, n int) string {
	return markets[m].label(n)
}

// Labels maps every number to its label in market m.
func Labels(m model.Market, numbers []int) []string {
	out := make([]string, len(numbers))
	for i, n := range numbers {
		out[i] = Label(m, n)
	}
	return out
}

// Encode is the features.Encoder for roulette numbers.
func Encode(v float64) features.Categories {
	n := int(v)
	enc := func(m model.Market) float64 {
		mk := markets[m]
		return mk.code[mk.label(n)]
	}
	return features.Categories{
		Color:  enc(model.MarketColor),
		Parity: enc(model.MarketParity),
		Half:   enc(model.MarketHalf),
		Dozen:  enc(model.MarketDozen),
		Column: enc(model.MarketColumn),
	}
}

func classIndex(classes []string, label string) int {
	for i, c := range classes {
		if c == label {
			return i
		}
	}
	return -1
}
