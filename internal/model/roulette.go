package model

// Market is one of the categorical attributes derived from a roulette number.
type Market string

const (
	MarketColor  Market = "color"
	MarketParity Market = "parity"
	MarketHalf   Market = "half"
	MarketDozen  Market = "dozen"
	MarketColumn Market = "column"
)

// Markets lists every market in display order.
var Markets = []Market{MarketColor, MarketParity, MarketHalf, MarketDozen, MarketColumn}

// MarketPrediction is the forecast of one market for the next spin.
type MarketPrediction struct {
	Market        Market             `json:"market"`
	Label         string             `json:"label"`
	Method        string             `json:"method"` // "forest" or "short_trend"
	Confidence    float64            `json:"confidence,omitempty"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
	Explanation   string             `json:"explanation,omitempty"`
}

// ShortTrend is the dominant label of a short window.
type ShortTrend struct {
	Market      Market  `json:"market"`
	Label       string  `json:"label"`
	Frequency   float64 `json:"frequency"`
	Changed     bool    `json:"changed"`
	Explanation string  `json:"explanation"`
}

// NumberCount pairs a roulette number with how often it occurred.
type NumberCount struct {
	Number int `json:"number"`
	Count  int `json:"count"`
}

// RouletteStats summarises the full retained history.
type RouletteStats struct {
	Total         int            `json:"total"`
	Colors        map[string]int `json:"colors"`
	Parities      map[string]int `json:"parities"`
	Halves        map[string]int `json:"halves"`
	MostFrequent  []NumberCount  `json:"most_frequent"`
	Histogram     [37]int        `json:"histogram"`
	LongestStreak map[string]int `json:"longest_streak"`
}

// Forecast is the multi-market outlook for the next spin.
type Forecast struct {
	Ready       bool               `json:"ready"`
	Recent      []int              `json:"recent"`
	Predictions []MarketPrediction `json:"predictions,omitempty"`
	Note        string             `json:"note,omitempty"`
}
