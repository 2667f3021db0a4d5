package roulette

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"TrendSentinel/internal/calculator"
	"TrendSentinel/internal/features"
	"TrendSentinel/internal/forest"
	"TrendSentinel/internal/model"
)

// Config tunes the multi-market classifier.
type Config struct {
	MinResults  int           `yaml:"min_results" validate:"gte=1"`
	ShortWindow int           `yaml:"short_window" validate:"gte=1"`
	Forest      forest.Config `yaml:"forest"`
}

func DefaultConfig() Config {
	return Config{MinResults: 3, ShortWindow: 3, Forest: forest.DefaultConfig()}
}

// Classifier forecasts every market of the next spin from the sequence so
// far. Each row is labelled with the market of the following spin.
type Classifier struct {
	cfg Config
}

func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Forecast is not ready until MinResults numbers are known. With more than
// ShortWindow feature rows a forest is fitted per market; otherwise the short
// trend of the last ShortWindow numbers stands in.
func (c *Classifier) Forecast(numbers []int) model.Forecast {
	recent := tail(numbers, c.cfg.ShortWindow)
	if len(numbers) < c.cfg.MinResults {
		return model.Forecast{
			Recent: recent,
			Note:   fmt.Sprintf("Enter at least %d results to enable the forecast.", c.cfg.MinResults),
		}
	}

	values := make([]float64, len(numbers))
	for i, n := range numbers {
		values[i] = float64(n)
	}
	rows := features.Build(values, Encode)

	fc := model.Forecast{Ready: true, Recent: recent}
	if len(rows) <= c.cfg.ShortWindow {
		fc.Note = "Too little data for the model, using the short pattern."
	}
	for _, m := range model.Markets {
		if len(rows) <= c.cfg.ShortWindow {
			fc.Predictions = append(fc.Predictions, c.fromTrend(m, numbers))
			continue
		}
		pred, err := c.fromForest(m, rows)
		if err != nil {
			log.Warn().Err(err).Str("market", string(m)).Msg("classifier fit failed, using short trend")
			pred = c.fromTrend(m, numbers)
			pred.Explanation = "No model prediction available. " + pred.Explanation
		}
		fc.Predictions = append(fc.Predictions, pred)
	}
	return fc
}

func (c *Classifier) fromTrend(m model.Market, numbers []int) model.MarketPrediction {
	st := ShortTrend(m, numbers, c.cfg.ShortWindow)
	return model.MarketPrediction{
		Market:      m,
		Label:       st.Label,
		Method:      "short_trend",
		Confidence:  calculator.Round(st.Frequency*100, 1),
		Explanation: st.Explanation,
	}
}

func (c *Classifier) fromForest(m model.Market, rows []features.Row) (model.MarketPrediction, error) {
	mk := markets[m]
	x := make([][]float64, 0, len(rows)-1)
	y := make([]int, 0, len(rows)-1)
	for i := 0; i+1 < len(rows); i++ {
		x = append(x, rows[i].Vector())
		y = append(y, classIndex(mk.classes, mk.label(int(rows[i+1].Value))))
	}

	clf := forest.NewClassifier(c.cfg.Forest)
	if err := clf.Fit(x, y); err != nil {
		return model.MarketPrediction{}, fmt.Errorf("fit %s: %w", m, err)
	}
	last := rows[len(rows)-1].Vector()
	proba, err := clf.PredictProba(last)
	if err != nil {
		return model.MarketPrediction{}, fmt.Errorf("predict %s: %w", m, err)
	}

	classes := clf.Classes()
	best := 0
	for i := range proba {
		if proba[i] > proba[best] {
			best = i
		}
	}
	pred := model.MarketPrediction{
		Market:     m,
		Label:      mk.classes[classes[best]],
		Method:     "forest",
		Confidence: calculator.Round(proba[best]*100, 1),
	}
	if m == model.MarketColor {
		pred.Probabilities = make(map[string]float64, len(classes))
		for i, cls := range classes {
			pred.Probabilities[mk.classes[cls]] = calculator.Round(proba[i], 3)
		}
	}
	return pred, nil
}

func tail(numbers []int, n int) []int {
	if n <= 0 || len(numbers) <= n {
		return append([]int(nil), numbers...)
	}
	return append([]int(nil), numbers[len(numbers)-n:]...)
}
