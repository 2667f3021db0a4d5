package oracle

import (
	"time"

	"github.com/rs/zerolog/log"

	"TrendSentinel/internal/model"
	"TrendSentinel/internal/recorder"
	"TrendSentinel/internal/roulette"
	"TrendSentinel/internal/session"
)

const rouletteHistoryLen = 20

// RouletteHistoryEntry is one row of the recent-history table.
type RouletteHistoryEntry struct {
	Number     int       `json:"number"`
	Color      string    `json:"color"`
	Parity     string    `json:"parity"`
	Half       string    `json:"half"`
	Dozen      string    `json:"dozen"`
	Column     string    `json:"column"`
	CapturedAt time.Time `json:"captured_at"`
}

// RouletteOracle serves roulette sessions.
type RouletteOracle struct {
	classifier  *roulette.Classifier
	shortWindow int
	deps        Deps
}

func NewRouletteOracle(cfg roulette.Config, deps Deps) *RouletteOracle {
	return &RouletteOracle{
		classifier:  roulette.NewClassifier(cfg),
		shortWindow: cfg.ShortWindow,
		deps:        deps.withDefaults(),
	}
}

// AddObservations parses a batch of numbers and appends all of them, or none
// when any is invalid.
func (o *RouletteOracle) AddObservations(s *session.Session, text string) ([]int, error) {
	seq, err := rouletteSequence(s)
	if err != nil {
		return nil, err
	}
	numbers, err := roulette.ParseNumbers(text)
	if err != nil {
		o.deps.Metrics.RecordRejected(string(model.VariantRoulette))
		return nil, err
	}
	seq.Append(numbers...)
	o.deps.Metrics.RecordObservations(string(model.VariantRoulette), len(numbers))
	log.Debug().Str("session", s.ID).Ints("numbers", numbers).Int("len", seq.Len()).Msg("roulette results added")
	return numbers, nil
}

func (o *RouletteOracle) Clear(s *session.Session) error {
	seq, err := rouletteSequence(s)
	if err != nil {
		return err
	}
	seq.Clear()
	log.Debug().Str("session", s.ID).Msg("roulette session cleared")
	return nil
}

// Predict forecasts every market of the next spin.
func (o *RouletteOracle) Predict(s *session.Session) (model.Forecast, error) {
	seq, err := rouletteSequence(s)
	if err != nil {
		return model.Forecast{}, err
	}
	start := time.Now()
	numbers := seq.Values()
	fc := o.classifier.Forecast(numbers)

	method := "not_ready"
	if len(fc.Predictions) > 0 {
		method = fc.Predictions[0].Method
	}
	o.deps.Metrics.RecordPrediction(string(model.VariantRoulette), method, time.Since(start))

	evt := &recorder.RouletteForecastEvent{
		SessionID: s.ID,
		Samples:   len(numbers),
		Last:      lastOf(numbers),
		Forecast:  fc,
	}
	if err := o.deps.Journal.RecordRouletteForecast(evt); err != nil {
		log.Warn().Err(err).Str("session", s.ID).Msg("journal roulette forecast")
	}
	return fc, nil
}

// ShortTrend summarises every market over the last few results.
func (o *RouletteOracle) ShortTrend(s *session.Session) ([]model.ShortTrend, error) {
	seq, err := rouletteSequence(s)
	if err != nil {
		return nil, err
	}
	return roulette.ShortTrends(seq.Values(), o.shortWindow), nil
}

func (o *RouletteOracle) Stats(s *session.Session) (model.RouletteStats, error) {
	seq, err := rouletteSequence(s)
	if err != nil {
		return model.RouletteStats{}, err
	}
	return roulette.Stats(seq.Values()), nil
}

// History returns the most recent results with their labels, oldest first.
func (o *RouletteOracle) History(s *session.Session) ([]RouletteHistoryEntry, error) {
	seq, err := rouletteSequence(s)
	if err != nil {
		return nil, err
	}
	records := seq.History()
	if len(records) > rouletteHistoryLen {
		records = records[len(records)-rouletteHistoryLen:]
	}
	out := make([]RouletteHistoryEntry, len(records))
	for i, r := range records {
		n := r.Value
		out[i] = RouletteHistoryEntry{
			Number:     n,
			Color:      roulette.Color(n),
			Parity:     roulette.Parity(n),
			Half:       roulette.Half(n),
			Dozen:      roulette.Dozen(n),
			Column:     roulette.Column(n),
			CapturedAt: r.CapturedAt,
		}
	}
	return out, nil
}

// SimulateStrategy replays a colour bet over the full recorded sequence.
func (o *RouletteOracle) SimulateStrategy(s *session.Session, p model.SimulationParams) (model.SimulationResult, error) {
	seq, err := rouletteSequence(s)
	if err != nil {
		return model.SimulationResult{}, err
	}
	res, err := roulette.Simulate(seq.Values(), p)
	if err != nil {
		return model.SimulationResult{}, err
	}
	if err := o.deps.Journal.RecordSimulation(&recorder.SimulationEvent{SessionID: s.ID, Params: p, Result: res}); err != nil {
		log.Warn().Err(err).Str("session", s.ID).Msg("journal simulation")
	}
	return res, nil
}
