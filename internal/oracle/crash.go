package oracle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"TrendSentinel/internal/calculator"
	"TrendSentinel/internal/model"
	"TrendSentinel/internal/predictor"
	"TrendSentinel/internal/recorder"
	"TrendSentinel/internal/session"
)

const (
	crashHistoryLen  = 30
	crashRecentLen   = 10
	crashRollingSpan = 3
)

// CrashHistoryEntry is one row of the recent-history view.
type CrashHistoryEntry struct {
	Value      float64    `json:"value"`
	Band       model.Band `json:"band"`
	CapturedAt time.Time  `json:"captured_at"`
}

// CrashReport is everything a dashboard needs after one crash prediction.
type CrashReport struct {
	Prediction  model.RangePrediction `json:"prediction"`
	Alerts      []model.Alert         `json:"alerts"`
	Change      model.ChangeSignal    `json:"change"`
	History     []CrashHistoryEntry   `json:"history"`
	Recent      []float64             `json:"recent"`
	RollingMean []float64             `json:"rolling_mean"`
}

// CrashOracle serves crash-game sessions.
type CrashOracle struct {
	predictor predictor.Predictor
	change    predictor.ChangeConfig
	deps      Deps
}

func NewCrashOracle(p predictor.Predictor, change predictor.ChangeConfig, deps Deps) *CrashOracle {
	return &CrashOracle{predictor: p, change: change, deps: deps.withDefaults()}
}

// ParseMultiplier reads one crash multiplier. It must be a finite number of at
// least 1.0.
func ParseMultiplier(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", session.ErrInvalidInput, text)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 1.0 {
		return 0, fmt.Errorf("%w: multiplier %v must be finite and at least 1.0", session.ErrInvalidInput, v)
	}
	return v, nil
}

// AddObservation parses text and appends it. Nothing is stored on error.
func (o *CrashOracle) AddObservation(s *session.Session, text string) (float64, error) {
	seq, err := crashSequence(s)
	if err != nil {
		return 0, err
	}
	v, err := ParseMultiplier(text)
	if err != nil {
		o.deps.Metrics.RecordRejected(string(model.VariantCrash))
		return 0, err
	}
	seq.Append(v)
	o.deps.Metrics.RecordObservations(string(model.VariantCrash), 1)
	log.Debug().Str("session", s.ID).Float64("value", v).Int("len", seq.Len()).Msg("crash observation added")
	return v, nil
}

func (o *CrashOracle) Clear(s *session.Session) error {
	seq, err := crashSequence(s)
	if err != nil {
		return err
	}
	seq.Clear()
	log.Debug().Str("session", s.ID).Msg("crash session cleared")
	return nil
}

// Predict refits the predictor and scans for patterns and regime changes.
func (o *CrashOracle) Predict(s *session.Session) (CrashReport, error) {
	seq, err := crashSequence(s)
	if err != nil {
		return CrashReport{}, err
	}
	start := time.Now()
	values, history := seq.Snapshot()

	rep := CrashReport{
		Prediction:  o.predictor.Predict(values),
		Alerts:      predictor.ScanPatterns(values),
		Change:      predictor.DetectChange(values, o.change),
		History:     crashHistory(history),
		Recent:      calculator.Tail(values, crashRecentLen),
		RollingMean: calculator.RollingMean(values, crashRollingSpan),
	}
	if alert, ok := predictor.ShiftAlert(rep.Change, o.change); ok {
		rep.Alerts = append(rep.Alerts, alert)
	}
	if rep.Alerts == nil {
		rep.Alerts = []model.Alert{}
	}

	o.deps.Metrics.RecordPrediction(string(model.VariantCrash), rep.Prediction.Method, time.Since(start))
	for _, a := range rep.Alerts {
		o.deps.Metrics.RecordAlert(string(a.Kind))
	}
	evt := &recorder.CrashPredictionEvent{
		SessionID:  s.ID,
		Samples:    len(values),
		Last:       lastOf(values),
		Prediction: rep.Prediction,
		Alerts:     rep.Alerts,
		Change:     rep.Change,
	}
	if err := o.deps.Journal.RecordCrashPrediction(evt); err != nil {
		log.Warn().Err(err).Str("session", s.ID).Msg("journal crash prediction")
	}
	return rep, nil
}

// DetectChange reports whether the latest window departs from the previous one.
func (o *CrashOracle) DetectChange(s *session.Session) (model.ChangeSignal, error) {
	seq, err := crashSequence(s)
	if err != nil {
		return model.ChangeSignal{}, err
	}
	return predictor.DetectChange(seq.Values(), o.change), nil
}

func crashHistory(records []model.HistoryRecord[float64]) []CrashHistoryEntry {
	if len(records) > crashHistoryLen {
		records = records[len(records)-crashHistoryLen:]
	}
	out := make([]CrashHistoryEntry, len(records))
	for i, r := range records {
		out[i] = CrashHistoryEntry{Value: r.Value, Band: model.BandOf(r.Value), CapturedAt: r.CapturedAt}
	}
	return out
}

// History returns the most recent observations with their display bands.
func (o *CrashOracle) History(s *session.Session) ([]CrashHistoryEntry, error) {
	seq, err := crashSequence(s)
	if err != nil {
		return nil, err
	}
	return crashHistory(seq.History()), nil
}

// Patterns scans the latest values for short-window shapes.
func (o *CrashOracle) Patterns(s *session.Session) ([]model.Alert, error) {
	seq, err := crashSequence(s)
	if err != nil {
		return nil, err
	}
	alerts := predictor.ScanPatterns(seq.Values())
	if alerts == nil {
		alerts = []model.Alert{}
	}
	return alerts, nil
}
