package recorder

import (
	"github.com/rs/zerolog/log"

	"TrendSentinel/internal/model"
)

// CrashPredictionEvent is one crash prediction as served.
type CrashPredictionEvent struct {
	SessionID  string
	Samples    int
	Last       float64
	Prediction model.RangePrediction
	Alerts     []model.Alert
	Change     model.ChangeSignal
}

// RouletteForecastEvent is one multi-market forecast as served.
type RouletteForecastEvent struct {
	SessionID string
	Samples   int
	Last      int
	Forecast  model.Forecast
}

// SimulationEvent records a strategy replay and its outcome.
type SimulationEvent struct {
	SessionID string
	Params    model.SimulationParams
	Result    model.SimulationResult
}

// Recorder journals served predictions for later analysis. The journal is
// write-only: sessions are never rebuilt from it.
type Recorder interface {
	RecordCrashPrediction(evt *CrashPredictionEvent) error
	RecordRouletteForecast(evt *RouletteForecastEvent) error
	RecordSimulation(evt *SimulationEvent) error
	Close() error
}

// Open returns a SQLite journal at path, or a no-op recorder when path is empty.
func Open(path string) (Recorder, error) {
	if path == "" {
		log.Info().Msg("prediction journal disabled")
		return NewNoopRecorder(), nil
	}
	return NewSQLiteRecorder(path)
}
