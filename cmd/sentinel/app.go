package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"TrendSentinel/internal/config"
	"TrendSentinel/internal/metrics"
	"TrendSentinel/internal/oracle"
	"TrendSentinel/internal/predictor"
	"TrendSentinel/internal/recorder"
	"TrendSentinel/internal/session"
)

// app holds the wired oracles shared by every command.
type app struct {
	cfg      *config.Config
	metrics  *metrics.Recorder
	journal  recorder.Recorder
	crash    *oracle.CrashOracle
	roulette *oracle.RouletteOracle
}

// newApp wires the oracles. reg may be nil to run without metrics.
func newApp(cfg *config.Config, reg prometheus.Registerer) *app {
	var m *metrics.Recorder
	if reg != nil {
		m = metrics.New(reg)
	}

	journal, err := recorder.Open(cfg.Database.SQLitePath)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite journal failed, using noop")
		journal = recorder.NewNoopRecorder()
	}

	deps := oracle.Deps{Journal: journal, Metrics: m}
	return &app{
		cfg:      cfg,
		metrics:  m,
		journal:  journal,
		crash:    oracle.NewCrashOracle(crashPredictor(cfg), cfg.Crash.Change, deps),
		roulette: oracle.NewRouletteOracle(cfg.Roulette.Classifier, deps),
	}
}

func (a *app) limits() session.Limits {
	return session.Limits{CrashMaxLen: a.cfg.Crash.MaxLen, RouletteMaxLen: a.cfg.Roulette.MaxLen}
}

func (a *app) Close() error {
	if err := a.journal.Close(); err != nil {
		return fmt.Errorf("close journal: %w", err)
	}
	return nil
}

func crashPredictor(cfg *config.Config) predictor.Predictor {
	linear := predictor.NewTrendPredictor(cfg.Crash.Trend)
	if cfg.Crash.Predictor == "forest" {
		return predictor.NewForestPredictor(cfg.Crash.Forest, linear)
	}
	return linear
}
