package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 200, cfg.Crash.MaxLen)
	assert.Equal(t, "linear", cfg.Crash.Predictor)
	assert.Equal(t, 5, cfg.Crash.Trend.MinSamples)
	assert.Equal(t, 1.01, cfg.Crash.Trend.Floor)
	assert.Equal(t, 10, cfg.Crash.Forest.MinSamples)
	assert.Equal(t, 100, cfg.Crash.Forest.Forest.Trees)
	assert.Equal(t, uint64(42), cfg.Roulette.Classifier.Forest.Seed)
	assert.Zero(t, cfg.Roulette.MaxLen)
	assert.Equal(t, time.Hour, cfg.Session.IdleTTL)
	assert.Empty(t, cfg.Database.SQLitePath)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
server:
  addr: ":9090"
crash:
  predictor: forest
  change:
    strict: true
  forest:
    min_samples: 12
session:
  idle_ttl: 15m
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SQLITE_PATH", "data/journal.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "forest", cfg.Crash.Predictor)
	assert.True(t, cfg.Crash.Change.Strict)
	assert.Equal(t, 1.2, cfg.Crash.Change.StdThreshold)
	assert.Equal(t, 12, cfg.Crash.Forest.MinSamples)
	assert.Equal(t, 1.01, cfg.Crash.Forest.Floor)
	assert.Equal(t, 15*time.Minute, cfg.Session.IdleTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "data/journal.db", cfg.Database.SQLitePath)
}

func TestLoad_BadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o600))
	_, err := Load(path)
	assert.Error(t, err)

	t.Setenv("SESSION_IDLE_TTL", "soon")
	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown predictor", func(c *Config) { c.Crash.Predictor = "oracle" }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"zero ttl", func(c *Config) { c.Session.IdleTTL = 0 }},
		{"floor below one", func(c *Config) { c.Crash.Trend.Floor = 0.5 }},
		{"tiny change window", func(c *Config) { c.Crash.Change.Window = 1 }},
		{"metrics path", func(c *Config) { c.Metrics.Path = "metrics" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
