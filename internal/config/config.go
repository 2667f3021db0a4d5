package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"TrendSentinel/internal/predictor"
	"TrendSentinel/internal/roulette"
)

// DefaultPath is read when CONFIG_PATH is unset.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr            string        `yaml:"addr" default:":8080" validate:"required"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=json console"`
	} `yaml:"log"`
	Crash struct {
		MaxLen    int                    `yaml:"max_len" default:"200" validate:"gte=0"`
		Predictor string                 `yaml:"predictor" default:"linear" validate:"oneof=linear forest"`
		Trend     predictor.TrendConfig  `yaml:"trend"`
		Forest    predictor.ForestConfig `yaml:"forest"`
		Change    predictor.ChangeConfig `yaml:"change"`
	} `yaml:"crash"`
	Roulette struct {
		MaxLen     int             `yaml:"max_len" validate:"gte=0"`
		Classifier roulette.Config `yaml:"classifier"`
	} `yaml:"roulette"`
	Session struct {
		IdleTTL     time.Duration `yaml:"idle_ttl" default:"1h" validate:"gt=0"`
		JanitorCron string        `yaml:"janitor_cron" default:"0 */5 * * * *" validate:"required"`
	} `yaml:"session"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"` // empty: journal disabled
	} `yaml:"database"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics" validate:"startswith=/"`
	} `yaml:"metrics"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.Crash.Trend = predictor.DefaultTrendConfig()
	cfg.Crash.Forest = predictor.DefaultForestConfig()
	cfg.Crash.Change = predictor.DefaultChangeConfig()
	cfg.Roulette.Classifier = roulette.DefaultConfig()
	if err := defaults.Set(cfg); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return cfg
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("CRASH_PREDICTOR"); v != "" {
		cfg.Crash.Predictor = v
	}
	if v := os.Getenv("CRASH_MAX_LEN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("CRASH_MAX_LEN: %w", err)
		}
		cfg.Crash.MaxLen = n
	}
	if v := os.Getenv("SESSION_IDLE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SESSION_IDLE_TTL: %w", err)
		}
		cfg.Session.IdleTTL = d
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	return cfg, nil
}

// PathFromEnv returns CONFIG_PATH or the default location.
func PathFromEnv() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return DefaultPath
}

var validate = validator.New()

// Validate checks field constraints, including the nested predictor settings.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
