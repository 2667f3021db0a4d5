package recorder

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists served predictions to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite journal opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS crash_predictions (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			session_id   TEXT NOT NULL,
			samples      INTEGER,
			last_value   REAL,
			method       TEXT,
			range_min    REAL,
			range_mid    REAL,
			range_max    REAL,
			confidence   REAL,
			alerts       TEXT,
			change_found INTEGER,
			mean_diff    REAL,
			std_diff     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_crash_session ON crash_predictions(session_id, timestamp)`,

		`CREATE TABLE IF NOT EXISTS roulette_forecasts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			session_id TEXT NOT NULL,
			samples    INTEGER,
			last_value INTEGER,
			market     TEXT,
			label      TEXT,
			method     TEXT,
			confidence REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_roulette_session ON roulette_forecasts(session_id, timestamp)`,

		`CREATE TABLE IF NOT EXISTS simulations (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			session_id      TEXT NOT NULL,
			policy          TEXT,
			target          TEXT,
			initial_balance TEXT,
			base_stake      TEXT,
			final_balance   TEXT,
			rounds          INTEGER,
			wins            INTEGER,
			losses          INTEGER,
			bust            INTEGER
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordCrashPrediction(evt *CrashPredictionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kinds := make([]string, len(evt.Alerts))
	for i, a := range evt.Alerts {
		kinds[i] = string(a.Kind)
	}
	p := evt.Prediction
	_, err := r.db.Exec(`INSERT INTO crash_predictions
		(timestamp, session_id, samples, last_value, method, range_min, range_mid, range_max,
		 confidence, alerts, change_found, mean_diff, std_diff)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		r.now().Unix(), evt.SessionID, evt.Samples, evt.Last, p.Method, p.Min, p.Mid, p.Max,
		p.Confidence, strings.Join(kinds, ","), evt.Change.Detected, evt.Change.MeanDiff, evt.Change.StdDiff,
	)
	return err
}

// RecordRouletteForecast writes one row per market in a single transaction.
// Forecasts that are not ready are skipped.
func (r *SQLiteRecorder) RecordRouletteForecast(evt *RouletteForecastEvent) error {
	if !evt.Forecast.Ready {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	ts := r.now().Unix()
	for _, p := range evt.Forecast.Predictions {
		if _, err := tx.Exec(`INSERT INTO roulette_forecasts
			(timestamp, session_id, samples, last_value, market, label, method, confidence)
			VALUES (?,?,?,?,?,?,?,?)`,
			ts, evt.SessionID, evt.Samples, evt.Last, string(p.Market), p.Label, p.Method, p.Confidence,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert %s: %w", p.Market, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordSimulation(evt *SimulationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Money is stored as decimal text to keep it exact.
	_, err := r.db.Exec(`INSERT INTO simulations
		(timestamp, session_id, policy, target, initial_balance, base_stake, final_balance,
		 rounds, wins, losses, bust)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		r.now().Unix(), evt.SessionID, string(evt.Params.Policy), evt.Params.Target,
		evt.Params.InitialBalance.String(), evt.Params.BaseStake.String(), evt.Result.FinalBalance.String(),
		evt.Result.Rounds, evt.Result.Wins, evt.Result.Losses, evt.Result.Bust,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite journal")
	return r.db.Close()
}
