package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendSentinel/internal/forest"
	"TrendSentinel/internal/metrics"
	"TrendSentinel/internal/oracle"
	"TrendSentinel/internal/predictor"
	"TrendSentinel/internal/roulette"
	"TrendSentinel/internal/session"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	deps := oracle.Deps{Metrics: m}

	rcfg := roulette.DefaultConfig()
	rcfg.Forest = forest.Config{Trees: 15, Seed: 42}

	h := NewHandler(
		session.NewRegistry(session.Limits{CrashMaxLen: 200}),
		oracle.NewCrashOracle(predictor.NewTrendPredictor(predictor.DefaultTrendConfig()), predictor.DefaultChangeConfig(), deps),
		oracle.NewRouletteOracle(rcfg, deps),
		m,
	)
	return NewServer(h, WithMetrics("/metrics", reg))
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func createSession(t *testing.T, s *Server, variant string) string {
	t.Helper()
	rec, env := do(t, s, http.MethodPost, "/api/sessions", `{"variant":"`+variant+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func TestHealth(t *testing.T) {
	rec, env := do(t, newTestServer(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", env.Message)
}

func TestCreateSession_Validation(t *testing.T) {
	s := newTestServer(t)

	rec, env := do(t, s, http.MethodPost, "/api/sessions", `{"variant":"dice"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var errs []ValidationError
	require.NoError(t, json.Unmarshal(env.Data, &errs))
	require.Len(t, errs, 1)
	assert.Equal(t, "ERR_ONEOF", errs[0].Code)

	// The variant defaults to crash.
	rec, env = do(t, s, http.MethodPost, "/api/sessions", `{}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "crash", resp.Variant)
	assert.JSONEq(t, `{"id":"`+resp.ID+`","variant":"crash"}`, string(env.Data))
}

func TestCrashFlow(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s, "crash")
	base := "/api/sessions/" + id

	for _, v := range []string{"2.8", "1.2", "1.4", "1.3", "1.1", "1.05"} {
		rec, _ := do(t, s, http.MethodPost, base+"/observations", `{"input":"`+v+`"}`)
		require.Equal(t, http.StatusCreated, rec.Code, v)
	}

	rec, env := do(t, s, http.MethodPost, base+"/observations", `{"input":"0.5"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Data), "ERR_INVALID_INPUT")

	rec, env = do(t, s, http.MethodGet, base+"/prediction", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var rep oracle.CrashReport
	require.NoError(t, json.Unmarshal(env.Data, &rep))
	assert.Equal(t, "linear_trend", rep.Prediction.Method)
	assert.Equal(t, 6, rep.Prediction.Samples)
	assert.Len(t, rep.History, 6)

	rec, _ = do(t, s, http.MethodGet, base+"/change", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, s, http.MethodGet, base+"/short-trend", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "continuous_drop")

	rec, _ = do(t, s, http.MethodGet, base+"/stats", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, s, http.MethodDelete, base+"/observations", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = do(t, s, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = do(t, s, http.MethodGet, base+"/prediction", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouletteFlow(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s, "roulette")
	base := "/api/sessions/" + id

	rec, env := do(t, s, http.MethodPost, base+"/observations", `{"input":"12, 5 7\n0 32 15"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var added struct {
		Added []int `json:"added"`
		Size  int   `json:"size"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &added))
	assert.Equal(t, []int{12, 5, 7, 0, 32, 15}, added.Added)
	assert.Equal(t, 6, added.Size)

	rec, _ = do(t, s, http.MethodPost, base+"/observations", `{"input":"99"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, s, http.MethodGet, base+"/prediction", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"ready":true`)

	for _, p := range []string{"/short-trend", "/stats", "/history"} {
		rec, _ = do(t, s, http.MethodGet, base+p, "")
		assert.Equal(t, http.StatusOK, rec.Code, p)
	}

	rec, _ = do(t, s, http.MethodGet, base+"/change", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, s, http.MethodPost, base+"/simulation", `{"policy":"martingale","target":"Black"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var sim struct {
		Rounds     int      `json:"rounds"`
		Trajectory []string `json:"trajectory"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sim))
	assert.Equal(t, 6, sim.Rounds)
	assert.Len(t, sim.Trajectory, 7)
	assert.Equal(t, "1000", sim.Trajectory[0])

	rec, _ = do(t, s, http.MethodPost, base+"/simulation", `{"base_stake":"-5"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownSession(t *testing.T) {
	rec, env := do(t, newTestServer(t), http.MethodGet, "/api/sessions/nope/prediction", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, string(env.Data), "ERR_NOT_FOUND")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	createSession(t, s, "crash")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sentinel_active_sessions 1")
}
