package api

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"TrendSentinel/internal/metrics"
	"TrendSentinel/internal/model"
	"TrendSentinel/internal/oracle"
	"TrendSentinel/internal/session"
)

// Handler serves the session API over both oracles.
type Handler struct {
	registry *session.Registry
	crash    *oracle.CrashOracle
	roulette *oracle.RouletteOracle
	metrics  *metrics.Recorder
}

func NewHandler(reg *session.Registry, crash *oracle.CrashOracle, wheel *oracle.RouletteOracle, m *metrics.Recorder) *Handler {
	return &Handler{registry: reg, crash: crash, roulette: wheel, metrics: m}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.health)

	g := e.Group("/api/sessions")
	g.POST("", h.createSession)
	g.DELETE("/:id", h.deleteSession)
	g.POST("/:id/observations", h.addObservations)
	g.DELETE("/:id/observations", h.clearObservations)
	g.GET("/:id/prediction", h.prediction)
	g.GET("/:id/change", h.change)
	g.GET("/:id/short-trend", h.shortTrend)
	g.GET("/:id/stats", h.stats)
	g.GET("/:id/history", h.history)
	g.POST("/:id/simulation", h.simulation)
}

func (h *Handler) health(c echo.Context) error {
	return SuccessResponse(c, map[string]any{"status": "ok", "sessions": h.registry.Len()})
}

func (h *Handler) createSession(c echo.Context) error {
	var req CreateSessionRequest
	if errs := ReadAndValidateRequest(c, &req); errs != nil {
		return BadRequestResponse(c, errs)
	}
	s, err := h.registry.Create(model.Variant(req.Variant))
	if err != nil {
		return AppErrorResponse(c, err)
	}
	h.metrics.SetSessions(h.registry.Len())
	return CreatedResponse(c, SessionResponse{ID: s.ID, Variant: string(s.Variant)})
}

func (h *Handler) deleteSession(c echo.Context) error {
	if err := h.registry.Delete(c.Param("id")); err != nil {
		return AppErrorResponse(c, err)
	}
	h.metrics.SetSessions(h.registry.Len())
	return NoContentResponse(c)
}

func (h *Handler) addObservations(c echo.Context) error {
	s, err := h.registry.Get(c.Param("id"))
	if err != nil {
		return AppErrorResponse(c, err)
	}
	var req ObservationRequest
	if errs := ReadAndValidateRequest(c, &req); errs != nil {
		return BadRequestResponse(c, errs)
	}

	resp := ObservationResponse{}
	switch s.Variant {
	case model.VariantCrash:
		v, err := h.crash.AddObservation(s, req.Input)
		if err != nil {
			return AppErrorResponse(c, err)
		}
		resp.Added, resp.Size = []float64{v}, s.Crash.Len()
	default:
		numbers, err := h.roulette.AddObservations(s, req.Input)
		if err != nil {
			return AppErrorResponse(c, err)
		}
		resp.Added, resp.Size = numbers, s.Roulette.Len()
	}
	return CreatedResponse(c, resp)
}

func (h *Handler) clearObservations(c echo.Context) error {
	s, err := h.registry.Get(c.Param("id"))
	if err != nil {
		return AppErrorResponse(c, err)
	}
	if s.Variant == model.VariantCrash {
		err = h.crash.Clear(s)
	} else {
		err = h.roulette.Clear(s)
	}
	if err != nil {
		return AppErrorResponse(c, err)
	}
	return NoContentResponse(c)
}

func (h *Handler) prediction(c echo.Context) error {
	s, err := h.registry.Get(c.Param("id"))
	if err != nil {
		return AppErrorResponse(c, err)
	}
	var out any
	if s.Variant == model.VariantCrash {
		out, err = h.crash.Predict(s)
	} else {
		out, err = h.roulette.Predict(s)
	}
	if err != nil {
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, out)
}

func (h *Handler) change(c echo.Context) error {
	s, err := h.registry.Get(c.Param("id"))
	if err != nil {
		return AppErrorResponse(c, err)
	}
	sig, err := h.crash.DetectChange(s)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, sig)
}

func (h *Handler) shortTrend(c echo.Context) error {
	s, err := h.registry.Get(c.Param("id"))
	if err != nil {
		return AppErrorResponse(c, err)
	}
	var out any
	if s.Variant == model.VariantCrash {
		out, err = h.crash.Patterns(s)
	} else {
		out, err = h.roulette.ShortTrend(s)
	}
	if err != nil {
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, out)
}

func (h *Handler) stats(c echo.Context) error {
	s, err := h.registry.Get(c.Param("id"))
	if err != nil {
		return AppErrorResponse(c, err)
	}
	st, err := h.roulette.Stats(s)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, st)
}

func (h *Handler) history(c echo.Context) error {
	s, err := h.registry.Get(c.Param("id"))
	if err != nil {
		return AppErrorResponse(c, err)
	}
	var out any
	if s.Variant == model.VariantCrash {
		out, err = h.crash.History(s)
	} else {
		out, err = h.roulette.History(s)
	}
	if err != nil {
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, out)
}

func (h *Handler) simulation(c echo.Context) error {
	s, err := h.registry.Get(c.Param("id"))
	if err != nil {
		return AppErrorResponse(c, err)
	}
	var req SimulationRequest
	if errs := ReadAndValidateRequest(c, &req); errs != nil {
		return BadRequestResponse(c, errs)
	}
	res, err := h.roulette.SimulateStrategy(s, model.SimulationParams{
		InitialBalance: req.InitialBalance,
		BaseStake:      req.BaseStake,
		Target:         req.Target,
		Policy:         model.StakingPolicy(req.Policy),
	})
	if err != nil {
		return AppErrorResponse(c, fmt.Errorf("simulate: %w", err))
	}
	return SuccessResponse(c, res)
}
