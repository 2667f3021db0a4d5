package api

import "github.com/shopspring/decimal"

// APIResponse represents standard API response.
type APIResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string         `json:"code,omitempty"`
	Field   string         `json:"field,omitempty"`
	Message string         `json:"message,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
}

type CreateSessionRequest struct {
	Variant string `json:"variant" default:"crash" validate:"oneof=crash roulette"`
}

type SessionResponse struct {
	ID      string `json:"id"`
	Variant string `json:"variant"`
}

type ObservationRequest struct {
	Input string `json:"input" validate:"required"`
}

type ObservationResponse struct {
	Added any `json:"added"`
	Size  int `json:"size"`
}

// SimulationRequest defaults mirror the dashboard form.
type SimulationRequest struct {
	InitialBalance decimal.Decimal `json:"initial_balance" default:"1000"`
	BaseStake      decimal.Decimal `json:"base_stake" default:"10"`
	Target         string          `json:"target" default:"Red" validate:"oneof=Red Black"`
	Policy         string          `json:"policy" default:"flat" validate:"oneof=flat martingale"`
}
