package model

import "github.com/shopspring/decimal"

// StakingPolicy decides how the stake evolves between rounds.
type StakingPolicy string

const (
	PolicyFlat       StakingPolicy = "flat"
	PolicyMartingale StakingPolicy = "martingale" // double on loss, reset on win
)

// SimulationParams configures a strategy replay.
type SimulationParams struct {
	InitialBalance decimal.Decimal
	BaseStake      decimal.Decimal
	Target         string // "Red" or "Black"
	Policy         StakingPolicy
}

// SimulationResult is the outcome of replaying a strategy over the recorded colours.
type SimulationResult struct {
	Trajectory   []decimal.Decimal `json:"trajectory"`
	FinalBalance decimal.Decimal   `json:"final_balance"`
	Rounds       int               `json:"rounds"`
	Wins         int               `json:"wins"`
	Losses       int               `json:"losses"`
	Bust         bool              `json:"bust"`
}
