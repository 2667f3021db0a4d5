package roulette

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"TrendSentinel/internal/model"
)

var ErrInvalidStrategy = errors.New("invalid strategy")

// Validate checks the parameters of a simulation.
func Validate(p model.SimulationParams) error {
	switch {
	case !p.InitialBalance.IsPositive():
		return fmt.Errorf("%w: initial balance must be positive", ErrInvalidStrategy)
	case !p.BaseStake.IsPositive():
		return fmt.Errorf("%w: base stake must be positive", ErrInvalidStrategy)
	case p.Target != "Red" && p.Target != "Black":
		return fmt.Errorf("%w: target %q must be Red or Black", ErrInvalidStrategy, p.Target)
	case p.Policy != model.PolicyFlat && p.Policy != model.PolicyMartingale:
		return fmt.Errorf("%w: unknown policy %q", ErrInvalidStrategy, p.Policy)
	}
	return nil
}

// Simulate replays an even-money colour bet over the recorded numbers. Green
// loses for both targets. Under martingale the stake doubles after a loss and
// returns to the base stake after a win. The replay stops once the balance
// reaches zero or below; that last balance is still part of the trajectory.
func Simulate(numbers []int, p model.SimulationParams) (model.SimulationResult, error) {
	if err := Validate(p); err != nil {
		return model.SimulationResult{}, err
	}

	balance := p.InitialBalance
	stake := p.BaseStake
	res := model.SimulationResult{Trajectory: []decimal.Decimal{balance}}

	for _, n := range numbers {
		res.Rounds++
		if Color(n) == p.Target {
			balance = balance.Add(stake)
			res.Wins++
			if p.Policy == model.PolicyMartingale {
				stake = p.BaseStake
			}
		} else {
			balance = balance.Sub(stake)
			res.Losses++
			if p.Policy == model.PolicyMartingale {
				stake = stake.Mul(decimal.NewFromInt(2))
			}
		}
		res.Trajectory = append(res.Trajectory, balance)
		if !balance.IsPositive() {
			res.Bust = true
			break
		}
	}

	res.FinalBalance = balance
	return res, nil
}
