// Package oracle is the boundary of the predictors: every operation takes the
// caller's session explicitly and recomputes its answer from the retained
// sequence.
package oracle

import (
	"fmt"

	"TrendSentinel/internal/metrics"
	"TrendSentinel/internal/recorder"
	"TrendSentinel/internal/session"
)

// Deps are the side channels shared by both oracles. Zero values are valid.
type Deps struct {
	Journal recorder.Recorder
	Metrics *metrics.Recorder
}

func (d Deps) withDefaults() Deps {
	if d.Journal == nil {
		d.Journal = recorder.NewNoopRecorder()
	}
	return d
}

func crashSequence(s *session.Session) (*session.Sequence[float64], error) {
	if s == nil || s.Crash == nil {
		return nil, fmt.Errorf("%w: not a crash session", session.ErrInvalidInput)
	}
	return s.Crash, nil
}

func rouletteSequence(s *session.Session) (*session.Sequence[int], error) {
	if s == nil || s.Roulette == nil {
		return nil, fmt.Errorf("%w: not a roulette session", session.ErrInvalidInput)
	}
	return s.Roulette, nil
}

func lastOf[T any](vs []T) T {
	var zero T
	if len(vs) == 0 {
		return zero
	}
	return vs[len(vs)-1]
}
