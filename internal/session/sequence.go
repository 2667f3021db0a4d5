// Package session holds per-session observation state. Nothing here is
// persisted; a session lives as long as the process or until it is evicted.
package session

import (
	"errors"
	"sync"
	"time"

	"TrendSentinel/internal/model"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("session not found")
)

// Sequence is an append-only, optionally bounded list of observations with a
// parallel list of timestamped history records. Both are updated under one
// lock so they always have the same length.
type Sequence[T model.Numeric] struct {
	mu      sync.Mutex
	maxLen  int // 0: unbounded
	values  []T
	history []model.HistoryRecord[T]
	now     func() time.Time
}

// NewSequence returns an empty sequence that keeps at most maxLen of the most
// recent observations. maxLen <= 0 disables truncation.
func NewSequence[T model.Numeric](maxLen int) *Sequence[T] {
	return &Sequence[T]{maxLen: maxLen, now: time.Now}
}

// SetClock replaces the timestamp source, for tests.
func (s *Sequence[T]) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// Append adds the observations in order and drops the oldest entries beyond
// the maximum length.
func (s *Sequence[T]) Append(vs ...T) {
	if len(vs) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now()
	for _, v := range vs {
		s.values = append(s.values, v)
		s.history = append(s.history, model.HistoryRecord[T]{Value: v, CapturedAt: ts})
	}
	if s.maxLen > 0 && len(s.values) > s.maxLen {
		drop := len(s.values) - s.maxLen
		s.values = append([]T(nil), s.values[drop:]...)
		s.history = append([]model.HistoryRecord[T](nil), s.history[drop:]...)
	}
}

// Values returns a copy of the retained observations, oldest first.
func (s *Sequence[T]) Values() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.values...)
}

// History returns a copy of the history records, oldest first.
func (s *Sequence[T]) History() []model.HistoryRecord[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.HistoryRecord[T](nil), s.history...)
}

// Snapshot returns copies of the values and the history taken under one lock,
// so both describe the same state.
func (s *Sequence[T]) Snapshot() ([]T, []model.HistoryRecord[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.values...), append([]model.HistoryRecord[T](nil), s.history...)
}

func (s *Sequence[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

func (s *Sequence[T]) MaxLen() int { return s.maxLen }

// Clear empties the sequence and its history.
func (s *Sequence[T]) Clear() {
	s.mu.Lock()
	s.values, s.history = nil, nil
	s.mu.Unlock()
}
