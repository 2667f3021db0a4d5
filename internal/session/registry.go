package session

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"TrendSentinel/internal/model"
)

// Limits bounds the sequences of newly created sessions.
type Limits struct {
	CrashMaxLen    int
	RouletteMaxLen int
}

// Session is one caller's state. Exactly one of Crash or Roulette is set,
// according to Variant.
type Session struct {
	ID        string
	Variant   model.Variant
	CreatedAt time.Time
	Crash     *Sequence[float64]
	Roulette  *Sequence[int]

	lastAccess atomic.Int64
}

func (s *Session) LastAccess() time.Time {
	return time.Unix(0, s.lastAccess.Load())
}

func (s *Session) touch(t time.Time) {
	s.lastAccess.Store(t.UnixNano())
}

// New returns a standalone session that no registry tracks.
func New(variant model.Variant, limits Limits) (*Session, error) {
	return newSession(variant, limits, time.Now)
}

func newSession(variant model.Variant, limits Limits, now func() time.Time) (*Session, error) {
	t := now()
	s := &Session{ID: uuid.NewString(), Variant: variant, CreatedAt: t}
	switch variant {
	case model.VariantCrash:
		s.Crash = NewSequence[float64](limits.CrashMaxLen)
		s.Crash.SetClock(now)
	case model.VariantRoulette:
		s.Roulette = NewSequence[int](limits.RouletteMaxLen)
		s.Roulette.SetClock(now)
	default:
		return nil, fmt.Errorf("%w: unknown variant %q", ErrInvalidInput, variant)
	}
	s.touch(t)
	return s, nil
}

// Registry is the in-memory table of live sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	limits   Limits
	now      func() time.Time
}

func NewRegistry(limits Limits) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		limits:   limits,
		now:      time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (r *Registry) SetClock(now func() time.Time) {
	r.mu.Lock()
	r.now = now
	r.mu.Unlock()
}

// Create registers a new empty session of the given variant.
func (r *Registry) Create(variant model.Variant) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := newSession(variant, r.limits, r.now)
	if err != nil {
		return nil, err
	}
	r.sessions[s.ID] = s
	return s, nil
}

// Get looks up a session and marks it as used.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	now := r.now()
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.touch(now)
	return s, nil
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(r.sessions, id)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Evict removes every session idle for longer than ttl and returns their ids.
func (r *Registry) Evict(ttl time.Duration) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-ttl)
	var evicted []string
	for id, s := range r.sessions {
		if s.LastAccess().Before(cutoff) {
			delete(r.sessions, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}
