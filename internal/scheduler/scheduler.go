package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"TrendSentinel/internal/metrics"
	"TrendSentinel/internal/session"
)

// Scheduler manages the background housekeeping jobs.
type Scheduler struct {
	Cron     *cron.Cron
	Registry *session.Registry
	Metrics  *metrics.Recorder
	IdleTTL  time.Duration
}

// NewScheduler creates a new Scheduler. Cron specs carry a seconds field.
func NewScheduler(reg *session.Registry, m *metrics.Recorder, idleTTL time.Duration) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Registry: reg,
		Metrics:  m,
		IdleTTL:  idleTTL,
	}
}

// RegisterAll registers the idle-session janitor on janitorCron and a
// once-a-minute refresh of the session gauge.
func (s *Scheduler) RegisterAll(janitorCron string) error {
	if _, err := s.Cron.AddFunc(janitorCron, s.evictIdle); err != nil {
		return fmt.Errorf("register janitor: %w", err)
	}
	if _, err := s.Cron.AddFunc("0 * * * * *", func() {
		s.Metrics.SetSessions(s.Registry.Len())
	}); err != nil {
		return fmt.Errorf("register session gauge: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunJanitorNow executes one eviction pass immediately and returns the
// number of sessions removed.
func (s *Scheduler) RunJanitorNow() int {
	return s.evict()
}

func (s *Scheduler) evictIdle() { s.evict() }

func (s *Scheduler) evict() int {
	evicted := s.Registry.Evict(s.IdleTTL)
	s.Metrics.RecordEvicted(len(evicted))
	s.Metrics.SetSessions(s.Registry.Len())
	if len(evicted) > 0 {
		log.Info().Int("evicted", len(evicted)).Dur("idle_ttl", s.IdleTTL).Msg("idle sessions evicted")
	}
	return len(evicted)
}
