package scheduler

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendSentinel/internal/metrics"
	"TrendSentinel/internal/model"
	"TrendSentinel/internal/session"
)

func TestRunJanitorNow(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	reg := session.NewRegistry(session.Limits{})
	reg.SetClock(func() time.Time { return now })

	_, err := reg.Create(model.VariantCrash)
	require.NoError(t, err)
	_, err = reg.Create(model.VariantRoulette)
	require.NoError(t, err)

	s := NewScheduler(reg, metrics.New(prometheus.NewRegistry()), 30*time.Minute)
	assert.Zero(t, s.RunJanitorNow())

	now = now.Add(31 * time.Minute)
	assert.Equal(t, 2, s.RunJanitorNow())
	assert.Zero(t, reg.Len())
}

func TestRegisterAll(t *testing.T) {
	s := NewScheduler(session.NewRegistry(session.Limits{}), nil, time.Hour)
	require.NoError(t, s.RegisterAll("0 */5 * * * *"))
	assert.Len(t, s.Cron.Entries(), 2)

	bad := NewScheduler(session.NewRegistry(session.Limits{}), nil, time.Hour)
	assert.Error(t, bad.RegisterAll("every five minutes"))
}
