package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendSentinel/internal/model"
)

func TestSequence_TruncatesOldest(t *testing.T) {
	s := NewSequence[float64](3)
	s.Append(1.1, 1.2)
	s.Append(1.3, 1.4, 1.5)

	assert.Equal(t, []float64{1.3, 1.4, 1.5}, s.Values())
	hist := s.History()
	require.Len(t, hist, 3)
	for i, v := range s.Values() {
		assert.Equal(t, v, hist[i].Value)
	}
}

func TestSequence_Unbounded(t *testing.T) {
	s := NewSequence[int](0)
	for i := 0; i < 500; i++ {
		s.Append(i % 37)
	}
	assert.Equal(t, 500, s.Len())
}

func TestSequence_HistoryTimestamps(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewSequence[int](0)
	s.SetClock(func() time.Time { return at })
	s.Append(7, 0)

	for _, h := range s.History() {
		assert.Equal(t, at, h.CapturedAt)
	}
}

func TestSequence_ClearAndCopies(t *testing.T) {
	s := NewSequence[float64](10)
	s.Append(2.0, 3.0)

	v := s.Values()
	v[0] = 99
	assert.Equal(t, 2.0, s.Values()[0])

	s.Clear()
	assert.Zero(t, s.Len())
	assert.Empty(t, s.History())
}

func TestSequence_ConcurrentAppendKeepsHistoryAligned(t *testing.T) {
	s := NewSequence[int](50)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.Append(g)
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
	assert.Len(t, s.History(), 50)
}

func TestSequence_SnapshotIsConsistentUnderAppends(t *testing.T) {
	s := NewSequence[float64](0)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			s.Append(float64(i))
		}
	}()

	for i := 0; i < 200; i++ {
		values, history := s.Snapshot()
		require.Len(t, history, len(values))
		for j, r := range history {
			require.Equal(t, values[j], r.Value)
		}
	}
	<-done

	values, history := s.Snapshot()
	assert.Len(t, values, 500)
	assert.Len(t, history, 500)
}

func TestRegistry_CreateGetDelete(t *testing.T) {
	r := NewRegistry(Limits{CrashMaxLen: 200})

	crash, err := r.Create(model.VariantCrash)
	require.NoError(t, err)
	assert.NotNil(t, crash.Crash)
	assert.Nil(t, crash.Roulette)
	assert.Equal(t, 200, crash.Crash.MaxLen())

	wheel, err := r.Create(model.VariantRoulette)
	require.NoError(t, err)
	assert.NotNil(t, wheel.Roulette)
	assert.NotEqual(t, crash.ID, wheel.ID)

	got, err := r.Get(crash.ID)
	require.NoError(t, err)
	assert.Same(t, crash, got)

	require.NoError(t, r.Delete(crash.ID))
	_, err = r.Get(crash.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(r.Delete(crash.ID), ErrNotFound))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_UnknownVariant(t *testing.T) {
	r := NewRegistry(Limits{})
	_, err := r.Create("dice")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, r.Len())
}

func TestRegistry_EvictIdle(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(Limits{})
	r.SetClock(func() time.Time { return now })

	idle, err := r.Create(model.VariantCrash)
	require.NoError(t, err)
	busy, err := r.Create(model.VariantRoulette)
	require.NoError(t, err)

	now = now.Add(45 * time.Minute)
	_, err = r.Get(busy.ID)
	require.NoError(t, err)

	now = now.Add(20 * time.Minute)
	evicted := r.Evict(time.Hour)

	assert.Equal(t, []string{idle.ID}, evicted)
	_, err = r.Get(busy.ID)
	assert.NoError(t, err)
}
