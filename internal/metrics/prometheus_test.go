package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.RecordObservations("roulette", 4)
	r.RecordObservations("roulette", 2)
	r.RecordRejected("crash")
	r.RecordPrediction("crash", "linear_trend", 3*time.Millisecond)
	r.RecordAlert("continuous_drop")
	r.SetSessions(3)
	r.RecordEvicted(2)

	assert.Equal(t, 6.0, testutil.ToFloat64(r.observations.WithLabelValues("roulette")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rejected.WithLabelValues("crash")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.predictions.WithLabelValues("crash", "linear_trend")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.alerts.WithLabelValues("continuous_drop")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.sessions))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.evicted))
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.RecordObservations("crash", 1)
		r.RecordPrediction("crash", "default", time.Second)
		r.SetSessions(1)
	})
}
