// Package metrics exposes Prometheus instruments for the oracles and the
// session registry. A nil *Recorder is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Recorder struct {
	observations *prometheus.CounterVec
	rejected     *prometheus.CounterVec
	predictions  *prometheus.CounterVec
	alerts       *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	sessions     prometheus.Gauge
	evicted      prometheus.Counter
}

// New registers the instruments with reg, or the default registry when reg
// is nil.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		observations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentinel_observations_total",
				Help: "Observations accepted into a session",
			},
			[]string{"variant"},
		),
		rejected: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentinel_rejected_inputs_total",
				Help: "Input batches rejected as malformed",
			},
			[]string{"variant"},
		),
		predictions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentinel_predictions_total",
				Help: "Predictions computed, by method",
			},
			[]string{"variant", "method"},
		),
		alerts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentinel_alerts_total",
				Help: "Pattern and change alerts raised",
			},
			[]string{"kind"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sentinel_prediction_duration_seconds",
				Help:    "Time spent refitting and predicting",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"variant"},
		),
		sessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "sentinel_active_sessions",
			Help: "Sessions currently held in memory",
		}),
		evicted: f.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_sessions_evicted_total",
			Help: "Idle sessions removed by the janitor",
		}),
	}
}

func (r *Recorder) RecordObservations(variant string, n int) {
	if r == nil {
		return
	}
	r.observations.WithLabelValues(variant).Add(float64(n))
}

func (r *Recorder) RecordRejected(variant string) {
	if r == nil {
		return
	}
	r.rejected.WithLabelValues(variant).Inc()
}

// RecordPrediction counts one prediction and its latency.
func (r *Recorder) RecordPrediction(variant, method string, took time.Duration) {
	if r == nil {
		return
	}
	r.predictions.WithLabelValues(variant, method).Inc()
	r.latency.WithLabelValues(variant).Observe(took.Seconds())
}

func (r *Recorder) RecordAlert(kind string) {
	if r == nil {
		return
	}
	r.alerts.WithLabelValues(kind).Inc()
}

func (r *Recorder) SetSessions(n int) {
	if r == nil {
		return
	}
	r.sessions.Set(float64(n))
}

func (r *Recorder) RecordEvicted(n int) {
	if r == nil {
		return
	}
	r.evicted.Add(float64(n))
}
