// Package metrics exposes Prometheus metrics for the breach subsystem.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the breach detection and dispatch metrics. A nil *Metrics is
// valid and records nothing, so tests can skip wiring it.
type Metrics struct {
	Evaluations      prometheus.Counter
	Transitions      *prometheus.CounterVec
	Suppressed       prometheus.Counter
	EvaluateDuration prometheus.Histogram
	Delivered        prometheus.Counter
	DeliveryFailures prometheus.Counter
}

// New creates and registers the breach metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		Evaluations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "safecircle_breach_evaluations_total",
			Help: "Location updates evaluated against geofences",
		}),
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "safecircle_breach_transitions_total",
			Help: "Boundary crossings detected, by direction",
		}, []string{"direction"}),
		Suppressed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "safecircle_breach_suppressed_total",
			Help: "Transitions that did not fire due to policy or disabled notifications",
		}),
		EvaluateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "safecircle_breach_evaluate_duration_seconds",
			Help:    "Latency of a single location evaluation",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		}),
		Delivered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "safecircle_breach_notifications_delivered_total",
			Help: "Breach notifications delivered to recipients",
		}),
		DeliveryFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "safecircle_breach_notifications_failed_total",
			Help: "Per-recipient delivery failures during breach fan-out",
		}),
	}
}

func (m *Metrics) RecordEvaluation(d time.Duration) {
	if m == nil {
		return
	}
	m.Evaluations.Inc()
	m.EvaluateDuration.Observe(d.Seconds())
}

func (m *Metrics) RecordTransition(direction string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(direction).Inc()
}

func (m *Metrics) RecordSuppressed() {
	if m == nil {
		return
	}
	m.Suppressed.Inc()
}

func (m *Metrics) RecordDispatch(delivered, failed int) {
	if m == nil {
		return
	}
	m.Delivered.Add(float64(delivered))
	m.DeliveryFailures.Add(float64(failed))
}
