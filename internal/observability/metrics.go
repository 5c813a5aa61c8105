package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ServiceMetrics records the lifecycle of application service operations.
type ServiceMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

// PredictionMetrics adds per-entry outcomes of batch submissions.
type PredictionMetrics interface {
	ServiceMetrics
	RecordPredictionEntry(ctx context.Context, outcome string)
}

// StandingsMetrics adds the size of each standings computation.
type StandingsMetrics interface {
	ServiceMetrics
	RecordStandingsComputed(ctx context.Context, members, matches int)
}

// Metrics is the Prometheus implementation of every metrics interface above.
type Metrics struct {
	operations       *prometheus.CounterVec
	durations        *prometheus.HistogramVec
	predictionEntry  *prometheus.CounterVec
	standingsPairs   prometheus.Histogram
	standingsMembers prometheus.Histogram
}

var (
	_ PredictionMetrics = (*Metrics)(nil)
	_ StandingsMetrics  = (*Metrics)(nil)
)

// NewMetrics registers the prode collectors on reg.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "service_operations_total",
			Help:      "Service operations by outcome.",
		}, []string{"service", "operation", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "service_operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "operation"}),
		predictionEntry: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_entries_total",
			Help:      "Submitted prediction entries by outcome.",
		}, []string{"outcome"}),
		standingsPairs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "standings_scored_pairs",
			Help:      "Match x member pairs folded per standings computation.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
		}),
		standingsMembers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "standings_active_members",
			Help:      "Active members per standings computation.",
			Buckets:   prometheus.LinearBuckets(0, 10, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.operations, m.durations, m.predictionEntry, m.standingsPairs, m.standingsMembers)
	}
	return m
}

func (m *Metrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "attempt").Inc()
}

func (m *Metrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "success").Inc()
}

func (m *Metrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "failure").Inc()
}

func (m *Metrics) RecordOperationDuration(_ context.Context, operation, service string, duration time.Duration) {
	m.durations.WithLabelValues(service, operation).Observe(duration.Seconds())
}

func (m *Metrics) RecordPredictionEntry(_ context.Context, outcome string) {
	m.predictionEntry.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordStandingsComputed(_ context.Context, members, matches int) {
	m.standingsMembers.Observe(float64(members))
	m.standingsPairs.Observe(float64(members * matches))
}

// NoopMetrics discards everything. Used by tests and when metrics are disabled.
type NoopMetrics struct{}

var (
	_ PredictionMetrics = NoopMetrics{}
	_ StandingsMetrics  = NoopMetrics{}
)

func NewNoopMetrics() NoopMetrics { return NoopMetrics{} }

func (NoopMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (NoopMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (NoopMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (NoopMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (NoopMetrics) RecordPredictionEntry(context.Context, string)                          {}
func (NoopMetrics) RecordStandingsComputed(context.Context, int, int)                      {}
