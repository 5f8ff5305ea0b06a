// Package metrics records operation and sync metrics with Prometheus.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the recorder used by application services and workers.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
	RecordSnapshotSize(ctx context.Context, participants, blocks, ascensions int)
	RecordDataIssue(ctx context.Context, kind string)
}

type prometheusMetrics struct {
	operations   *prometheus.CounterVec
	durations    *prometheus.HistogramVec
	snapshotSize *prometheus.GaugeVec
	dataIssues   *prometheus.CounterVec
}

// NewPrometheus registers the collectors on reg and returns a recorder.
func NewPrometheus(reg prometheus.Registerer) (Metrics, error) {
	m := &prometheusMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "irock",
			Name:      "operations_total",
			Help:      "Operations by service, name and outcome.",
		}, []string{"service", "operation", "outcome"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "irock",
			Name:      "operation_duration_seconds",
			Help:      "Operation latency by service and name.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "operation"}),
		snapshotSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "irock",
			Name:      "snapshot_records",
			Help:      "Records in the latest backend snapshot by collection.",
		}, []string{"collection"}),
		dataIssues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "irock",
			Name:      "snapshot_data_issues_total",
			Help:      "Inconsistencies found while syncing the backend.",
		}, []string{"kind"}),
	}

	for _, c := range []prometheus.Collector{m.operations, m.durations, m.snapshotSize, m.dataIssues} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "attempt").Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "success").Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "failure").Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, duration time.Duration) {
	m.durations.WithLabelValues(service, operation).Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordSnapshotSize(_ context.Context, participants, blocks, ascensions int) {
	m.snapshotSize.WithLabelValues("participants").Set(float64(participants))
	m.snapshotSize.WithLabelValues("blocks").Set(float64(blocks))
	m.snapshotSize.WithLabelValues("ascensions").Set(float64(ascensions))
}

func (m *prometheusMetrics) RecordDataIssue(_ context.Context, kind string) {
	m.dataIssues.WithLabelValues(kind).Inc()
}

type noop struct{}

// NewNoop returns a recorder that discards everything.
func NewNoop() Metrics { return noop{} }

func (noop) RecordOperationAttempt(context.Context, string, string)                {}
func (noop) RecordOperationSuccess(context.Context, string, string)                {}
func (noop) RecordOperationFailure(context.Context, string, string)                {}
func (noop) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (noop) RecordSnapshotSize(context.Context, int, int, int)                     {}
func (noop) RecordDataIssue(context.Context, string)                               {}
