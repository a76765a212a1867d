// Package contestmetrics records service, handler and scoring metrics for
// the contest modules.
package contestmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is implemented by every module's metrics recorder.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)

	RecordHandlerAttempt(ctx context.Context, handler string)
	RecordHandlerSuccess(ctx context.Context, handler string)
	RecordHandlerFailure(ctx context.Context, handler string)
	RecordHandlerDuration(ctx context.Context, handler string, duration time.Duration)

	// RecordScoresFlagged counts official scores flagged by variance detection.
	RecordScoresFlagged(ctx context.Context, category string, count int)
	// RecordAdvancement counts competitors advanced out of a round of the given kind.
	RecordAdvancement(ctx context.Context, roundKind string, count int)
}

// PrometheusMetrics registers one set of collectors per module.
type PrometheusMetrics struct {
	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	handlers          *prometheus.CounterVec
	handlerDuration   *prometheus.HistogramVec
	flagged           *prometheus.CounterVec
	advanced          *prometheus.CounterVec
}

var _ Metrics = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics registers collectors on reg under the module's subsystem.
func NewPrometheusMetrics(reg prometheus.Registerer, module string) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barbershop",
			Subsystem: module,
			Name:      "operations_total",
			Help:      "Service operations by outcome.",
		}, []string{"operation", "status"}),
		operationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "barbershop",
			Subsystem: module,
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		handlers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barbershop",
			Subsystem: module,
			Name:      "handler_messages_total",
			Help:      "Messages handled by outcome.",
		}, []string{"handler", "status"}),
		handlerDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "barbershop",
			Subsystem: module,
			Name:      "handler_duration_seconds",
			Help:      "Message handler latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"handler"}),
		flagged: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barbershop",
			Subsystem: module,
			Name:      "scores_flagged_total",
			Help:      "Official scores flagged for variance.",
		}, []string{"category"}),
		advanced: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barbershop",
			Subsystem: module,
			Name:      "competitors_advanced_total",
			Help:      "Competitors advanced to a following round.",
		}, []string{"round_kind"}),
	}
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.operations.WithLabelValues(operation, "attempt").Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.operations.WithLabelValues(operation, "success").Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.operations.WithLabelValues(operation, "failure").Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordHandlerAttempt(_ context.Context, handler string) {
	m.handlers.WithLabelValues(handler, "attempt").Inc()
}

func (m *PrometheusMetrics) RecordHandlerSuccess(_ context.Context, handler string) {
	m.handlers.WithLabelValues(handler, "success").Inc()
}

func (m *PrometheusMetrics) RecordHandlerFailure(_ context.Context, handler string) {
	m.handlers.WithLabelValues(handler, "failure").Inc()
}

func (m *PrometheusMetrics) RecordHandlerDuration(_ context.Context, handler string, duration time.Duration) {
	m.handlerDuration.WithLabelValues(handler).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordScoresFlagged(_ context.Context, category string, count int) {
	m.flagged.WithLabelValues(category).Add(float64(count))
}

func (m *PrometheusMetrics) RecordAdvancement(_ context.Context, roundKind string, count int) {
	m.advanced.WithLabelValues(roundKind).Add(float64(count))
}
