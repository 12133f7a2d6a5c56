package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Outcomes recorded for an engine operation.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
	OutcomeSkipped = "skipped"
	OutcomeStale   = "stale"
)

// Operations records engine operation counts and durations.
// A nil *Operations is valid and records spans only.
type Operations struct {
	count    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewOperations registers the operation collectors on reg.
func NewOperations(reg prometheus.Registerer) (*Operations, error) {
	o := &Operations{
		count: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "collabcore_operations_total",
				Help: "Total number of state engine operations by outcome.",
			},
			[]string{"component", "operation", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "collabcore_operation_duration_seconds",
				Help:    "Duration of state engine operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"component", "operation"},
		),
	}
	if err := reg.Register(o.count); err != nil {
		return nil, err
	}
	if err := reg.Register(o.duration); err != nil {
		return nil, err
	}
	return o, nil
}

// Op is one in-flight operation.
type Op struct {
	ops       *Operations
	span      trace.Span
	component string
	operation string
	start     time.Time
}

// Start opens a span named component.operation and starts the clock.
func (o *Operations) Start(ctx context.Context, component, operation string, attrs ...attribute.KeyValue) (context.Context, *Op) {
	ctx, span := otel.Tracer("collabcore/"+component).Start(ctx, component+"."+operation, trace.WithAttributes(attrs...))
	return ctx, &Op{ops: o, span: span, component: component, operation: operation, start: time.Now()}
}

// End records the outcome and closes the span. err, when set, is attached to the span.
func (op *Op) End(outcome string, err error) {
	op.span.SetAttributes(attribute.String("outcome", outcome))
	if err != nil {
		op.span.RecordError(err)
		op.span.SetStatus(codes.Error, err.Error())
	}
	op.span.End()

	if op.ops == nil {
		return
	}
	op.ops.count.WithLabelValues(op.component, op.operation, outcome).Inc()
	op.ops.duration.WithLabelValues(op.component, op.operation).Observe(time.Since(op.start).Seconds())
}
