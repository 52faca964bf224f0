package observability

import (
	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// NewNoopTracer creates a tracer that does nothing.
func NewNoopTracer() *Tracer {
	return &Tracer{
		tracer:      tracenoop.NewTracerProvider().Tracer(""),
		libraryName: "",
	}
}

// NewNoopMetrics creates metrics that do nothing.
func NewNoopMetrics() *Metrics {
	meter := noop.NewMeterProvider().Meter("")
	m := &Metrics{}

	// Note: noop meter never returns errors, but we must check them to satisfy the linter.
	m.compileCount, _ = meter.Int64Counter("querykit.compile.count")                             //nolint:errcheck
	m.projectionCount, _ = meter.Int64Counter("querykit.projection.count")                       //nolint:errcheck
	m.neutralizedMembers, _ = meter.Int64Counter("querykit.projection.neutralized_members") //nolint:errcheck
	m.errorCount, _ = meter.Int64Counter("querykit.error.count")                                 //nolint:errcheck

	return m
}
