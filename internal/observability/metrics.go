package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the library-specific metric instruments.
type Metrics struct {
	compileCount       metric.Int64Counter
	projectionCount    metric.Int64Counter
	neutralizedMembers metric.Int64Counter
	errorCount         metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with the given MeterProvider.
func NewMetrics(mp metric.MeterProvider) *Metrics {
	meter := mp.Meter(MeterName)
	m := &Metrics{}

	// Note: errors from meter instrument creation are unlikely in practice
	// and would only occur with invalid parameters. We use explicit checks
	// to satisfy the linter while continuing with partial metrics on error.
	var err error

	m.compileCount, err = meter.Int64Counter(
		"querykit.compile.count",
		metric.WithDescription("Total number of predicate compilations"),
		metric.WithUnit("{compilation}"),
	)
	if err != nil {
		m.compileCount, _ = meter.Int64Counter("querykit.compile.count")
	}

	m.projectionCount, err = meter.Int64Counter(
		"querykit.projection.count",
		metric.WithDescription("Total number of predicate type projections"),
		metric.WithUnit("{projection}"),
	)
	if err != nil {
		m.projectionCount, _ = meter.Int64Counter("querykit.projection.count")
	}

	m.neutralizedMembers, err = meter.Int64Counter(
		"querykit.projection.neutralized_members",
		metric.WithDescription("Member accesses neutralized to constant true during projection"),
		metric.WithUnit("{member}"),
	)
	if err != nil {
		m.neutralizedMembers, _ = meter.Int64Counter("querykit.projection.neutralized_members")
	}

	m.errorCount, err = meter.Int64Counter(
		"querykit.error.count",
		metric.WithDescription("Total number of querykit errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		m.errorCount, _ = meter.Int64Counter("querykit.error.count")
	}

	return m
}

// RecordCompile records a predicate compilation.
func (m *Metrics) RecordCompile(ctx context.Context, parameterType string, cacheHit bool) {
	m.compileCount.Add(ctx, 1, metric.WithAttributes(
		ParameterTypeAttr(parameterType),
		attribute.Bool(AttrCacheHit, cacheHit),
	))
}

// RecordProjection records a type projection and how many member accesses
// were neutralized during it.
func (m *Metrics) RecordProjection(ctx context.Context, sourceType, destinationType string, neutralized int) {
	attrs := metric.WithAttributes(
		attribute.String(AttrSourceType, sourceType),
		attribute.String(AttrDestinationType, destinationType),
	)
	m.projectionCount.Add(ctx, 1, attrs)
	if neutralized > 0 {
		m.neutralizedMembers.Add(ctx, int64(neutralized), attrs)
	}
}

// RecordError records an error occurrence.
func (m *Metrics) RecordError(ctx context.Context, operation string) {
	m.errorCount.Add(ctx, 1, metric.WithAttributes(OperationAttr(operation)))
}
