package observability

import "go.opentelemetry.io/otel/attribute"

// Instrumentation identity constants
const (
	// TracerName is the instrumentation name for tracing.
	TracerName = "github.com/querykit/go-querykit"
	// MeterName is the instrumentation name for metrics.
	MeterName = "github.com/querykit/go-querykit"
)

// Semantic attribute keys following OpenTelemetry conventions.
const (
	// AttrParameterType is the Go type a predicate is bound to.
	AttrParameterType = "querykit.parameter_type"
	// AttrSourceType is the source type of a projection.
	AttrSourceType = "querykit.source_type"
	// AttrDestinationType is the destination type of a projection.
	AttrDestinationType = "querykit.destination_type"
	// AttrOperation names the library operation.
	AttrOperation = "querykit.operation"
	// AttrCacheHit reports whether a compile was served from the cache.
	AttrCacheHit = "querykit.cache_hit"
	// AttrNeutralizedMembers counts member accesses neutralized during a
	// projection.
	AttrNeutralizedMembers = "querykit.neutralized_members"
	// AttrDialect is the SQL dialect a condition was rendered for.
	AttrDialect = "querykit.dialect"
)

// Operation names for the querykit.operation attribute.
const (
	OpCompile = "compile"
	OpProject = "project"
	OpApply   = "apply"
)

// Log field keys for structured logging with trace context.
const (
	LogFieldTraceID = "trace_id"
	LogFieldSpanID  = "span_id"
)

// ParameterTypeAttr builds the parameter type attribute.
func ParameterTypeAttr(t string) attribute.KeyValue {
	return attribute.String(AttrParameterType, t)
}

// OperationAttr builds the operation attribute.
func OperationAttr(op string) attribute.KeyValue {
	return attribute.String(AttrOperation, op)
}

// DialectAttr builds the SQL dialect attribute.
func DialectAttr(dialect string) attribute.KeyValue {
	return attribute.String(AttrDialect, dialect)
}
