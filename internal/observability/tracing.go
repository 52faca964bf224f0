package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer wraps an OpenTelemetry tracer with library-specific span creation
// methods.
type Tracer struct {
	tracer      trace.Tracer
	libraryName string
}

// NewTracer creates a new Tracer using the given TracerProvider.
func NewTracer(tp trace.TracerProvider, libraryName string) *Tracer {
	return &Tracer{
		tracer:      tp.Tracer(TracerName),
		libraryName: libraryName,
	}
}

// StartSpan starts a new span with the given name and attributes.
func (t *Tracer) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span
}

// StartCompile starts a span for compiling a predicate into a callable.
func (t *Tracer) StartCompile(ctx context.Context, parameterType string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "querykit.compile", trace.WithAttributes(
		OperationAttr(OpCompile),
		ParameterTypeAttr(parameterType),
	))
}

// StartProjection starts a span for projecting a predicate onto another type.
func (t *Tracer) StartProjection(ctx context.Context, sourceType, destinationType string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "querykit.project", trace.WithAttributes(
		OperationAttr(OpProject),
		attribute.String(AttrSourceType, sourceType),
		attribute.String(AttrDestinationType, destinationType),
	))
}

// StartApply starts a span for rendering a predicate into a query condition.
func (t *Tracer) StartApply(ctx context.Context, dialect string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "querykit.apply", trace.WithAttributes(
		OperationAttr(OpApply),
		DialectAttr(dialect),
	))
}

// RecordError records an error on the span.
func (t *Tracer) RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// LoggerWithTrace returns a logger enriched with trace context.
func LoggerWithTrace(ctx context.Context, logger *slog.Logger) *slog.Logger {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return logger
	}
	return logger.With(
		slog.String(LogFieldTraceID, span.SpanContext().TraceID().String()),
		slog.String(LogFieldSpanID, span.SpanContext().SpanID().String()),
	)
}
