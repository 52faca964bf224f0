package querykit

import (
	"sync/atomic"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/querykit/go-querykit/internal/observability"
)

// ObservabilityConfig configures OpenTelemetry instrumentation for the
// library. All fields are optional; a nil provider disables the
// corresponding signal.
type ObservabilityConfig struct {
	// TracerProvider enables tracing of compile, project, and apply
	// operations when set.
	TracerProvider trace.TracerProvider

	// MeterProvider enables metrics collection when set.
	MeterProvider metric.MeterProvider

	// LibraryName overrides the name reported in traces and metrics.
	LibraryName string
}

// obsConfig holds the installed configuration. The zero value (nil) means
// no-op instrumentation.
var obsConfig atomic.Pointer[observability.Config]

// SetObservability installs an observability configuration for the whole
// library. Passing a zero ObservabilityConfig resets to no-op behavior.
func SetObservability(cfg ObservabilityConfig) error {
	opts := []observability.Option{
		observability.WithLibraryVersion(Version),
	}
	if cfg.TracerProvider != nil {
		opts = append(opts, observability.WithTracerProvider(cfg.TracerProvider))
	}
	if cfg.MeterProvider != nil {
		opts = append(opts, observability.WithMeterProvider(cfg.MeterProvider))
	}
	if cfg.LibraryName != "" {
		opts = append(opts, observability.WithLibraryName(cfg.LibraryName))
	}

	c := observability.NewConfig(opts...)
	if err := c.Initialize(); err != nil {
		return err
	}
	obsConfig.Store(c)
	return nil
}

// obs returns the installed configuration. A nil result is safe: the
// config's accessors fall back to no-op implementations.
func obs() *observability.Config {
	return obsConfig.Load()
}
