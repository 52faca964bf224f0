package querykit

import (
	"testing"

	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func TestSetObservabilityInstallsConfig(t *testing.T) {
	t.Cleanup(func() { obsConfig.Store(nil) })

	err := SetObservability(ObservabilityConfig{
		TracerProvider: tracenoop.NewTracerProvider(),
		MeterProvider:  metricnoop.NewMeterProvider(),
		LibraryName:    "querykit-test",
	})
	if err != nil {
		t.Fatalf("SetObservability returned error: %v", err)
	}

	cfg := obs()
	if cfg == nil {
		t.Fatal("expected an installed configuration")
	}
	if !cfg.IsEnabled() {
		t.Error("expected the configuration to report enabled")
	}
}

func TestObservabilityDefaultsToNoop(t *testing.T) {
	obsConfig.Store(nil)

	cfg := obs()
	if cfg.Tracer() == nil {
		t.Fatal("expected a usable no-op tracer")
	}
	if cfg.Metrics() == nil {
		t.Fatal("expected usable no-op metrics")
	}

	// Instrumented operations must work without any configuration.
	p := whereAccount(t, func(it *ParameterExpr) Expr {
		return Equal(Field(it, "Active"), Constant(true))
	})
	if !matchAccount(t, p, account{Active: true}) {
		t.Error("expected evaluation to work with no-op observability")
	}
}
