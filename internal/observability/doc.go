// Package observability provides OpenTelemetry-based instrumentation for
// predicate compilation, projection, and query application.
//
// All observability features are opt-in. When not configured, no-op
// implementations are used with zero performance overhead.
package observability
