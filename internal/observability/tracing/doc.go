// Package tracing provides OpenTelemetry tracing for the summarizer.
//
// Spans are created around HTTP requests (Middleware), article fetches and every
// summarization call. The tracer provider is whatever the binary installs with
// otel.SetTracerProvider; without one the global no-op provider is used.
//
// Example usage:
//
//	ctx, span := tracing.Start(ctx, "fetch.content", attribute.String("url", u))
//	defer span.End()
package tracing
