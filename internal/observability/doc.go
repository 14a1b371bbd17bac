// Package observability groups the logging, metrics and tracing helpers used by the
// summarizer binaries.
//
// Subpackages:
//   - logging: slog construction, LOG_LEVEL handling and context propagation
//   - metrics: Prometheus collectors for HTTP traffic and the summarize pipeline
//   - tracing: OpenTelemetry tracer and HTTP server middleware
package observability
