// Package metrics provides the Prometheus collectors shared across the summarizer.
//
// It covers:
//   - HTTP request metrics (duration, count, size, in-flight)
//   - Summarize pipeline metrics (outcomes, article length, chunk counts, cache lookups)
//   - Article fetch metrics
//
// All collectors are registered with the default Prometheus registry and exposed by the
// /metrics endpoint of cmd/web.
//
// Example usage:
//
//	start := time.Now()
//	res, err := svc.SummarizeURL(ctx, u)
//	metrics.RecordSummarizeRequest(metrics.OutcomeFor(err), time.Since(start))
package metrics
