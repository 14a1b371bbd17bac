// Package resilience holds the fault tolerance helpers used around article fetches and
// summarization backends.
//
//   - circuitbreaker: sony/gobreaker wrapper with per-backend presets
//   - retry: exponential backoff with jitter for transient errors
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.SummarizerConfig("huggingface"))
//	summary, err := circuitbreaker.Do(cb, func() (string, error) {
//	    return callBackend(ctx, text)
//	})
//
//	err := retry.WithBackoff(ctx, retry.SummarizerConfig(), func() error {
//	    return performCall()
//	})
package resilience
