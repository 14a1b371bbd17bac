// Package summarizer provides the text summarization backends used by the map-reduce
// pipeline: a Hugging Face hosted BART model, Claude, OpenAI (chat completions and the
// Responses API) and a deterministic offline NoOp.
//
// Remote backends share one call path with a per-call timeout, retry with exponential
// backoff, a per-provider circuit breaker, a request ID in logs and Prometheus metrics.
package summarizer

import (
	"errors"

	"article-summarizer/internal/resilience/circuitbreaker"
)

var (
	// ErrInputTooLong is returned before any remote call when the estimated token count of
	// the input exceeds the model's input limit.
	ErrInputTooLong = errors.New("input exceeds model limit")

	// ErrEmptySummary is returned when a backend answers without any summary text.
	ErrEmptySummary = errors.New("model returned an empty summary")

	// ErrCircuitOpen is returned when a provider's circuit breaker rejects the call.
	ErrCircuitOpen = circuitbreaker.ErrOpen
)
