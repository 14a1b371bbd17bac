package summarizer

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"article-summarizer/internal/usecase/summarize"
)

// RateLimited wraps a Summarizer with a token bucket shared by every caller, so that a
// parallel reduction stays inside the provider's request quota.
type RateLimited struct {
	next    summarize.Summarizer
	limiter *rate.Limiter
}

// NewRateLimited allows requestsPerSecond sustained calls with bursts of up to burst.
//
// Example:
//
//	s := NewRateLimited(NewClaude(cfg), 2.0, 5) // 2 req/s with burst of 5
func NewRateLimited(next summarize.Summarizer, requestsPerSecond float64, burst int) *RateLimited {
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Summarize blocks until a token is available or ctx is done, then calls the wrapped
// Summarizer.
func (r *RateLimited) Summarize(ctx context.Context, input string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	return r.next.Summarize(ctx, input)
}

// Unwrap returns the wrapped Summarizer.
func (r *RateLimited) Unwrap() summarize.Summarizer {
	return r.next
}
