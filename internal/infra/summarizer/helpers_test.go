package summarizer

import (
	"sync"
	"time"

	"article-summarizer/internal/resilience/retry"
)

type fakeMetrics struct {
	mu       sync.Mutex
	outcomes []string
	lengths  []int
	retries  int
}

func (f *fakeMetrics) RecordCall(_ string, outcome string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes = append(f.outcomes, outcome)
}

func (f *fakeMetrics) RecordSummaryLength(_ string, length int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lengths = append(f.lengths, length)
}

func (f *fakeMetrics) RecordRetry(string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.retries++
}

// fastRetry keeps retry tests quick while still exercising backoff.
func fastRetry(attempts int) retry.Config {
	return retry.Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

// testRemote replaces the Prometheus recorder and shortens the retry delays,
// keeping the configured attempt count.
func testRemote(r *remote) *fakeMetrics {
	m := &fakeMetrics{}
	r.metrics = m
	r.retryConfig = fastRetry(r.retryConfig.MaxAttempts)
	return m
}
