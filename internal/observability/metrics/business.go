package metrics

import (
	"strconv"
	"time"
)

// Pipeline outcome labels.
const (
	OutcomeSuccess             = "success"
	OutcomeFetchError          = "fetch_error"
	OutcomeInsufficientContent = "insufficient_content"
	OutcomeModelError          = "model_error"
	OutcomeError               = "error"
)

// Cache lookup labels.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// RecordSummarizeRequest records one pipeline run.
func RecordSummarizeRequest(outcome string, duration time.Duration) {
	SummarizeRequestsTotal.WithLabelValues(outcome).Inc()
	SummarizeDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordArticleLength records the length in characters of a fetched article.
func RecordArticleLength(characters int) {
	ArticleLength.Observe(float64(characters))
}

// RecordReduction records the shape of a completed reduction.
func RecordReduction(chunks, calls int) {
	ReductionChunks.Observe(float64(chunks))
	ReductionCalls.Observe(float64(calls))
}

// RecordCacheLookup records a summary cache lookup result (CacheHit, CacheMiss, CacheError).
func RecordCacheLookup(result string) {
	CacheLookupsTotal.WithLabelValues(result).Inc()
}

// RecordContentFetch records one article fetch.
// size is the number of body bytes read; it is ignored when zero.
func RecordContentFetch(mode string, success bool, duration time.Duration, size int64) {
	result := "success"
	if !success {
		result = "failure"
	}
	ContentFetchAttemptsTotal.WithLabelValues(mode, result).Inc()
	ContentFetchDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if size > 0 {
		ContentFetchSize.WithLabelValues(mode).Observe(float64(size))
	}
}

// RecordHTTPRequest records an HTTP request with its metadata.
func RecordHTTPRequest(method, path string, status int, duration time.Duration, requestSize int64, responseSize int) {
	code := strconv.Itoa(status)
	HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}
