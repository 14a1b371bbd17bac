package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 6),
		},
		[]string{"method", "path"},
	)

	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 6),
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// Pipeline metrics
var (
	// SummarizeRequestsTotal counts pipeline runs by outcome
	// (success, fetch_error, insufficient_content, model_error, error).
	SummarizeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarize_requests_total",
			Help: "Total number of summarize pipeline runs",
		},
		[]string{"outcome"},
	)

	SummarizeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "summarize_duration_seconds",
			Help:    "End-to-end duration of a summarize pipeline run",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"outcome"},
	)

	ArticleLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "article_length_characters",
			Help:    "Length of fetched article text in characters",
			Buckets: []float64{250, 500, 1000, 3000, 6000, 12000, 24000, 48000, 96000},
		},
	)

	ReductionChunks = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reduction_chunks",
			Help:    "Number of chunks in the first reduction pass",
			Buckets: []float64{1, 2, 3, 4, 6, 8, 12, 16, 32},
		},
	)

	ReductionCalls = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reduction_summarizer_calls",
			Help:    "Summarizer calls made by one reduction",
			Buckets: []float64{2, 3, 4, 5, 7, 9, 13, 17, 33},
		},
	)

	// CacheLookupsTotal counts summary cache lookups by result (hit, miss, error).
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summary_cache_lookups_total",
			Help: "Total number of summary cache lookups",
		},
		[]string{"result"},
	)
)

// Fetch metrics
var (
	// ContentFetchAttemptsTotal counts article fetches by fetcher mode and result.
	ContentFetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fetch_attempts_total",
			Help: "Total number of article fetch attempts",
		},
		[]string{"mode", "result"},
	)

	ContentFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "content_fetch_duration_seconds",
			Help:    "Time taken to fetch and extract article text",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
		[]string{"mode"},
	)

	ContentFetchSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "content_fetch_size_bytes",
			Help: "Size of downloaded article bodies in bytes",
			Buckets: []float64{
				1024, 4096, 16384, 65536, 262144, 1048576, 4194304, 10485760,
			},
		},
		[]string{"mode"},
	)
)
