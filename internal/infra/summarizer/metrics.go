package summarizer

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Call outcomes recorded by MetricsRecorder.
const (
	outcomeSuccess     = "success"
	outcomeError       = "error"
	outcomeRejected    = "rejected"
	outcomeCircuitOpen = "circuit_open"
)

// MetricsRecorder records per-call summarizer metrics.
// Tests inject a fake instead of the Prometheus implementation.
type MetricsRecorder interface {
	// RecordCall records one logical call (retries included) and its outcome.
	RecordCall(provider, outcome string, duration time.Duration)

	// RecordSummaryLength records the length of a returned summary in characters.
	RecordSummaryLength(provider string, length int)

	// RecordRetry counts an attempt after the first.
	RecordRetry(provider string)
}

// PrometheusMetrics implements MetricsRecorder with Prometheus collectors.
type PrometheusMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	length   *prometheus.HistogramVec
	retries  *prometheus.CounterVec
}

var (
	prometheusMetricsInstance *PrometheusMetrics
	prometheusMetricsOnce     sync.Once
)

// getOrCreateCounterVec returns the already registered collector when one exists.
func getOrCreateCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		return promauto.NewCounterVec(opts, labels)
	}
	return c
}

func getOrCreateHistogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(opts, labels)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.HistogramVec)
		}
		return promauto.NewHistogramVec(opts, labels)
	}
	return h
}

// NewPrometheusMetrics returns the process-wide Prometheus recorder.
func NewPrometheusMetrics() *PrometheusMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusMetrics{
			calls: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "summarizer_calls_total",
				Help: "Total summarizer calls by provider and outcome",
			}, []string{"provider", "outcome"}),
			duration: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "summarizer_call_duration_seconds",
				Help:    "Time taken by one summarizer call, retries included",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
			}, []string{"provider"}),
			length: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "summarizer_summary_length_characters",
				Help:    "Distribution of returned summary lengths in characters",
				Buckets: []float64{50, 100, 200, 400, 800, 1600, 3200},
			}, []string{"provider"}),
			retries: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "summarizer_retries_total",
				Help: "Total retried summarizer attempts by provider",
			}, []string{"provider"}),
		}
	})
	return prometheusMetricsInstance
}

// RecordCall implements MetricsRecorder.
func (p *PrometheusMetrics) RecordCall(provider, outcome string, duration time.Duration) {
	p.calls.WithLabelValues(provider, outcome).Inc()
	p.duration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordSummaryLength implements MetricsRecorder.
func (p *PrometheusMetrics) RecordSummaryLength(provider string, length int) {
	p.length.WithLabelValues(provider).Observe(float64(length))
}

// RecordRetry implements MetricsRecorder.
func (p *PrometheusMetrics) RecordRetry(provider string) {
	p.retries.WithLabelValues(provider).Inc()
}
