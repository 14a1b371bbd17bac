package summarize

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"article-summarizer/internal/observability/logging"
	"article-summarizer/internal/observability/metrics"
	"article-summarizer/internal/observability/tracing"
	"article-summarizer/internal/utils/text"
)

// DefaultMinContentLength is the shortest article text, in characters, worth summarizing.
const DefaultMinContentLength = 500

// Result is the output of one pipeline run.
type Result struct {
	URL      string        `json:"url,omitempty" yaml:"url,omitempty"`
	Preview  string        `json:"preview" yaml:"preview"`
	Summary  string        `json:"summary" yaml:"summary"`
	Length   int           `json:"length" yaml:"length"`
	Chunks   int           `json:"chunks" yaml:"chunks"`
	Calls    int           `json:"summarizer_calls" yaml:"summarizer_calls"`
	Cached   bool          `json:"cached" yaml:"cached"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Service runs the summarize pipeline: fetch, minimum length check, cache lookup, reduction.
type Service struct {
	fetcher          ContentFetcher
	reducer          *Reducer
	cache            Cache
	cacheNamespace   string
	minContentLength int
	previewLength    int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithCache enables the summary cache. namespace separates summaries produced by
// different backends (for example "huggingface/facebook/bart-large-cnn").
func WithCache(c Cache, namespace string) ServiceOption {
	return func(s *Service) {
		s.cache = c
		s.cacheNamespace = namespace
	}
}

// WithMinContentLength sets the minimum article length in characters.
func WithMinContentLength(n int) ServiceOption {
	return func(s *Service) { s.minContentLength = n }
}

// WithPreviewLength sets how many characters of the article go into Result.Preview.
func WithPreviewLength(n int) ServiceOption {
	return func(s *Service) { s.previewLength = n }
}

// NewService creates the pipeline.
//
// Parameters:
//   - fetcher: retrieves article text; may be nil when only SummarizeText is used
//   - reducer: condenses the article text
//   - opts: cache, minimum content length and preview length
//
// Example:
//
//	reducer, _ := summarize.NewReducer(sum, summarize.WithChunkSize(3000))
//	svc := summarize.NewService(fetcher, reducer, summarize.WithMinContentLength(500))
//	res, err := svc.SummarizeURL(ctx, "https://example.com/post")
func NewService(fetcher ContentFetcher, reducer *Reducer, opts ...ServiceOption) *Service {
	s := &Service{
		fetcher:          fetcher,
		reducer:          reducer,
		minContentLength: DefaultMinContentLength,
		previewLength:    text.DefaultPreviewLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SummarizeURL fetches the article at url and summarizes it.
//
// Errors are *Error values: KindFetch when the article cannot be retrieved (the
// summarizer is never called), KindInsufficientContent when the text is shorter than
// the minimum length (the summarizer is never called), KindModel when summarization fails.
func (s *Service) SummarizeURL(ctx context.Context, url string) (*Result, error) {
	ctx, span := tracing.Start(ctx, "summarize.SummarizeURL", attribute.String("url", url))
	defer span.End()

	start := time.Now()
	res, err := s.summarizeURL(ctx, url)
	s.observe(ctx, start, err, slog.String("url", url))
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	res.URL = url
	res.Duration = time.Since(start)
	return res, nil
}

func (s *Service) summarizeURL(ctx context.Context, url string) (*Result, error) {
	if s.fetcher == nil {
		return nil, NewFetchError(errors.New("no content fetcher configured"))
	}
	article, err := s.fetcher.FetchContent(ctx, url)
	if err != nil {
		return nil, NewFetchError(err)
	}
	return s.summarize(ctx, article)
}

// SummarizeText summarizes article text that was obtained elsewhere (a local file, stdin).
// It applies the same minimum length check and cache as SummarizeURL.
func (s *Service) SummarizeText(ctx context.Context, article string) (*Result, error) {
	ctx, span := tracing.Start(ctx, "summarize.SummarizeText")
	defer span.End()

	start := time.Now()
	res, err := s.summarize(ctx, article)
	s.observe(ctx, start, err)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	res.Duration = time.Since(start)
	return res, nil
}

func (s *Service) summarize(ctx context.Context, article string) (*Result, error) {
	logger := logging.FromContext(ctx)

	n := text.CountRunes(article)
	metrics.RecordArticleLength(n)
	if n < s.minContentLength {
		return nil, NewInsufficientContentError(n, s.minContentLength)
	}

	res := &Result{
		Preview: text.Preview(article, s.previewLength),
		Length:  n,
	}

	var key string
	if s.cache != nil {
		key = s.CacheKey(article)
		summary, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.RecordCacheLookup(metrics.CacheError)
			logger.Warn("summary cache lookup failed", slog.Any("error", err))
		case ok:
			metrics.RecordCacheLookup(metrics.CacheHit)
			res.Summary = summary
			res.Cached = true
			return res, nil
		default:
			metrics.RecordCacheLookup(metrics.CacheMiss)
		}
	}

	red, err := s.reducer.Reduce(ctx, article)
	if err != nil {
		return nil, err
	}
	res.Summary = red.Summary
	res.Chunks = red.Chunks
	res.Calls = red.Calls

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, red.Summary); err != nil {
			logger.Warn("summary cache store failed", slog.Any("error", err))
		}
	}
	return res, nil
}

// CacheKey derives the cache key for article under the current namespace and
// reducer settings.
func (s *Service) CacheKey(article string) string {
	h := sha256.New()
	h.Write([]byte(s.cacheNamespace))
	h.Write([]byte{0})
	h.Write([]byte(s.reducer.Fingerprint()))
	h.Write([]byte{0})
	h.Write([]byte(article))
	return hex.EncodeToString(h.Sum(nil))
}

func (s *Service) observe(ctx context.Context, start time.Time, err error, attrs ...slog.Attr) {
	duration := time.Since(start)
	outcome := Outcome(err)
	metrics.RecordSummarizeRequest(outcome, duration)

	args := make([]any, 0, len(attrs)+3)
	for _, a := range attrs {
		args = append(args, a)
	}
	args = append(args, slog.String("outcome", outcome), slog.Duration("duration", duration))

	logger := logging.FromContext(ctx)
	if err != nil {
		args = append(args, slog.Any("error", err))
		logger.Warn("summarize failed", args...)
		return
	}
	logger.Info("summarize completed", args...)
}

// Outcome maps a pipeline error to its metrics label.
func Outcome(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	switch KindOf(err) {
	case KindFetch:
		return metrics.OutcomeFetchError
	case KindInsufficientContent:
		return metrics.OutcomeInsufficientContent
	case KindModel:
		return metrics.OutcomeModelError
	default:
		return metrics.OutcomeError
	}
}
