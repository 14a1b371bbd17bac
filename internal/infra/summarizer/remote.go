package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"article-summarizer/internal/observability/logging"
	"article-summarizer/internal/observability/tracing"
	"article-summarizer/internal/resilience/circuitbreaker"
	"article-summarizer/internal/resilience/retry"
	"article-summarizer/internal/utils/text"
)

// callFunc performs one attempt against a backend.
type callFunc func(ctx context.Context, input string) (string, error)

// remote is the call path shared by every hosted backend: input guard, timeout, optional
// retry, circuit breaker, logging, tracing and metrics around a provider-specific callFunc.
type remote struct {
	provider       string
	model          string
	timeout        time.Duration
	maxInputTokens int
	encoding       string
	tokens         text.TokenCounter
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	metrics        MetricsRecorder
}

func newRemote(provider, model, encoding string, cfg Config) remote {
	retryConfig := retry.SummarizerConfig()
	retryConfig.MaxAttempts = max(cfg.MaxAttempts, 1)

	return remote{
		provider:       provider,
		model:          model,
		timeout:        cfg.Timeout,
		maxInputTokens: cfg.MaxInputTokens,
		encoding:       encoding,
		tokens:         text.NewTokenCounter(encoding),
		circuitBreaker: circuitbreaker.New(circuitbreaker.SummarizerConfig(provider)),
		retryConfig:    retryConfig,
		metrics:        NewPrometheusMetrics(),
	}
}

// Model returns the model name sent to the provider.
func (r *remote) Model() string {
	return r.model
}

// CircuitBreaker exposes the provider's breaker for health checks.
func (r *remote) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

func (r *remote) summarize(ctx context.Context, input string, call callFunc) (string, error) {
	requestID := uuid.New().String()
	logger := logging.FromContext(ctx).With(
		slog.String("summarizer_request_id", requestID),
		slog.String("provider", r.provider),
		slog.String("model", r.model))

	ctx, span := tracing.Start(ctx, "summarizer.Summarize",
		attribute.String("summarizer.provider", r.provider),
		attribute.String("summarizer.model", r.model),
		attribute.Int("summarizer.input_characters", text.CountRunes(input)))
	defer span.End()

	if r.maxInputTokens > 0 {
		if n := r.tokens.CountTokens(input); n > r.maxInputTokens {
			err := fmt.Errorf("%w: about %d tokens, %s accepts %d", ErrInputTooLong, n, r.model, r.maxInputTokens)
			r.metrics.RecordCall(r.provider, outcomeRejected, 0)
			tracing.RecordError(span, err)
			logger.Warn("summarizer input rejected by token estimate",
				slog.Int("estimated_tokens", n),
				slog.String("estimate_encoding", r.encoding))
			return "", err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	logger.Debug("summarization started", slog.Int("input_length", text.CountRunes(input)))
	start := time.Now()

	var summary string
	attempt := 0
	err := retry.WithBackoff(logging.WithLogger(ctx, logger), r.retryConfig, func() error {
		attempt++
		if attempt > 1 {
			r.metrics.RecordRetry(r.provider)
		}
		s, err := circuitbreaker.Do(r.circuitBreaker, func() (string, error) {
			return call(ctx, input)
		})
		if err != nil {
			return err
		}
		summary = strings.TrimSpace(s)
		return nil
	})
	duration := time.Since(start)

	if err == nil && summary == "" {
		err = ErrEmptySummary
	}
	if err != nil {
		outcome := outcomeError
		if errors.Is(err, ErrCircuitOpen) {
			outcome = outcomeCircuitOpen
		}
		r.metrics.RecordCall(r.provider, outcome, duration)
		tracing.RecordError(span, err)
		logger.Error("summarization failed",
			slog.Int("attempts", attempt),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return "", fmt.Errorf("%s summarize: %w", r.provider, err)
	}

	length := text.CountRunes(summary)
	r.metrics.RecordCall(r.provider, outcomeSuccess, duration)
	r.metrics.RecordSummaryLength(r.provider, length)
	span.SetAttributes(attribute.Int("summarizer.summary_characters", length))
	logger.Debug("summarization completed",
		slog.Int("summary_length", length),
		slog.Int("attempts", attempt),
		slog.Duration("duration", duration))

	return summary, nil
}

// statusError converts a provider SDK status code into a *retry.HTTPError so that the
// retry policy can classify it.
func statusError(statusCode int, err error) error {
	httpErr := &retry.HTTPError{StatusCode: statusCode, Message: http.StatusText(statusCode)}
	return fmt.Errorf("%w: %w", httpErr, err)
}
