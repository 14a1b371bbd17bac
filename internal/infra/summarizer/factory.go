package summarizer

import (
	"fmt"
	"log/slog"

	"article-summarizer/internal/resilience/circuitbreaker"
	"article-summarizer/internal/usecase/summarize"
)

// New builds the Summarizer selected by cfg.Provider, rate limited when cfg.RateLimit
// is positive.
func New(cfg Config) (summarize.Summarizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid summarizer config: %w", err)
	}

	var s summarize.Summarizer
	switch cfg.Provider {
	case ProviderHuggingFace:
		s = NewHuggingFace(cfg)
	case ProviderClaude:
		s = NewClaude(cfg)
	case ProviderOpenAI:
		s = NewOpenAI(cfg)
	case ProviderOpenAIResponses:
		s = NewOpenAIResponses(cfg)
	case ProviderNoOp:
		s = NewNoOp()
	}

	slog.Info("summarizer initialized",
		slog.String("provider", cfg.Provider),
		slog.String("model", ModelOf(s)),
		slog.Int("max_length", cfg.Params.MaxLength),
		slog.Int("min_length", cfg.Params.MinLength),
		slog.Float64("rate_limit", cfg.RateLimit))

	if cfg.RateLimit > 0 {
		s = NewRateLimited(s, cfg.RateLimit, cfg.RateBurst)
	}
	return s, nil
}

// ModelOf returns the model name of s, "" for local summarizers.
func ModelOf(s summarize.Summarizer) string {
	if r, ok := unwrap(s).(interface{ Model() string }); ok {
		return r.Model()
	}
	return ""
}

// CircuitBreakerOf returns the circuit breaker guarding s, or nil when s makes no remote
// calls.
func CircuitBreakerOf(s summarize.Summarizer) *circuitbreaker.CircuitBreaker {
	if r, ok := unwrap(s).(interface {
		CircuitBreaker() *circuitbreaker.CircuitBreaker
	}); ok {
		return r.CircuitBreaker()
	}
	return nil
}

func unwrap(s summarize.Summarizer) summarize.Summarizer {
	for {
		w, ok := s.(interface{ Unwrap() summarize.Summarizer })
		if !ok {
			return s
		}
		s = w.Unwrap()
	}
}
