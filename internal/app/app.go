// Package app assembles the summarize pipeline from configuration. Both binaries use it,
// so the CLI and the web form always run the same fetcher, summarizer and cache.
package app

import (
	"fmt"
	"io"
	"log/slog"

	"article-summarizer/internal/config"
	"article-summarizer/internal/infra/cache"
	"article-summarizer/internal/infra/fetcher"
	"article-summarizer/internal/infra/summarizer"
	"article-summarizer/internal/resilience/circuitbreaker"
	"article-summarizer/internal/usecase/summarize"
)

// App holds the assembled pipeline and the components health checks need.
type App struct {
	Service    *summarize.Service
	Summarizer summarize.Summarizer
	Cache      summarize.Cache
	Provider   string
	Model      string
}

// New validates cfg and builds the pipeline.
func New(cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	f, err := fetcher.New(FetcherConfig(cfg.Fetch))
	if err != nil {
		return nil, fmt.Errorf("create content fetcher: %w", err)
	}

	s, err := summarizer.New(SummarizerConfig(cfg.Summarizer))
	if err != nil {
		return nil, fmt.Errorf("create summarizer: %w", err)
	}

	reducer, err := summarize.NewReducer(s,
		summarize.WithChunkSize(cfg.Pipeline.ChunkSize),
		summarize.WithParallelism(cfg.Pipeline.Parallelism),
		summarize.WithMaxDepth(cfg.Pipeline.MaxDepth),
	)
	if err != nil {
		return nil, fmt.Errorf("create reducer: %w", err)
	}

	c, err := cache.New(CacheConfig(cfg.Cache))
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	a := &App{
		Summarizer: s,
		Cache:      c,
		Provider:   cfg.Summarizer.Type,
		Model:      summarizer.ModelOf(s),
	}

	opts := []summarize.ServiceOption{
		summarize.WithMinContentLength(cfg.Pipeline.MinContentLength),
		summarize.WithPreviewLength(cfg.Pipeline.PreviewLength),
	}
	if c != nil {
		opts = append(opts, summarize.WithCache(c, a.CacheNamespace()))
	}
	a.Service = summarize.NewService(f, reducer, opts...)

	slog.Info("summarize pipeline ready",
		slog.String("fetch_mode", cfg.Fetch.Mode),
		slog.String("provider", a.Provider),
		slog.String("model", a.Model),
		slog.Int("chunk_size", cfg.Pipeline.ChunkSize),
		slog.Int("parallelism", cfg.Pipeline.Parallelism),
		slog.Int("max_depth", cfg.Pipeline.MaxDepth),
		slog.String("cache_backend", cfg.Cache.Backend))

	return a, nil
}

// CacheNamespace separates cached summaries by backend, e.g.
// "huggingface/facebook/bart-large-cnn".
func (a *App) CacheNamespace() string {
	return a.Provider + "/" + a.Model
}

// CircuitBreaker returns the summarizer's breaker, or nil for local summarizers.
func (a *App) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return summarizer.CircuitBreakerOf(a.Summarizer)
}

// CachePinger returns the cache when it has a remote dependency, otherwise nil.
func (a *App) CachePinger() cache.Pinger {
	if p, ok := a.Cache.(cache.Pinger); ok {
		return p
	}
	return nil
}

// Close releases connections held by the cache.
func (a *App) Close() error {
	if c, ok := a.Cache.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("close cache: %w", err)
		}
	}
	return nil
}

// FetcherConfig converts the environment settings into a fetcher configuration.
func FetcherConfig(c config.FetchConfig) fetcher.Config {
	return fetcher.Config{
		Mode:           c.Mode,
		Timeout:        c.Timeout,
		MaxBodySize:    c.MaxBodySize,
		MaxRedirects:   c.MaxRedirects,
		DenyPrivateIPs: c.DenyPrivateIPs,
		UserAgent:      c.UserAgent,
	}
}

// SummarizerConfig converts the environment settings into a summarizer configuration.
func SummarizerConfig(c config.SummarizerConfig) summarizer.Config {
	return summarizer.Config{
		Provider: c.Type,
		Model:    c.Model,
		Params: summarizer.Params{
			MaxLength: c.MaxLength,
			MinLength: c.MinLength,
			DoSample:  c.DoSample,
		},
		Timeout:            c.Timeout,
		MaxInputTokens:     c.MaxInputTokens,
		MaxAttempts:        c.MaxAttempts,
		RateLimit:          c.RateLimit,
		RateBurst:          c.RateBurst,
		HuggingFaceToken:   c.HuggingFaceToken,
		HuggingFaceBaseURL: c.HuggingFaceBaseURL,
		AnthropicAPIKey:    c.AnthropicAPIKey,
		AnthropicBaseURL:   c.AnthropicBaseURL,
		OpenAIAPIKey:       c.OpenAIAPIKey,
		OpenAIBaseURL:      c.OpenAIBaseURL,
	}
}

// CacheConfig converts the environment settings into a cache configuration.
func CacheConfig(c config.CacheConfig) cache.Config {
	return cache.Config{
		Backend:    c.Backend,
		TTL:        c.TTL,
		MaxEntries: c.MaxEntries,
		Redis: cache.RedisConfig{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Prefix:   c.RedisPrefix,
		},
	}
}
