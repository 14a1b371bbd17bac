// Package config loads the application configuration from environment variables.
//
// Every value has a default, so an empty environment yields a working setup that
// summarizes with the hosted BART model and caches in memory. Command-line flags in
// cmd/summarize override the loaded values before Validate is called.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the complete application configuration.
type Config struct {
	Pipeline   PipelineConfig
	Fetch      FetchConfig
	Summarizer SummarizerConfig
	Cache      CacheConfig
	Server     ServerConfig
	Tracing    TracingConfig
}

// PipelineConfig controls the map-reduce summarization.
type PipelineConfig struct {
	// ChunkSize is the maximum chunk length in characters.
	ChunkSize int `env:"CHUNK_SIZE" envDefault:"3000"`

	// MinContentLength rejects articles shorter than this many characters.
	MinContentLength int `env:"MIN_CONTENT_LENGTH" envDefault:"500"`

	// PreviewLength is how much of the article is shown before the summary.
	PreviewLength int `env:"PREVIEW_LENGTH" envDefault:"500"`

	// Parallelism summarizes up to this many chunks at once. 1 is sequential.
	Parallelism int `env:"SUMMARIZE_PARALLELISM" envDefault:"1"`

	// MaxDepth allows extra re-chunking passes when joined chunk summaries are still
	// longer than one chunk. 0 keeps the two-pass reduction.
	MaxDepth int `env:"REDUCE_MAX_DEPTH" envDefault:"0"`
}

// FetchConfig controls article downloads.
type FetchConfig struct {
	Mode           string        `env:"CONTENT_FETCH_MODE" envDefault:"visible"`
	Timeout        time.Duration `env:"CONTENT_FETCH_TIMEOUT" envDefault:"10s"`
	MaxBodySize    int64         `env:"CONTENT_FETCH_MAX_BODY_SIZE" envDefault:"10485760"`
	MaxRedirects   int           `env:"CONTENT_FETCH_MAX_REDIRECTS" envDefault:"5"`
	DenyPrivateIPs bool          `env:"CONTENT_FETCH_DENY_PRIVATE_IPS" envDefault:"true"`
	UserAgent      string        `env:"CONTENT_FETCH_USER_AGENT" envDefault:"ArticleSummarizerBot/1.0"`
}

// SummarizerConfig selects the summarization backend.
type SummarizerConfig struct {
	// Type is huggingface, claude, openai, openai-responses or noop.
	Type  string `env:"SUMMARIZER_TYPE" envDefault:"huggingface"`
	Model string `env:"SUMMARIZER_MODEL"`

	// MaxLength, MinLength and DoSample bound the generated summary (model tokens).
	MaxLength int  `env:"SUMMARIZER_MAX_LENGTH" envDefault:"130"`
	MinLength int  `env:"SUMMARIZER_MIN_LENGTH" envDefault:"30"`
	DoSample  bool `env:"SUMMARIZER_DO_SAMPLE" envDefault:"false"`

	Timeout        time.Duration `env:"SUMMARIZER_TIMEOUT" envDefault:"60s"`
	MaxInputTokens int           `env:"SUMMARIZER_MAX_INPUT_TOKENS" envDefault:"1024"`

	// MaxAttempts counts the first call; 1 disables retries.
	MaxAttempts int `env:"SUMMARIZER_MAX_ATTEMPTS" envDefault:"1"`

	// RateLimit is in calls per second; 0 disables limiting.
	RateLimit float64 `env:"SUMMARIZER_RATE_LIMIT" envDefault:"0"`
	RateBurst int     `env:"SUMMARIZER_RATE_BURST" envDefault:"1"`

	HuggingFaceToken   string `env:"HUGGINGFACE_API_TOKEN"`
	HuggingFaceBaseURL string `env:"HUGGINGFACE_BASE_URL" envDefault:"https://router.huggingface.co/hf-inference/models"`
	AnthropicAPIKey    string `env:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL   string `env:"ANTHROPIC_BASE_URL"`
	OpenAIAPIKey       string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL      string `env:"OPENAI_BASE_URL"`
}

// CacheConfig selects where final summaries are cached.
type CacheConfig struct {
	// Backend is memory, redis or none.
	Backend    string        `env:"CACHE_BACKEND" envDefault:"memory"`
	TTL        time.Duration `env:"CACHE_TTL" envDefault:"24h"`
	MaxEntries int           `env:"CACHE_MAX_ENTRIES" envDefault:"256"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"article-summarizer:summary:"`
}

// ServerConfig controls the web form server.
type ServerConfig struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	Version         string        `env:"APP_VERSION" envDefault:"dev"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"3m"`
	// ClientRateLimit is form submissions per second per client IP; 0 disables throttling.
	ClientRateLimit float64 `env:"CLIENT_RATE_LIMIT" envDefault:"0"`
	ClientRateBurst int     `env:"CLIENT_RATE_BURST" envDefault:"3"`
}

// TracingConfig controls span export from the web server.
type TracingConfig struct {
	// Exporter is none, stdout or otlp.
	Exporter    string `env:"TRACING_EXPORTER" envDefault:"none"`
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"article-summarizer"`
}

// Load parses the environment. It does not validate; callers apply overrides first and
// then call Validate.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks the pipeline and server settings. Component settings are validated by
// the components that own them when they are constructed.
func (c Config) Validate() error {
	if err := c.Pipeline.Validate(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Validate checks the pipeline settings.
func (p PipelineConfig) Validate() error {
	if p.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", p.ChunkSize)
	}
	if p.MinContentLength < 0 {
		return fmt.Errorf("min content length must be non-negative, got %d", p.MinContentLength)
	}
	if p.PreviewLength < 0 {
		return fmt.Errorf("preview length must be non-negative, got %d", p.PreviewLength)
	}
	if p.Parallelism <= 0 {
		return fmt.Errorf("parallelism must be positive, got %d", p.Parallelism)
	}
	if p.MaxDepth < 0 {
		return fmt.Errorf("max depth must be non-negative, got %d", p.MaxDepth)
	}
	return nil
}

// Validate checks the server settings.
func (s ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", s.Port)
	}
	if s.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %v", s.ShutdownTimeout)
	}
	if s.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %v", s.RequestTimeout)
	}
	if s.ClientRateLimit < 0 {
		return fmt.Errorf("client rate limit must be non-negative, got %v", s.ClientRateLimit)
	}
	if s.ClientRateLimit > 0 && s.ClientRateBurst < 1 {
		return fmt.Errorf("client rate burst must be at least 1, got %d", s.ClientRateBurst)
	}
	return nil
}
