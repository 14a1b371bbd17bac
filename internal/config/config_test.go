package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article-summarizer/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, config.PipelineConfig{
		ChunkSize:        3000,
		MinContentLength: 500,
		PreviewLength:    500,
		Parallelism:      1,
		MaxDepth:         0,
	}, cfg.Pipeline)

	assert.Equal(t, "visible", cfg.Fetch.Mode)
	assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, int64(10485760), cfg.Fetch.MaxBodySize)
	assert.Equal(t, 5, cfg.Fetch.MaxRedirects)
	assert.True(t, cfg.Fetch.DenyPrivateIPs)

	assert.Equal(t, "huggingface", cfg.Summarizer.Type)
	assert.Equal(t, 130, cfg.Summarizer.MaxLength)
	assert.Equal(t, 30, cfg.Summarizer.MinLength)
	assert.False(t, cfg.Summarizer.DoSample)
	assert.Equal(t, 60*time.Second, cfg.Summarizer.Timeout)
	assert.Equal(t, 1024, cfg.Summarizer.MaxInputTokens)
	assert.Equal(t, 1, cfg.Summarizer.MaxAttempts)
	assert.Zero(t, cfg.Summarizer.RateLimit)

	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 256, cfg.Cache.MaxEntries)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 3*time.Minute, cfg.Server.RequestTimeout)
	assert.Zero(t, cfg.Server.ClientRateLimit)

	assert.Equal(t, "none", cfg.Tracing.Exporter)
	assert.Equal(t, "article-summarizer", cfg.Tracing.ServiceName)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "1000")
	t.Setenv("SUMMARIZE_PARALLELISM", "4")
	t.Setenv("REDUCE_MAX_DEPTH", "2")
	t.Setenv("CONTENT_FETCH_MODE", "readability")
	t.Setenv("CONTENT_FETCH_TIMEOUT", "3s")
	t.Setenv("CONTENT_FETCH_DENY_PRIVATE_IPS", "false")
	t.Setenv("SUMMARIZER_TYPE", "claude")
	t.Setenv("SUMMARIZER_DO_SAMPLE", "true")
	t.Setenv("SUMMARIZER_RATE_LIMIT", "2.5")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1000, cfg.Pipeline.ChunkSize)
	assert.Equal(t, 4, cfg.Pipeline.Parallelism)
	assert.Equal(t, 2, cfg.Pipeline.MaxDepth)
	assert.Equal(t, "readability", cfg.Fetch.Mode)
	assert.Equal(t, 3*time.Second, cfg.Fetch.Timeout)
	assert.False(t, cfg.Fetch.DenyPrivateIPs)
	assert.Equal(t, "claude", cfg.Summarizer.Type)
	assert.True(t, cfg.Summarizer.DoSample)
	assert.Equal(t, 2.5, cfg.Summarizer.RateLimit)
	assert.Equal(t, "sk-ant", cfg.Summarizer.AnthropicAPIKey)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "redis:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 3, cfg.Cache.RedisDB)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"CHUNK_SIZE", "many"},
		{"CONTENT_FETCH_TIMEOUT", "soon"},
		{"SUMMARIZER_DO_SAMPLE", "maybe"},
		{"SUMMARIZER_RATE_LIMIT", "fast"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *config.Config)
		wantErr string
	}{
		{name: "zero chunk size", modify: func(c *config.Config) { c.Pipeline.ChunkSize = 0 }, wantErr: "chunk size must be positive, got 0"},
		{name: "negative min content", modify: func(c *config.Config) { c.Pipeline.MinContentLength = -1 }, wantErr: "min content length"},
		{name: "negative preview", modify: func(c *config.Config) { c.Pipeline.PreviewLength = -1 }, wantErr: "preview length"},
		{name: "zero parallelism", modify: func(c *config.Config) { c.Pipeline.Parallelism = 0 }, wantErr: "parallelism must be positive"},
		{name: "negative depth", modify: func(c *config.Config) { c.Pipeline.MaxDepth = -1 }, wantErr: "max depth must be non-negative"},
		{name: "port out of range", modify: func(c *config.Config) { c.Server.Port = 70000 }, wantErr: "port must be between"},
		{name: "zero shutdown timeout", modify: func(c *config.Config) { c.Server.ShutdownTimeout = 0 }, wantErr: "shutdown timeout"},
		{name: "zero request timeout", modify: func(c *config.Config) { c.Server.RequestTimeout = 0 }, wantErr: "request timeout"},
		{name: "negative client rate", modify: func(c *config.Config) { c.Server.ClientRateLimit = -1 }, wantErr: "client rate limit"},
		{name: "zero client burst", modify: func(c *config.Config) {
			c.Server.ClientRateLimit = 1
			c.Server.ClientRateBurst = 0
		}, wantErr: "client rate burst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load()
			require.NoError(t, err)
			tt.modify(&cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
