// Package cache stores final article summaries so that resubmitting the same article
// does not repeat the map-reduce calls.
package cache

import (
	"context"
	"fmt"
	"time"

	"article-summarizer/internal/usecase/summarize"
)

// Backends accepted by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend    string
	TTL        time.Duration
	MaxEntries int
	Redis      RedisConfig
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendNone:
		return nil
	case BackendMemory:
		if c.MaxEntries <= 0 {
			return fmt.Errorf("max entries must be positive, got %d", c.MaxEntries)
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for the redis cache backend")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Backend)
	}
	if c.TTL <= 0 {
		return fmt.Errorf("ttl must be positive, got %v", c.TTL)
	}
	return nil
}

// Pinger is implemented by caches with a remote dependency worth health checking.
type Pinger interface {
	Ping(ctx context.Context) error
}

// New returns the configured cache, or nil for BackendNone.
func New(cfg Config) (summarize.Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cache config: %w", err)
	}
	switch cfg.Backend {
	case BackendMemory:
		return NewMemory(cfg.MaxEntries, cfg.TTL), nil
	case BackendRedis:
		redisCfg := cfg.Redis
		redisCfg.TTL = cfg.TTL
		return NewRedis(redisCfg), nil
	default:
		return nil, nil
	}
}
