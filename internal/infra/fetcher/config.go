package fetcher

import (
	"fmt"
	"time"
)

// Extraction modes.
const (
	ModeVisible     = "visible"
	ModeReadability = "readability"
)

// DefaultUserAgent identifies the fetcher to article hosts.
const DefaultUserAgent = "ArticleSummarizerBot/1.0"

// Config controls how articles are downloaded and extracted.
type Config struct {
	// Mode selects the extractor: ModeVisible (default) or ModeReadability.
	Mode string

	// Timeout bounds a single download, redirects included.
	// Default: 10s
	Timeout time.Duration

	// MaxBodySize is the largest response body accepted, in bytes. It is enforced while
	// reading, not from Content-Length.
	// Default: 10485760 (10MB)
	MaxBodySize int64

	// MaxRedirects is the number of redirects followed. Every target is re-validated.
	// Default: 5
	MaxRedirects int

	// DenyPrivateIPs rejects URLs resolving to loopback, private or link-local addresses.
	// Should always be true in production.
	// Default: true
	DenyPrivateIPs bool

	// UserAgent is sent with every request.
	UserAgent string
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Mode:           ModeVisible,
		Timeout:        10 * time.Second,
		MaxBodySize:    10 * 1024 * 1024,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      DefaultUserAgent,
	}
}

// Validate checks the configuration.
//
// Validation rules:
//   - Mode: visible or readability
//   - Timeout: > 0
//   - MaxBodySize: 1KB-100MB
//   - MaxRedirects: 0-10
func (c Config) Validate() error {
	if c.Mode != ModeVisible && c.Mode != ModeReadability {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeVisible, ModeReadability, c.Mode)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	minBodySize := int64(1024)
	maxBodySize := int64(100 * 1024 * 1024)
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	return nil
}
