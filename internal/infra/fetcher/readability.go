package fetcher

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-shiori/go-readability"

	"article-summarizer/internal/utils/text"
)

// ReadabilityFetcher extracts the main article body with Mozilla's Readability
// algorithm (go-shiori/go-readability). Boilerplate such as menus and footers is dropped.
//
// Thread safety: ReadabilityFetcher is safe for concurrent use.
type ReadabilityFetcher struct {
	downloader *downloader
}

// NewReadabilityFetcher creates a ReadabilityFetcher. config is assumed valid.
//
// Example:
//
//	config := DefaultConfig()
//	config.Mode = ModeReadability
//	f := NewReadabilityFetcher(config)
//	content, err := f.FetchContent(ctx, "https://example.com/article")
func NewReadabilityFetcher(config Config) *ReadabilityFetcher {
	return &ReadabilityFetcher{downloader: newDownloader(config)}
}

// FetchContent downloads url and returns the readable article text.
//
// Errors wrap one of the package sentinels: ErrInvalidURL, ErrPrivateIP, ErrTimeout,
// ErrBodyTooLarge, ErrTooManyRedirects, ErrHTTPStatus, ErrUnsupportedContent,
// ErrExtractionFailed or ErrEmptyContent. An open circuit breaker returns
// circuitbreaker.ErrOpen.
func (f *ReadabilityFetcher) FetchContent(ctx context.Context, url string) (string, error) {
	return fetchAndExtract(ctx, f.downloader, ModeReadability, url, func(p *page) (string, error) {
		article, err := readability.FromReader(bytes.NewReader(p.body), p.url)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		return text.NormalizeSpace(article.TextContent), nil
	})
}
