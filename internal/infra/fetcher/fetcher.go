package fetcher

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"article-summarizer/internal/observability/logging"
	"article-summarizer/internal/observability/metrics"
	"article-summarizer/internal/observability/tracing"
	"article-summarizer/internal/usecase/summarize"
	"article-summarizer/internal/utils/text"
)

// New returns the fetcher selected by config.Mode.
func New(config Config) (summarize.ContentFetcher, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fetcher config: %w", err)
	}
	switch config.Mode {
	case ModeReadability:
		return NewReadabilityFetcher(config), nil
	default:
		return NewVisibleTextFetcher(config), nil
	}
}

type extractFunc func(p *page) (string, error)

// fetchAndExtract downloads urlStr and runs extract over the body. Plain text responses
// skip extraction. Every attempt is traced and counted per mode.
func fetchAndExtract(ctx context.Context, d *downloader, mode, urlStr string, extract extractFunc) (string, error) {
	ctx, span := tracing.Start(ctx, "fetcher.FetchContent",
		attribute.String("fetch.mode", mode),
		attribute.String("fetch.url", urlStr),
	)
	defer span.End()

	start := time.Now()
	content, size, err := download(ctx, d, urlStr, extract)
	duration := time.Since(start)
	metrics.RecordContentFetch(mode, err == nil, duration, size)

	logger := logging.FromContext(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		logger.Warn("content fetch failed",
			"url", urlStr,
			"mode", mode,
			"duration", duration,
			"error", err)
		return "", err
	}

	span.SetAttributes(attribute.Int("fetch.characters", text.CountRunes(content)))
	logger.Debug("content fetched",
		"url", urlStr,
		"mode", mode,
		"bytes", size,
		"characters", text.CountRunes(content),
		"duration", duration)
	return content, nil
}

func download(ctx context.Context, d *downloader, urlStr string, extract extractFunc) (string, int64, error) {
	p, err := d.get(ctx, urlStr)
	if err != nil {
		return "", 0, err
	}
	size := int64(len(p.body))

	var content string
	if p.mediaType == "text/plain" {
		content = text.NormalizeSpace(string(p.body))
	} else {
		content, err = extract(p)
		if err != nil {
			return "", size, err
		}
	}
	if content == "" {
		return "", size, ErrEmptyContent
	}
	return content, size, nil
}
