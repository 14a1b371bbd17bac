// Package fetcher downloads web articles and extracts their visible text.
//
// Two extractors share one hardened HTTP downloader (SSRF validation, redirect and size
// limits, per-request timeout, circuit breaker):
//   - VisibleTextFetcher strips script and style elements and joins every remaining text
//     node with single spaces
//   - ReadabilityFetcher keeps only the main article body as found by go-readability
package fetcher

import "errors"

// Sentinel errors returned (wrapped) by the fetchers.
var (
	// ErrInvalidURL indicates a malformed URL, a scheme other than http/https, or a
	// hostname that does not resolve.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrPrivateIP indicates the URL resolves to a loopback, private or link-local address.
	ErrPrivateIP = errors.New("URL resolves to a private address")

	ErrTooManyRedirects = errors.New("too many redirects")
	ErrBodyTooLarge     = errors.New("response body too large")
	ErrTimeout          = errors.New("request timed out")

	// ErrHTTPStatus indicates a non-2xx response.
	ErrHTTPStatus = errors.New("unexpected HTTP status")

	// ErrUnsupportedContent indicates a response that is not HTML or plain text.
	ErrUnsupportedContent = errors.New("unsupported content type")

	// ErrEmptyContent indicates the page had no extractable text.
	ErrEmptyContent = errors.New("no text content found")

	// ErrExtractionFailed indicates the HTML could not be parsed.
	ErrExtractionFailed = errors.New("content extraction failed")
)
