package fetcher

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"

	"article-summarizer/internal/resilience/circuitbreaker"
)

// page is a downloaded response body.
type page struct {
	body      []byte
	url       *url.URL
	mediaType string
	status    int
}

// downloader performs validated, size-limited GETs through a circuit breaker.
// It is safe for concurrent use.
type downloader struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         Config
}

func newDownloader(config Config) *downloader {
	d := &downloader{
		circuitBreaker: circuitbreaker.New(circuitbreaker.ContentFetchConfig()),
		config:         config,
	}

	d.client = &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > d.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via)-1)
			}
			if err := validateURL(req.URL.String(), d.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target rejected: %w", err)
			}
			return nil
		},
	}
	return d
}

// get downloads urlStr. Client errors (4xx) do not count against the circuit breaker
// since they are specific to one article.
func (d *downloader) get(ctx context.Context, urlStr string) (*page, error) {
	if err := validateURL(urlStr, d.config.DenyPrivateIPs); err != nil {
		return nil, err
	}

	p, err := circuitbreaker.Do(d.circuitBreaker, func() (*page, error) {
		return d.doGet(ctx, urlStr)
	})
	if err != nil {
		return nil, err
	}
	if p.status < 200 || p.status > 299 {
		return nil, fmt.Errorf("%w: %d %s", ErrHTTPStatus, p.status, http.StatusText(p.status))
	}
	return p, nil
}

func (d *downloader) doGet(ctx context.Context, urlStr string) (*page, error) {
	reqCtx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", d.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.1")

	resp, err := d.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: request exceeded %v", ErrTimeout, d.config.Timeout)
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && (errors.Is(urlErr.Err, ErrTooManyRedirects) ||
			errors.Is(urlErr.Err, ErrPrivateIP) || errors.Is(urlErr.Err, ErrInvalidURL)) {
			return nil, urlErr.Err
		}
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: %d %s", ErrHTTPStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &page{status: resp.StatusCode}, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, d.config.MaxBodySize+1))
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: reading body exceeded %v", ErrTimeout, d.config.Timeout)
		}
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(body)) > d.config.MaxBodySize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, d.config.MaxBodySize)
	}

	mediaType, err := mediaTypeOf(resp.Header.Get("Content-Type"), body)
	if err != nil {
		return nil, err
	}

	finalURL := resp.Request.URL
	return &page{body: body, url: finalURL, mediaType: mediaType, status: resp.StatusCode}, nil
}

// mediaTypeOf returns the response media type, sniffing the body when the header is
// missing. Only HTML and plain text are accepted.
func mediaTypeOf(header string, body []byte) (string, error) {
	if header == "" {
		header = http.DetectContentType(body)
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedContent, header)
	}
	switch mediaType {
	case "text/html", "application/xhtml+xml", "text/plain":
		return mediaType, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedContent, mediaType)
	}
}
