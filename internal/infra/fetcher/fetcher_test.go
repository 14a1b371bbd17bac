package fetcher_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article-summarizer/internal/infra/fetcher"
	"article-summarizer/internal/resilience/circuitbreaker"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
	<title>Test Article</title>
	<style>body { color: red; }</style>
	<script>var tracking = "should not appear";</script>
</head>
<body>
	<nav>Home | About</nav>
	<article>
		<h1>Test Article Title</h1>
		<p>This is the first paragraph of the article content.</p>
		<p>This is the second   paragraph
		with more important information.</p>
		<p>This is the third paragraph to ensure we have enough content.</p>
	</article>
	<noscript>Enable JavaScript</noscript>
	<footer>Copyright</footer>
</body>
</html>`

// testConfig allows the loopback httptest servers.
func testConfig(mode string) fetcher.Config {
	config := fetcher.DefaultConfig()
	config.Mode = mode
	config.DenyPrivateIPs = false
	return config
}

func newFetcher(t *testing.T, config fetcher.Config) interface {
	FetchContent(ctx context.Context, url string) (string, error)
} {
	t.Helper()
	f, err := fetcher.New(config)
	require.NoError(t, err)
	return f
}

func htmlServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestVisibleTextFetcher_FetchContent(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	content, err := newFetcher(t, testConfig(fetcher.ModeVisible)).FetchContent(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, fetcher.DefaultUserAgent, userAgent)
	assert.Equal(t,
		"Test Article Home | About Test Article Title "+
			"This is the first paragraph of the article content. "+
			"This is the second paragraph with more important information. "+
			"This is the third paragraph to ensure we have enough content. Copyright",
		content)
}

func TestExtractVisibleText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{name: "drops script and style", html: `<p>a</p><script>x()</script><style>p{}</style><p>b</p>`, want: "a b"},
		{name: "drops comments", html: `<p>a<!-- hidden --></p>`, want: "a"},
		{name: "keeps document order", html: `<div>one<span>two</span>three</div>`, want: "one two three"},
		{name: "collapses whitespace", html: "<p>  lots \n\t of   space </p>", want: "lots of space"},
		{name: "decodes entities", html: `<p>fish &amp; chips</p>`, want: "fish & chips"},
		{name: "empty body", html: `<html><body></body></html>`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fetcher.ExtractVisibleText([]byte(tt.html))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadabilityFetcher_FetchContent(t *testing.T) {
	server := htmlServer(t, articleHTML)

	content, err := newFetcher(t, testConfig(fetcher.ModeReadability)).FetchContent(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Contains(t, content, "first paragraph")
	assert.Contains(t, content, "second paragraph with more important information")
	assert.NotContains(t, content, "should not appear")
	assert.NotContains(t, content, "\n")
}

func TestFetchContent_PlainText(t *testing.T) {
	for _, mode := range []string{fetcher.ModeVisible, fetcher.ModeReadability} {
		t.Run(mode, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				_, _ = w.Write([]byte("plain   text\narticle "))
			}))
			defer server.Close()

			content, err := newFetcher(t, testConfig(mode)).FetchContent(context.Background(), server.URL)
			require.NoError(t, err)
			assert.Equal(t, "plain text article", content)
		})
	}
}

func TestFetchContent_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			wantErr: fetcher.ErrHTTPStatus,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantErr: fetcher.ErrHTTPStatus,
		},
		{
			name: "unsupported content type",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/pdf")
				_, _ = w.Write([]byte("%PDF-1.4"))
			},
			wantErr: fetcher.ErrUnsupportedContent,
		},
		{
			name: "no visible text",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				_, _ = w.Write([]byte(`<html><head><script>x()</script></head><body></body></html>`))
			},
			wantErr: fetcher.ErrEmptyContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := newFetcher(t, testConfig(fetcher.ModeVisible)).FetchContent(context.Background(), server.URL)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFetchContent_InvalidURL(t *testing.T) {
	f := newFetcher(t, fetcher.DefaultConfig())

	tests := []struct {
		url     string
		wantErr error
	}{
		{url: "not a url", wantErr: fetcher.ErrInvalidURL},
		{url: "ftp://example.com/article", wantErr: fetcher.ErrInvalidURL},
		{url: "http://127.0.0.1/admin", wantErr: fetcher.ErrPrivateIP},
		{url: "http://169.254.169.254/latest/meta-data", wantErr: fetcher.ErrPrivateIP},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			_, err := f.FetchContent(context.Background(), tt.url)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFetchContent_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	config := testConfig(fetcher.ModeVisible)
	config.Timeout = 50 * time.Millisecond

	_, err := newFetcher(t, config).FetchContent(context.Background(), server.URL)
	assert.ErrorIs(t, err, fetcher.ErrTimeout)
}

func TestFetchContent_ContextCanceled(t *testing.T) {
	server := htmlServer(t, articleHTML)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newFetcher(t, testConfig(fetcher.ModeVisible)).FetchContent(ctx, server.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchContent_BodyTooLarge(t *testing.T) {
	server := htmlServer(t, "<p>"+strings.Repeat("x", 4096)+"</p>")

	config := testConfig(fetcher.ModeVisible)
	config.MaxBodySize = 1024

	_, err := newFetcher(t, config).FetchContent(context.Background(), server.URL)
	assert.ErrorIs(t, err, fetcher.ErrBodyTooLarge)
}

func TestFetchContent_Redirects(t *testing.T) {
	final := htmlServer(t, `<html><body><h1>Final Content</h1></body></html>`)

	var hops atomic.Int32
	loop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hops.Add(1)
		http.Redirect(w, r, r.URL.String(), http.StatusFound)
	}))
	defer loop.Close()

	initial := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, final.URL, http.StatusFound)
	}))
	defer initial.Close()

	t.Run("followed", func(t *testing.T) {
		content, err := newFetcher(t, testConfig(fetcher.ModeVisible)).FetchContent(context.Background(), initial.URL)
		require.NoError(t, err)
		assert.Equal(t, "Final Content", content)
	})

	t.Run("limit", func(t *testing.T) {
		config := testConfig(fetcher.ModeVisible)
		config.MaxRedirects = 3

		_, err := newFetcher(t, config).FetchContent(context.Background(), loop.URL)
		assert.ErrorIs(t, err, fetcher.ErrTooManyRedirects)
		assert.Equal(t, int32(4), hops.Load())
	})

	t.Run("disabled", func(t *testing.T) {
		config := testConfig(fetcher.ModeVisible)
		config.MaxRedirects = 0

		_, err := newFetcher(t, config).FetchContent(context.Background(), initial.URL)
		assert.ErrorIs(t, err, fetcher.ErrTooManyRedirects)
	})
}

func TestFetchContent_CircuitBreakerOpens(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := newFetcher(t, testConfig(fetcher.ModeVisible))

	// content-fetch breaker trips after 5 requests at >= 60% failures
	for i := 0; i < 5; i++ {
		_, err := f.FetchContent(context.Background(), server.URL)
		require.ErrorIs(t, err, fetcher.ErrHTTPStatus)
	}

	_, err := f.FetchContent(context.Background(), server.URL)
	assert.True(t, errors.Is(err, circuitbreaker.ErrOpen), "expected ErrOpen, got %v", err)
	assert.Equal(t, int32(5), requests.Load())
}

func TestFetchContent_ClientErrorsDoNotTripBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	f := newFetcher(t, testConfig(fetcher.ModeVisible))
	for i := 0; i < 10; i++ {
		_, err := f.FetchContent(context.Background(), server.URL)
		require.ErrorIs(t, err, fetcher.ErrHTTPStatus)
		require.NotErrorIs(t, err, circuitbreaker.ErrOpen)
	}
}
