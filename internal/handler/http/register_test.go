package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"article-summarizer/internal/usecase/summarize"
)

func newTestServer(t *testing.T, routes Routes) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	Register(mux, routes)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRegister_Routes(t *testing.T) {
	stub := &stubSummarizer{res: &summarize.Result{Summary: "done"}}
	srv := newTestServer(t, Routes{
		Form:   &FormHandler{Summarizer: stub},
		Health: &HealthHandler{Version: "v1"},
	})

	tests := []struct {
		method   string
		path     string
		wantCode int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/live", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/unknown", http.StatusNotFound},
		{http.MethodGet, "/summarize", http.StatusMethodNotAllowed},
		{http.MethodPost, "/", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, nil)
			assert.NoError(t, err)
			resp, err := srv.Client().Do(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}
}

func TestRegister_SubmitThrottled(t *testing.T) {
	stub := &stubSummarizer{res: &summarize.Result{Summary: "done"}}
	srv := newTestServer(t, Routes{
		Form:    &FormHandler{Summarizer: stub},
		Health:  &HealthHandler{},
		Limiter: NewClientRateLimiter(0.01, 1),
	})

	post := func() int {
		resp, err := srv.Client().PostForm(srv.URL+"/summarize", url.Values{"url": {"https://example.com"}})
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusTooManyRequests, post())
	assert.Equal(t, 1, stub.calls)

	resp, err := srv.Client().Get(srv.URL + "/")
	assert.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "the form page is not throttled")
}
