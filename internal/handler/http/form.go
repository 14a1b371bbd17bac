package http

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"article-summarizer/internal/handler/http/respond"
	"article-summarizer/internal/observability/logging"
	"article-summarizer/internal/usecase/summarize"
	"article-summarizer/internal/utils/text"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// DefaultRequestTimeout bounds one form submission, fetch and summarization included.
const DefaultRequestTimeout = 3 * time.Minute

const (
	msgMissingURL   = "Please enter an article URL starting with http:// or https://."
	msgModelFailure = "Summarization failed: "
	msgTimeout      = "Summarizing took too long. Try a shorter article."
	msgInternal     = "Something went wrong. Please try again."
)

// URLSummarizer is the part of the summarize service the form needs.
type URLSummarizer interface {
	SummarizeURL(ctx context.Context, url string) (*summarize.Result, error)
}

// FormHandler serves the single-page summarizer form.
// GET renders an empty form; POST summarizes the submitted "url" field and renders
// the preview and summary, or an error message, below the form.
type FormHandler struct {
	Summarizer    URLSummarizer
	Timeout       time.Duration
	PreviewLength int
}

type pageData struct {
	URL           string
	Error         string
	Result        *summarize.Result
	PreviewLength int
}

func (h *FormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.render(w, r, http.StatusOK, pageData{})
	case http.MethodPost:
		h.submit(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *FormHandler) submit(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.render(w, r, http.StatusRequestEntityTooLarge, pageData{Error: "Form submission is too large."})
			return
		}
		h.render(w, r, http.StatusBadRequest, pageData{Error: msgMissingURL})
		return
	}

	raw := strings.TrimSpace(r.PostFormValue("url"))
	url, ok := text.FirstWebURL(raw)
	if !ok {
		h.render(w, r, http.StatusBadRequest, pageData{URL: raw, Error: msgMissingURL})
		return
	}

	timeout := h.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	res, err := h.Summarizer.SummarizeURL(ctx, url)
	if err != nil {
		code, msg := errorMessage(err)
		logger.Warn("summarize request failed",
			slog.String("url", url),
			slog.String("kind", summarize.KindOf(err).String()),
			slog.Int("status", code),
			slog.String("error", respond.SanitizeError(err)))
		h.render(w, r, code, pageData{URL: url, Error: msg})
		return
	}

	h.render(w, r, http.StatusOK, pageData{URL: url, Result: res})
}

// errorMessage maps a pipeline error to a status code and the text shown to the user.
func errorMessage(err error) (int, string) {
	switch summarize.KindOf(err) {
	case summarize.KindInsufficientContent:
		return http.StatusUnprocessableEntity, summarize.InsufficientContentMessage
	case summarize.KindFetch:
		var e *summarize.Error
		errors.As(err, &e)
		return http.StatusBadGateway, "Couldn't fetch the article: " + respond.SanitizeError(e.Err)
	case summarize.KindModel:
		if errors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout, msgTimeout
		}
		var e *summarize.Error
		errors.As(err, &e)
		return http.StatusBadGateway, msgModelFailure + respond.SanitizeError(e.Err)
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func (h *FormHandler) render(w http.ResponseWriter, r *http.Request, code int, data pageData) {
	data.PreviewLength = h.PreviewLength
	if data.PreviewLength <= 0 {
		data.PreviewLength = text.DefaultPreviewLength
	}

	var buf strings.Builder
	if err := pageTemplate.Execute(&buf, data); err != nil {
		logging.FromContext(r.Context()).Error("render form page", slog.Any("error", err))
		http.Error(w, msgInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if r.Method != http.MethodHead {
		_, _ = w.Write([]byte(buf.String()))
	}
}
