package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"article-summarizer/internal/resilience/retry"
	"article-summarizer/internal/utils/text"
)

const (
	// DefaultHuggingFaceBaseURL serves hosted models under /{model}.
	DefaultHuggingFaceBaseURL = "https://router.huggingface.co/hf-inference/models"

	// DefaultHuggingFaceModel is the BART checkpoint fine-tuned on CNN/DailyMail.
	DefaultHuggingFaceModel = "facebook/bart-large-cnn"

	maxErrorBodySize = 4096
)

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type hfSummary struct {
	SummaryText string `json:"summary_text"`
}

type hfError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

// HuggingFace summarizes with a hosted seq2seq model on the Hugging Face Inference API.
type HuggingFace struct {
	remote
	client   *http.Client
	endpoint string
	token    string
	params   Params
}

// NewHuggingFace creates a Hugging Face summarizer from cfg. An empty token is allowed
// for anonymous, heavily rate-limited access.
//
// The MaxInputTokens guard counts cl100k_base tokens, which only approximates BART's
// tokenizer; inputs that slip past it still fail with ErrInputTooLong on the server's
// index error.
func NewHuggingFace(cfg Config) *HuggingFace {
	model := cfg.Model
	if model == "" {
		model = DefaultHuggingFaceModel
	}
	baseURL := cfg.HuggingFaceBaseURL
	if baseURL == "" {
		baseURL = DefaultHuggingFaceBaseURL
	}

	return &HuggingFace{
		remote:   newRemote(ProviderHuggingFace, model, text.DefaultEncoding, cfg),
		client:   &http.Client{},
		endpoint: strings.TrimSuffix(baseURL, "/") + "/" + model,
		token:    cfg.HuggingFaceToken,
		params:   cfg.Params,
	}
}

// Summarize implements summarize.Summarizer.
func (h *HuggingFace) Summarize(ctx context.Context, input string) (string, error) {
	return h.summarize(ctx, input, h.call)
}

func (h *HuggingFace) call(ctx context.Context, input string) (string, error) {
	payload, err := json.Marshal(hfRequest{
		Inputs: input,
		Parameters: hfParameters{
			MaxLength: h.params.MaxLength,
			MinLength: h.params.MinLength,
			DoSample:  h.params.DoSample,
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("huggingface request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", h.responseError(resp)
	}

	var summaries []hfSummary
	if err := json.NewDecoder(resp.Body).Decode(&summaries); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(summaries) == 0 {
		return "", ErrEmptySummary
	}
	return summaries[0].SummaryText, nil
}

// responseError reads the API error body. A loading model answers 503 with an
// estimated_time that becomes the retry delay.
func (h *HuggingFace) responseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

	httpErr := &retry.HTTPError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(body)),
	}

	var apiErr hfError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
		httpErr.Message = apiErr.Error
		if apiErr.EstimatedTime > 0 {
			httpErr.RetryAfter = time.Duration(math.Ceil(apiErr.EstimatedTime)) * time.Second
		}
	}
	if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && seconds > 0 {
		httpErr.RetryAfter = time.Duration(seconds) * time.Second
	}

	if resp.StatusCode == http.StatusBadRequest && strings.Contains(strings.ToLower(httpErr.Message), "index out of range") {
		return errors.Join(ErrInputTooLong, httpErr)
	}
	return httpErr
}
