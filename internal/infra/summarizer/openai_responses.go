package summarizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

// OpenAIResponses summarizes with the OpenAI Responses API.
type OpenAIResponses struct {
	remote
	client openai.Client
	params Params
}

// NewOpenAIResponses creates a Responses API summarizer from cfg.
func NewOpenAIResponses(cfg Config) *OpenAIResponses {
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}

	return &OpenAIResponses{
		remote: newRemote(ProviderOpenAIResponses, model, model, cfg),
		client: openai.NewClient(opts...),
		params: cfg.Params,
	}
}

// Summarize implements summarize.Summarizer.
func (o *OpenAIResponses) Summarize(ctx context.Context, input string) (string, error) {
	return o.summarize(ctx, input, o.call)
}

func (o *OpenAIResponses) call(ctx context.Context, input string) (string, error) {
	params := responses.ResponseNewParams{
		Model:           o.model,
		MaxOutputTokens: openai.Int(int64(outputTokenBudget(o.params))),
		Instructions:    openai.String(systemPrompt),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(buildPrompt(o.params, input)),
		},
	}
	if !o.params.DoSample {
		params.Temperature = openai.Float(0)
	}

	resp, err := o.client.Responses.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", statusError(apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("openai responses error: %w", err)
	}

	if resp.Status == "incomplete" {
		return "", fmt.Errorf("response is incomplete (reason = %s)", resp.IncompleteDetails.Reason)
	}
	return resp.OutputText(), nil
}
