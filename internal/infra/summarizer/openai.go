package summarizer

import (
	"context"
	"errors"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is used when Config.Model is empty.
const DefaultOpenAIModel = openai.GPT4oMini

// OpenAI summarizes with the OpenAI chat completions API.
type OpenAI struct {
	remote
	client *openai.Client
	params Params
}

// NewOpenAI creates a chat completions summarizer from cfg. OpenAIBaseURL allows any
// OpenAI-compatible server.
func NewOpenAI(cfg Config) *OpenAI {
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}

	return &OpenAI{
		remote: newRemote(ProviderOpenAI, model, model, cfg),
		client: openai.NewClientWithConfig(clientConfig),
		params: cfg.Params,
	}
}

// Summarize implements summarize.Summarizer.
func (o *OpenAI) Summarize(ctx context.Context, input string) (string, error) {
	return o.summarize(ctx, input, o.call)
}

func (o *OpenAI) call(ctx context.Context, input string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: outputTokenBudget(o.params),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(o.params, input)},
		},
	}
	if !o.params.DoSample {
		// a zero Temperature is omitted from the request
		req.Temperature = math.SmallestNonzeroFloat32
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
			return "", statusError(apiErr.HTTPStatusCode, err)
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
			return "", statusError(reqErr.HTTPStatusCode, err)
		}
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptySummary
	}
	return resp.Choices[0].Message.Content, nil
}
