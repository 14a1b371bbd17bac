package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"article-summarizer/internal/utils/text"
)

// DefaultClaudeModel is used when Config.Model is empty.
const DefaultClaudeModel = string(anthropic.ModelClaudeSonnet4_5_20250929)

// Claude summarizes with Anthropic's Messages API.
type Claude struct {
	remote
	client anthropic.Client
	params Params
}

// NewClaude creates a Claude summarizer from cfg.
func NewClaude(cfg Config) *Claude {
	model := cfg.Model
	if model == "" {
		model = DefaultClaudeModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.AnthropicAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.AnthropicBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.AnthropicBaseURL))
	}

	return &Claude{
		remote: newRemote(ProviderClaude, model, text.DefaultEncoding, cfg),
		client: anthropic.NewClient(opts...),
		params: cfg.Params,
	}
}

// Summarize implements summarize.Summarizer.
func (c *Claude) Summarize(ctx context.Context, input string) (string, error) {
	return c.summarize(ctx, input, c.call)
}

func (c *Claude) call(ctx context.Context, input string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(outputTokenBudget(c.params)),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(c.params, input))),
		},
	}
	if !c.params.DoSample {
		params.Temperature = anthropic.Float(0)
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", statusError(apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("claude api error: %w", err)
	}

	var b strings.Builder
	for _, block := range message.Content {
		if textBlock, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(textBlock.Text)
		}
	}
	return b.String(), nil
}
