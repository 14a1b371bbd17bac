package summarizer

import (
	"fmt"
	"time"
)

// Provider names accepted by New.
const (
	ProviderHuggingFace     = "huggingface"
	ProviderClaude          = "claude"
	ProviderOpenAI          = "openai"
	ProviderOpenAIResponses = "openai-responses"
	ProviderNoOp            = "noop"
)

// Params bound the generated summary. Lengths are in model tokens.
type Params struct {
	MaxLength int
	MinLength int
	// DoSample enables sampling. When false the backend is asked for deterministic output.
	DoSample bool
}

// DefaultParams matches facebook/bart-large-cnn summarization defaults.
func DefaultParams() Params {
	return Params{MaxLength: 130, MinLength: 30, DoSample: false}
}

// Validate checks the length bounds.
func (p Params) Validate() error {
	if p.MaxLength <= 0 {
		return fmt.Errorf("max length must be positive, got %d", p.MaxLength)
	}
	if p.MinLength < 0 {
		return fmt.Errorf("min length must be non-negative, got %d", p.MinLength)
	}
	if p.MinLength > p.MaxLength {
		return fmt.Errorf("min length %d exceeds max length %d", p.MinLength, p.MaxLength)
	}
	return nil
}

// Config selects and configures a summarizer backend.
type Config struct {
	// Provider is one of the Provider* constants. Default: huggingface
	Provider string

	// Model overrides the provider's default model.
	Model string

	Params Params

	// Timeout bounds one call, retries included. Default: 60s
	Timeout time.Duration

	// MaxInputTokens rejects longer inputs with ErrInputTooLong before calling the model.
	// Zero disables the check. Default: 1024
	MaxInputTokens int

	// MaxAttempts is the number of attempts per call, first one included. Retries are
	// off unless it is above 1; every attempt is billed. Default: 1
	MaxAttempts int

	// RateLimit caps calls per second across the process. Zero disables limiting.
	RateLimit float64
	RateBurst int

	HuggingFaceToken   string
	HuggingFaceBaseURL string
	AnthropicAPIKey    string
	AnthropicBaseURL   string
	OpenAIAPIKey       string
	OpenAIBaseURL      string
}

// DefaultConfig returns a Hugging Face BART configuration without credentials.
func DefaultConfig() Config {
	return Config{
		Provider:           ProviderHuggingFace,
		Params:             DefaultParams(),
		Timeout:            60 * time.Second,
		MaxInputTokens:     1024,
		MaxAttempts:        1,
		RateBurst:          1,
		HuggingFaceBaseURL: DefaultHuggingFaceBaseURL,
	}
}

// Validate checks the configuration, including the credentials the provider needs.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderHuggingFace, ProviderNoOp:
	case ProviderClaude:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for provider %q", c.Provider)
		}
	case ProviderOpenAI, ProviderOpenAIResponses:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for provider %q", c.Provider)
		}
	default:
		return fmt.Errorf("unknown summarizer provider %q", c.Provider)
	}

	if err := c.Params.Validate(); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxInputTokens < 0 {
		return fmt.Errorf("max input tokens must be non-negative, got %d", c.MaxInputTokens)
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("max attempts must be non-negative, got %d", c.MaxAttempts)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must be non-negative, got %v", c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("rate burst must be at least 1, got %d", c.RateBurst)
	}
	return nil
}
