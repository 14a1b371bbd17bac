package text

import (
	"log/slog"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the BPE encoding used for token estimates.
const DefaultEncoding = "cl100k_base"

// TokenCounter estimates how many model tokens a text occupies. Counts come from an OpenAI
// BPE vocabulary, so for other model families (BART's own tokenizer, for one) they are an
// approximation of the real input length.
type TokenCounter interface {
	CountTokens(text string) int
}

// HeuristicCounter approximates tokens as one per four runes, rounded up.
// It needs no vocabulary files and is what NewTokenCounter falls back to offline.
type HeuristicCounter struct{}

// CountTokens implements TokenCounter.
func (HeuristicCounter) CountTokens(text string) int {
	return (CountRunes(text) + 3) / 4
}

// TiktokenCounter counts tokens with a real BPE encoding.
type TiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTiktokenCounter resolves name first as a model name, then as an encoding name.
func NewTiktokenCounter(name string) (*TiktokenCounter, error) {
	enc, err := tiktoken.EncodingForModel(name)
	if err != nil {
		enc, err = tiktoken.GetEncoding(name)
		if err != nil {
			return nil, err
		}
	}
	return &TiktokenCounter{enc: enc}, nil
}

// CountTokens implements TokenCounter.
func (c *TiktokenCounter) CountTokens(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

// NewTokenCounter returns a tiktoken-backed counter, or HeuristicCounter when the encoding
// cannot be loaded. tiktoken downloads its vocabulary on first use unless
// TIKTOKEN_CACHE_DIR points at a cached copy.
func NewTokenCounter(name string) TokenCounter {
	if name == "" {
		name = DefaultEncoding
	}
	c, err := NewTiktokenCounter(name)
	if err != nil {
		slog.Warn("tiktoken unavailable, using heuristic token estimate",
			slog.String("encoding", name),
			slog.Any("error", err))
		return HeuristicCounter{}
	}
	return c
}
