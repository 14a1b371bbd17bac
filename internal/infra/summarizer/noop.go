package summarizer

import (
	"context"

	"article-summarizer/internal/utils/text"
)

// DefaultNoOpLength is the rune count NoOp keeps.
const DefaultNoOpLength = 500

// NoOp "summarizes" by keeping the first runes of the input. It makes no network calls
// and is deterministic, which makes it useful offline and in tests.
type NoOp struct {
	length int
}

// NewNoOp creates a NoOp summarizer keeping DefaultNoOpLength runes.
func NewNoOp() *NoOp {
	return &NoOp{length: DefaultNoOpLength}
}

// Summarize returns the input truncated to the configured rune count.
func (n *NoOp) Summarize(ctx context.Context, input string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return text.Truncate(input, n.length), nil
}
