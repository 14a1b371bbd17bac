package summarize

import "context"

// ContentFetcher retrieves the visible text of the article at url.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}

// Summarizer condenses one piece of text. Implementations must be safe for
// concurrent use when the Reducer runs with parallelism above one.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Cache stores final summaries by key.
// A miss is reported as ok == false with a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (summary string, ok bool, err error)
	Set(ctx context.Context, key, summary string) error
}
