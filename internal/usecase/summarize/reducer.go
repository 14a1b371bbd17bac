package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"article-summarizer/internal/observability/logging"
	"article-summarizer/internal/observability/metrics"
	"article-summarizer/internal/observability/tracing"
	"article-summarizer/internal/utils/text"
)

// Reduction describes a completed reduction.
type Reduction struct {
	Summary string
	// Chunks is the number of chunks in the first pass.
	Chunks int
	// Calls is the total number of Summarizer calls, final call included.
	Calls int
	// Depth is the number of extra re-chunking passes (0 for the plain two-pass reduction).
	Depth int
}

// Reducer condenses text of any length into one summary: it summarizes fixed-size
// chunks, joins the chunk summaries with spaces and summarizes the joined text once more.
//
// With default options a non-empty text of n characters costs exactly
// ceil(n/chunkSize)+1 Summarizer calls.
type Reducer struct {
	summarizer  Summarizer
	chunkSize   int
	parallelism int
	maxDepth    int
}

// ReducerOption configures a Reducer.
type ReducerOption func(*Reducer)

// WithChunkSize sets the maximum chunk length in characters (default text.DefaultChunkSize).
func WithChunkSize(n int) ReducerOption {
	return func(r *Reducer) { r.chunkSize = n }
}

// WithParallelism summarizes up to n chunks concurrently (default 1).
// Chunk summaries are still joined in chunk order.
func WithParallelism(n int) ReducerOption {
	return func(r *Reducer) { r.parallelism = n }
}

// WithMaxDepth allows up to d extra passes when the joined chunk summaries are still
// longer than one chunk. Each pass re-chunks and re-summarizes the joined text.
// The default 0 keeps the fixed two-pass reduction.
func WithMaxDepth(d int) ReducerOption {
	return func(r *Reducer) { r.maxDepth = d }
}

// NewReducer creates a Reducer around s.
func NewReducer(s Summarizer, opts ...ReducerOption) (*Reducer, error) {
	if s == nil {
		return nil, errors.New("summarizer must not be nil")
	}
	r := &Reducer{
		summarizer:  s,
		chunkSize:   text.DefaultChunkSize,
		parallelism: 1,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", r.chunkSize)
	}
	if r.parallelism <= 0 {
		return nil, fmt.Errorf("parallelism must be positive, got %d", r.parallelism)
	}
	if r.maxDepth < 0 {
		return nil, fmt.Errorf("max depth must be non-negative, got %d", r.maxDepth)
	}
	return r, nil
}

// ChunkSize returns the configured chunk length.
func (r *Reducer) ChunkSize() int { return r.chunkSize }

// Fingerprint identifies the settings that change a reduction's output.
// Parallelism is excluded since it never changes the result.
func (r *Reducer) Fingerprint() string {
	return fmt.Sprintf("chunk=%d;depth=%d", r.chunkSize, r.maxDepth)
}

// Reduce summarizes input. An empty input yields an empty Reduction and no calls.
// The first Summarizer failure aborts the reduction and is returned as a KindModel *Error;
// no partial summary is returned.
func (r *Reducer) Reduce(ctx context.Context, input string) (Reduction, error) {
	if input == "" {
		return Reduction{}, nil
	}

	ctx, span := tracing.Start(ctx, "summarize.Reduce",
		attribute.Int("chunk_size", r.chunkSize),
		attribute.Int("input_length", text.CountRunes(input)),
	)
	defer span.End()

	logger := logging.FromContext(ctx)
	start := time.Now()

	var red Reduction
	chunks := text.Chunk(input, r.chunkSize)
	red.Chunks = len(chunks)

	combined, err := r.summarizeChunks(ctx, chunks)
	if err != nil {
		tracing.RecordError(span, err)
		return Reduction{}, err
	}
	red.Calls += len(chunks)

	for red.Depth < r.maxDepth && text.CountRunes(combined) > r.chunkSize {
		red.Depth++
		next := text.Chunk(combined, r.chunkSize)
		logger.Debug("combined summary exceeds chunk size, reducing again",
			slog.Int("depth", red.Depth),
			slog.Int("chunk_count", len(next)))

		combined, err = r.summarizeChunks(ctx, next)
		if err != nil {
			tracing.RecordError(span, err)
			return Reduction{}, err
		}
		red.Calls += len(next)
	}

	final, err := r.summarizeOne(ctx, combined, "final")
	if err != nil {
		tracing.RecordError(span, err)
		return Reduction{}, err
	}
	red.Calls++
	red.Summary = final

	span.SetAttributes(
		attribute.Int("chunk_count", red.Chunks),
		attribute.Int("summarizer_calls", red.Calls),
		attribute.Int("depth", red.Depth),
	)
	metrics.RecordReduction(red.Chunks, red.Calls)
	logger.Debug("reduction completed",
		slog.Int("chunk_count", red.Chunks),
		slog.Int("summarizer_calls", red.Calls),
		slog.Int("depth", red.Depth),
		slog.Duration("duration", time.Since(start)))

	return red, nil
}

// summarizeChunks summarizes every chunk and joins the results with single spaces,
// in chunk order.
func (r *Reducer) summarizeChunks(ctx context.Context, chunks []string) (string, error) {
	summaries := make([]string, len(chunks))

	if r.parallelism == 1 || len(chunks) == 1 {
		for i, chunk := range chunks {
			s, err := r.summarizeOne(ctx, chunk, chunkLabel(i, len(chunks)))
			if err != nil {
				return "", err
			}
			summaries[i] = s
		}
		return strings.Join(summaries, " "), nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(r.parallelism)
	for i, chunk := range chunks {
		eg.Go(func() error {
			s, err := r.summarizeOne(egCtx, chunk, chunkLabel(i, len(chunks)))
			if err != nil {
				return err
			}
			summaries[i] = s
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return "", err
	}
	return strings.Join(summaries, " "), nil
}

func (r *Reducer) summarizeOne(ctx context.Context, input, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", NewModelError(fmt.Errorf("%s: %w", label, err))
	}
	out, err := r.summarizer.Summarize(ctx, input)
	if err != nil {
		return "", NewModelError(fmt.Errorf("%s: %w", label, err))
	}
	return out, nil
}

func chunkLabel(i, n int) string {
	return fmt.Sprintf("chunk %d/%d", i+1, n)
}
