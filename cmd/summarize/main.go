// Package main provides the article summarizer command line tool.
// Usage: summarize [flags] <url>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"article-summarizer/internal/app"
	"article-summarizer/internal/config"
	"article-summarizer/internal/observability/logging"
	"article-summarizer/internal/usecase/summarize"
	"article-summarizer/internal/utils/text"
)

const usage = `Usage: summarize [flags] <url>

Fetches an article and prints a preview of its text followed by a short summary.
The URL may be given with -url or as arguments; the first http(s) URL found is used.

Examples:
  summarize https://example.com/post
  summarize -provider claude -parallel 4 https://example.com/post
  summarize -file article.txt -output json
  curl -s https://example.com/post.txt | summarize -file -

Flags:
`

// options are command line overrides; zero values keep the environment configuration.
type options struct {
	url       string
	file      string
	output    string
	provider  string
	fetchMode string
	chunkSize int
	parallel  int
	maxDepth  int
	timeout   time.Duration
	noCache   bool
	verbose   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	var opts options
	fs := flag.NewFlagSet("summarize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.url, "url", "", "Article URL")
	fs.StringVar(&opts.file, "file", "", "Summarize a local text file instead of a URL (- for stdin)")
	fs.StringVar(&opts.output, "output", outputText, "Output format: text, json or yaml")
	fs.StringVar(&opts.provider, "provider", "", "Summarizer: huggingface, claude, openai, openai-responses or noop (default $SUMMARIZER_TYPE)")
	fs.StringVar(&opts.fetchMode, "fetch-mode", "", "Text extraction: visible or readability (default $CONTENT_FETCH_MODE)")
	fs.IntVar(&opts.chunkSize, "chunk-size", 0, "Chunk size in characters (default $CHUNK_SIZE)")
	fs.IntVar(&opts.parallel, "parallel", 0, "Chunks summarized concurrently (default $SUMMARIZE_PARALLELISM)")
	fs.IntVar(&opts.maxDepth, "max-depth", -1, "Extra reduction passes for long articles (default $REDUCE_MAX_DEPTH)")
	fs.DurationVar(&opts.timeout, "timeout", 5*time.Minute, "Overall time limit")
	fs.BoolVar(&opts.noCache, "no-cache", false, "Disable the summary cache")
	fs.BoolVar(&opts.verbose, "v", false, "Log progress to stderr")

	if err := fs.Parse(args); err != nil {
		return options{}, nil, err
	}
	return opts, fs.Args(), nil
}

func (o options) validate() error {
	if !isOutputFormat(o.output) {
		return fmt.Errorf("invalid output format %q (must be text, json or yaml)", o.output)
	}
	if o.timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", o.timeout)
	}
	return nil
}

// apply overrides cfg with the flags that were set.
func (o options) apply(cfg *config.Config) {
	if o.provider != "" {
		cfg.Summarizer.Type = o.provider
	}
	if o.fetchMode != "" {
		cfg.Fetch.Mode = o.fetchMode
	}
	if o.chunkSize != 0 {
		cfg.Pipeline.ChunkSize = o.chunkSize
	}
	if o.parallel != 0 {
		cfg.Pipeline.Parallelism = o.parallel
	}
	if o.maxDepth >= 0 {
		cfg.Pipeline.MaxDepth = o.maxDepth
	}
	if o.noCache {
		cfg.Cache.Backend = "none"
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, rest, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		// flag has already printed the problem and the usage.
		return 2
	}
	if err := opts.validate(); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	logger := logging.NewCLILogger(stderr, opts.verbose)
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return fail(stderr, fmt.Errorf("load configuration: %w", err))
	}
	opts.apply(&cfg)

	a, err := app.New(cfg)
	if err != nil {
		return fail(stderr, err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("failed to close resources", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithTimeout(logging.WithLogger(ctx, logger), opts.timeout)
	defer cancel()

	var res *summarize.Result
	if opts.file != "" {
		article, err := readArticle(opts.file, stdin)
		if err != nil {
			return fail(stderr, err)
		}
		res, err = a.Service.SummarizeText(ctx, article)
		if err != nil {
			return fail(stderr, err)
		}
	} else {
		input := opts.url
		if input == "" {
			input = strings.Join(rest, " ")
		}
		url, ok := text.FirstWebURL(input)
		if !ok {
			_, _ = fmt.Fprintln(stderr, "Error: an article URL starting with http:// or https:// is required")
			_, _ = fmt.Fprintln(stderr, "Run 'summarize -h' for usage.")
			return 2
		}
		logger.Info("summarizing article", slog.String("url", url))
		res, err = a.Service.SummarizeURL(ctx, url)
		if err != nil {
			return fail(stderr, err)
		}
	}

	if err := writeResult(stdout, opts.output, res, cfg.Pipeline.PreviewLength); err != nil {
		return fail(stderr, fmt.Errorf("write output: %w", err))
	}
	return 0
}

func readArticle(path string, stdin io.Reader) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read article: %w", err)
	}
	return text.NormalizeSpace(string(b)), nil
}

// fail prints err for the user and returns the exit code.
func fail(stderr io.Writer, err error) int {
	if summarize.KindOf(err) == summarize.KindInsufficientContent {
		_, _ = fmt.Fprintln(stderr, summarize.InsufficientContentMessage)
		return 1
	}
	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
