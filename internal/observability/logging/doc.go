// Package logging provides structured logging utilities built on log/slog.
//
// Key features:
//   - JSON and text output formats
//   - LOG_LEVEL handling (debug, info, warn, error)
//   - Request ID propagation
//   - Context-aware logging
//
// Example usage:
//
//	logger := logging.NewLogger()
//	slog.SetDefault(logger)
//
//	func handle(ctx context.Context) {
//	    logging.FromContext(ctx).Info("summarizing", slog.String("url", u))
//	}
package logging
