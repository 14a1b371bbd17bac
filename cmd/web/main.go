// Package main runs the article summarizer web form.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"article-summarizer/internal/app"
	"article-summarizer/internal/config"
	hhttp "article-summarizer/internal/handler/http"
	"article-summarizer/internal/handler/http/requestid"
	"article-summarizer/internal/observability/logging"
	"article-summarizer/internal/observability/tracing"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	shutdownTracing, err := tracing.Init(context.Background(), tracing.ProviderConfig{
		Exporter:       cfg.Tracing.Exporter,
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: cfg.Server.Version,
		Endpoint:       cfg.Tracing.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("initialize tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to flush traces", slog.Any("error", err))
		}
	}()

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("build summarize pipeline: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("failed to close resources", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runServer(ctx, logger, cfg.Server, setupServer(logger, cfg, a))
}

// setupServer registers the routes and wraps them in the middleware chain.
func setupServer(logger *slog.Logger, cfg config.Config, a *app.App) http.Handler {
	var limiter *hhttp.ClientRateLimiter
	if cfg.Server.ClientRateLimit > 0 {
		limiter = hhttp.NewClientRateLimiter(cfg.Server.ClientRateLimit, cfg.Server.ClientRateBurst)
		logger.Info("client rate limiting enabled",
			slog.Float64("rps", cfg.Server.ClientRateLimit),
			slog.Int("burst", cfg.Server.ClientRateBurst))
	}

	mux := http.NewServeMux()
	hhttp.Register(mux, hhttp.Routes{
		Form: &hhttp.FormHandler{
			Summarizer:    a.Service,
			Timeout:       cfg.Server.RequestTimeout,
			PreviewLength: cfg.Pipeline.PreviewLength,
		},
		Health: &hhttp.HealthHandler{
			Version: cfg.Server.Version,
			Checks:  healthChecks(a),
		},
		Limiter: limiter,
	})

	return applyMiddleware(logger, mux)
}

func healthChecks(a *app.App) map[string]hhttp.HealthCheck {
	checks := make(map[string]hhttp.HealthCheck)
	if cb := a.CircuitBreaker(); cb != nil {
		checks["summarizer"] = hhttp.CircuitBreakerCheck(cb)
	}
	if p := a.CachePinger(); p != nil {
		checks["cache"] = hhttp.PingCheck(p)
	}
	return checks
}

// applyMiddleware wraps the handler with the middleware chain.
// Middleware order: Tracing → Request ID → Recovery → Logging → Body Limit → Security Headers → Metrics
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	chain := handler

	// Apply in reverse order (innermost to outermost)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.SecurityHeaders(chain)
	chain = hhttp.InputValidation(hhttp.DefaultMaxBodyBytes)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = requestid.Middleware(chain)
	chain = tracing.Middleware(chain)

	return chain
}

// runServer serves until ctx is canceled, then shuts down gracefully.
func runServer(ctx context.Context, logger *slog.Logger, cfg config.ServerConfig, handler http.Handler) error {
	addr := ":" + strconv.Itoa(cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// Summaries of long articles take several model calls.
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", cfg.Version))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
