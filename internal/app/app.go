// Package app assembles the route planner from configuration: logger, tracing,
// store, metrics, and the route service.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vanshika/routeplanner/internal/config"
	"github.com/vanshika/routeplanner/internal/logging"
	"github.com/vanshika/routeplanner/internal/metrics"
	"github.com/vanshika/routeplanner/internal/observability"
	"github.com/vanshika/routeplanner/internal/repository"
	"github.com/vanshika/routeplanner/internal/server"
	"github.com/vanshika/routeplanner/internal/service"
)

// App owns the long-lived components shared by every entry point.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Store    repository.Store
	Service  *service.RouteService
	Registry *prometheus.Registry

	shutdownTracing func(context.Context) error
}

// Options overrides where diagnostics are written.
type Options struct {
	// LogOutput defaults to stderr.
	LogOutput io.Writer
	// TraceOutput defaults to stderr.
	TraceOutput io.Writer
}

// New opens the configured store and builds the route service around it.
func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	if opts.TraceOutput == nil {
		opts.TraceOutput = os.Stderr
	}

	logger := logging.NewWithWriter(cfg.Logging, opts.LogOutput)

	shutdownTracing, err := observability.InitTracing(cfg.Tracing, opts.TraceOutput)
	if err != nil {
		return nil, err
	}

	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := service.NewRouteService(store, logger).
		WithMetrics(metrics.New(registry)).
		WithTracer(observability.Tracer())

	logger.Debug("route planner initialised", "backend", cfg.Store.Backend)

	return &App{
		Config:          cfg,
		Logger:          logger,
		Store:           store,
		Service:         svc,
		Registry:        registry,
		shutdownTracing: shutdownTracing,
	}, nil
}

// Handler builds the HTTP API router.
func (a *App) Handler() http.Handler {
	deps := server.RouterDependencies{
		Health:           server.StoreHealthService{Store: a.Store},
		API:              server.NewAPIHandlers(a.Logger, a.Service),
		AllowedOrigins:   a.Config.HTTP.AllowedOrigins(),
		AllowCredentials: true,
	}
	if a.Config.HTTP.MetricsEnabled {
		deps.Metrics = promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{Registry: a.Registry})
	}
	return server.NewRouter(a.Logger, deps)
}

// Serve runs the HTTP API until ctx is cancelled or the listener fails.
func (a *App) Serve(ctx context.Context) error {
	srv := server.New(a.Logger, a.Config.HTTP, a.Handler())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		a.Logger.Info("shutdown requested")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return <-errCh
}

// Close releases the store and flushes pending spans.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.Store.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	if a.shutdownTracing != nil {
		if err := a.shutdownTracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracing: %w", err))
		}
	}
	return errors.Join(errs...)
}
