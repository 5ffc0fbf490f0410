package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/config"
	handler "github.com/utafrali/storefront/internal/handler/http"
	"github.com/utafrali/storefront/internal/repository/memory"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	httpServer     *http.Server
	pageService    *service.PageService
	tracerShutdown func(context.Context) error
	cleanupWG      sync.WaitGroup
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Load the catalog every page is built from.
	products, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		_ = tracerShutdown(ctx)
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded",
		slog.String("path", cfg.CatalogPath),
		slog.Int("products", len(products)),
	)

	// Build the dependency graph.
	repo := memory.NewSessionRepository()
	pageService := service.NewPageService(repo, products, cfg.Premium, cfg.SessionTTL(), logger)

	// Health checks.
	healthHandler := health.NewHandler(2 * time.Second)
	healthHandler.Register("catalog", func(ctx context.Context) error {
		if pageService.CatalogSize() == 0 {
			return errors.New("catalog is empty")
		}
		return nil
	})
	healthHandler.Register("sessions", func(ctx context.Context) error {
		_, err := pageService.ActiveSessions(ctx)
		return err
	})

	// HTTP router.
	router := handler.NewRouter(pageService, healthHandler, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		httpServer:     httpServer,
		pageService:    pageService,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and the session cleanup job, then blocks until
// the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	// Start HTTP server.
	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	// Start background session cleanup job.
	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	a.cleanupWG.Add(1)
	go func() {
		defer a.cleanupWG.Done()
		a.runSessionCleanup(cleanupCtx, a.cfg.SessionSweepInterval())
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case runErr = <-errCh:
	}

	stopCleanup()
	a.cleanupWG.Wait()

	if err := a.Shutdown(); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

// runSessionCleanup periodically expires idle page sessions.
func (a *App) runSessionCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expired, err := a.pageService.ExpireIdleSessions(ctx)
			if err != nil {
				a.logger.Error("session cleanup error", slog.String("error", err.Error()))
			} else if expired > 0 {
				a.logger.Info("idle sessions expired", slog.Int("expired", expired))
			}
		}
	}
}

// Shutdown gracefully stops all components in the correct order:
// 1. HTTP server (drain in-flight requests)
// 2. Tracer (flush pending spans from drained requests)
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	// 1. Drain in-flight HTTP requests (5s budget).
	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// 2. Flush pending spans after HTTP drain so in-flight request spans are captured.
	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
