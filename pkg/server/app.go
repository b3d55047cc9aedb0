package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"SeriesVault/internal/domain/repository"
	pkgcache "SeriesVault/pkg/cache"
	"SeriesVault/pkg/config"
	xhttp "SeriesVault/pkg/http"
	applogger "SeriesVault/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	l           *applogger.Logger
	httpHandler xhttp.Handler
	httpServer  *xhttp.Server
	stores      repository.Stores
	events      repository.EventPublisher
	queryCache  pkgcache.Service
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	stores repository.Stores,
	events repository.EventPublisher,
	queryCache pkgcache.Service,
) *App {
	return &App{
		cfg:         cfg,
		l:           l,
		httpHandler: handler,
		stores:      stores,
		events:      events,
		queryCache:  queryCache,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx := context.Background()

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetrics(a.cfg.MetricsEnabled(), a.cfg.Metrics.Path),
	)

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}
	a.l.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("storage_dir", a.cfg.Storage.Dir),
		applogger.String("cache_path", a.cfg.Cache.Path),
	)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	if a.events != nil {
		if err := a.events.Close(); err != nil {
			a.l.Warn("event publisher close error", applogger.Error(err))
		}
	}

	if a.queryCache != nil {
		if err := a.queryCache.Close(); err != nil {
			a.l.Warn("query cache close error", applogger.Error(err))
		}
	}

	if err := a.stores.Close(); err != nil {
		a.l.Warn("store close error", applogger.Error(err))
		return err
	}

	a.l.Info("shutdown complete")
	return nil
}
