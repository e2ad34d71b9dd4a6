package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/foil/internal/adapters/events"
	"github.com/okian/foil/internal/adapters/http/api"
	"github.com/okian/foil/internal/adapters/repository"
	app "github.com/okian/foil/internal/app"
	"github.com/okian/foil/internal/config"
	"github.com/okian/foil/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			logger.Error(err)
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		loggerInstance.Error(ctx, "failed to open save store", logger.Error(err))
		return
	}

	bus := events.NewBus(events.WithCapacity(cfg.EventQueueSize))

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithStore(store),
		app.WithBus(bus),
		app.WithContentDir(cfg.ContentDir),
		app.WithSaveKey(cfg.SaveKey),
		app.WithRNGSeed(cfg.RNGSeed),
	)
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	// Drain the notification stream into the log.
	go logEvents(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	api.NewServer(svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// newStore opens the save backend named by the config.
func newStore(ctx context.Context, cfg *config.Config) (repository.SaveStore, error) {
	switch cfg.SaveBackend {
	case config.BackendFile:
		return repository.NewFileStore(cfg.SavePath)
	case config.BackendPostgres:
		return repository.NewPostgresStore(ctx, cfg.PostgresDSN)
	default:
		return repository.NewMemoryStore(), nil
	}
}

// logEvents mirrors game notifications into the structured log until the bus
// closes or the context ends.
func logEvents(ctx context.Context, svc *app.Service) {
	log := logger.Get()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-svc.Events():
			if !ok {
				return
			}
			log.Debug(ctx, "game event",
				logger.String("kind", ev.Kind),
				logger.String("tier", ev.TierID),
				logger.String("item", ev.ItemID),
				logger.String("badge", ev.BadgeID),
				logger.Int("amount", ev.Amount),
			)
		}
	}
}
