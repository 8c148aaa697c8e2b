package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JonMunkholm/lineitems/internal/config"
	"github.com/JonMunkholm/lineitems/internal/core"
	"github.com/JonMunkholm/lineitems/internal/logging"
	"github.com/JonMunkholm/lineitems/internal/web"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"max_open_tables", cfg.Table.MaxOpenTables,
		"table_idle_timeout", cfg.Table.IdleTimeout,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"api_key_required", cfg.Security.RequireAPIKey,
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	service, err := core.NewService(cfg, reg)
	if err != nil {
		slog.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	slog.Info("table schema", "columns", service.Schema().Len())

	server := web.NewServer(service, cfg, reg)

	// Background jobs stop when the server shuts down.
	jobCtx, cancelJobs := context.WithCancel(context.Background())

	go service.StartSessionSweeper(jobCtx, core.SweepConfig{
		IdleTimeout:   cfg.Table.IdleTimeout,
		CheckInterval: cfg.Table.SweepInterval,
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := serve(server, sigCh, cfg.Server.ShutdownTimeout, cancelJobs); err != nil {
		slog.Error("server stopped", "error", err)
		cancelJobs()
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// httpServer is the part of *web.Server that serve drives.
type httpServer interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// serve runs srv until a signal arrives on stop, then calls onStop and
// shuts srv down. It returns only after Shutdown has finished, so
// in-flight requests drain before the process exits.
func serve(srv httpServer, stop <-chan os.Signal, shutdownTimeout time.Duration, onStop func()) error {
	shutdownDone := make(chan error, 1)
	go func() {
		<-stop
		slog.Info("shutting down...")
		onStop()

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownDone <- srv.Shutdown(ctx)
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdownDone; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
