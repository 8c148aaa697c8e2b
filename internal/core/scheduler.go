package core

// scheduler.go runs background maintenance for table sessions.
//
// Tables live as long as a page load, but nothing tells the server when a
// browser tab goes away. The sweeper closes tables that have not been
// touched for IdleTimeout. It runs until its context is cancelled and never
// fails the application.

import (
	"context"
	"log/slog"
	"time"
)

// SweepConfig holds configuration for the session sweeper.
type SweepConfig struct {
	IdleTimeout   time.Duration // Close tables idle longer than this
	CheckInterval time.Duration // How often to sweep
}

// StartSessionSweeper periodically closes idle tables.
// It stops when ctx is cancelled.
func (s *Service) StartSessionSweeper(ctx context.Context, cfg SweepConfig) {
	slog.Info("session sweeper started",
		"idle_timeout", cfg.IdleTimeout,
		"check_interval", cfg.CheckInterval,
	)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			s.runSweep(ctx, cfg)
		}
	}
}

// runSweep performs one sweep cycle.
func (s *Service) runSweep(ctx context.Context, cfg SweepConfig) {
	start := time.Now()
	removed := s.SweepIdle(ctx, cfg.IdleTimeout)
	if removed == 0 {
		slog.Debug("session sweep found nothing idle")
		return
	}
	slog.Info("closed idle tables",
		"closed", removed,
		"open", s.OpenTables(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
