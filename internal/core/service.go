package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JonMunkholm/lineitems/internal/config"
	"github.com/JonMunkholm/lineitems/internal/logging"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// Service is the entry point for all table operations.
// It has no transport dependencies; the web package is one caller.
type Service struct {
	schema   Schema
	sessions *Sessions
	metrics  *Metrics
	seed     bool
}

// NewService creates a Service from the table settings in cfg.
// Metrics are registered with registerer (nil for a private registry).
func NewService(cfg *config.Config, registerer prometheus.Registerer) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("service config is nil")
	}

	sessions, err := NewSessions(cfg.Table.MaxOpenTables)
	if err != nil {
		return nil, err
	}

	return &Service{
		schema:   DefaultSchema(),
		sessions: sessions,
		metrics:  NewMetrics(registerer),
		seed:     cfg.Table.SeedDefaultRows,
	}, nil
}

// Schema returns the column schema rows are rendered with.
func (s *Service) Schema() Schema {
	return s.schema
}

// Columns returns the fixed ordered column list.
func (s *Service) Columns() []Column {
	return s.schema.Columns()
}

// OpenTable starts a new table session, seeded with the sample rows
// when configured to.
func (s *Service) OpenTable(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, evicted := s.sessions.Open()
	if s.seed {
		SeedDefaultRows(t.Store)
	}

	s.metrics.TablesOpened.Inc()
	if evicted {
		s.metrics.TablesEvicted.Inc()
	}
	s.metrics.TablesOpen.Set(float64(s.sessions.Len()))

	requestLogger(ctx, t.ID).
		Info("table opened", "rows", t.Store.Len(), "evicted", evicted)
	return t, nil
}

// CloseTable ends a table session. Returns false if it was not open.
func (s *Service) CloseTable(ctx context.Context, id uuid.UUID) bool {
	closed := s.sessions.Close(id)
	if closed {
		s.metrics.TablesOpen.Set(float64(s.sessions.Len()))
		requestLogger(ctx, id).Info("table closed")
	}
	return closed
}

// OpenTables returns the number of open table sessions.
func (s *Service) OpenTables() int {
	return s.sessions.Len()
}

// Rows returns a snapshot of a table's rows in display order.
func (s *Service) Rows(ctx context.Context, id uuid.UUID) ([]Row, error) {
	t, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return t.Store.Rows(), nil
}

// AddRow validates req and appends a row to the table.
// Validation failures come back as *ValidationError and leave the table unchanged.
func (s *Service) AddRow(ctx context.Context, id uuid.UUID, req AddRowRequest) (Row, error) {
	t, err := s.sessions.Get(id)
	if err != nil {
		return Row{}, err
	}

	logger := requestLogger(ctx, id)

	row, err := t.Store.AddRow(req.Item, req.Price, req.Quantity)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			s.metrics.ValidationFailures.WithLabelValues(ve.Field).Inc()
			logger.Debug("row rejected", "field", ve.Field, "value", ve.Value)
		}
		return Row{}, fmt.Errorf("add row: %w", err)
	}

	s.metrics.RowsAdded.Inc()
	logger.Info("row added", "row_id", row.ID, "item", row.Item)
	return row, nil
}

// DeleteRow removes a row from the table. Deleting an absent row is not an
// error; deleted reports whether anything was removed.
func (s *Service) DeleteRow(ctx context.Context, id uuid.UUID, rowID RowID) (deleted bool, err error) {
	t, err := s.sessions.Get(id)
	if err != nil {
		return false, err
	}

	deleted = t.Store.DeleteRow(rowID)
	if deleted {
		s.metrics.RowsDeleted.Inc()
	}
	requestLogger(ctx, id).
		Info("row delete", "row_id", rowID, "deleted", deleted)
	return deleted, nil
}

// Totals recomputes the footer sums for a table.
func (s *Service) Totals(ctx context.Context, id uuid.UUID) (Totals, error) {
	rows, err := s.Rows(ctx, id)
	if err != nil {
		return Totals{}, err
	}
	return ComputeTotals(rows), nil
}

// View renders a table through the schema: header, one row of cells per
// row, and the footer totals.
func (s *Service) View(ctx context.Context, id uuid.UUID) (TableView, error) {
	rows, err := s.Rows(ctx, id)
	if err != nil {
		return TableView{}, err
	}

	view := TableView{
		TableID: id,
		Columns: s.schema.Info(),
		Rows:    make([]RowView, len(rows)),
		Totals:  ComputeTotals(rows),
	}
	for i, r := range rows {
		view.Rows[i] = RowView{ID: r.ID, Cells: s.schema.Cells(r)}
	}
	view.Footer = s.schema.Footer(view.Totals)
	return view, nil
}

// SweepIdle closes tables idle longer than maxIdle.
func (s *Service) SweepIdle(ctx context.Context, maxIdle time.Duration) int {
	removed := s.sessions.SweepIdle(maxIdle)
	if removed > 0 {
		s.metrics.TablesEvicted.Add(float64(removed))
	}
	s.metrics.TablesOpen.Set(float64(s.sessions.Len()))
	return removed
}

// requestLogger tags mutation logs with the table and the client that
// touched it.
func requestLogger(ctx context.Context, id uuid.UUID) *slog.Logger {
	return logging.WithFields(ctx,
		"table_id", id,
		"ip", GetIPAddressFromContext(ctx),
		"user_agent", GetUserAgentFromContext(ctx),
	)
}
