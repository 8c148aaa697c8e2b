package web

import (
	"encoding/json"
	"net/http"

	"github.com/JonMunkholm/lineitems/internal/core"
	"github.com/go-chi/chi/v5"
)

// maxBodySize caps JSON request bodies; an add-row request is tiny.
const maxBodySize = 64 * 1024

// handleListColumns returns the fixed column schema.
func (s *Server) handleListColumns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Schema().Info())
}

// handleOpenTable starts a new table session.
func (s *Server) handleOpenTable(w http.ResponseWriter, r *http.Request) {
	ctx := WithRequestMetadata(r.Context(), r)
	t, err := s.service.OpenTable(ctx)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"table_id": t.ID,
		"rows":     t.Store.Len(),
	})
}

// handleGetTable returns the rendered view of a table: columns, rows and totals.
func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	id, ok := s.tableIDParam(w, r)
	if !ok {
		return
	}
	view, err := s.service.View(r.Context(), id)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleCloseTable ends a table session.
func (s *Server) handleCloseTable(w http.ResponseWriter, r *http.Request) {
	id, ok := s.tableIDParam(w, r)
	if !ok {
		return
	}
	closed := s.service.CloseTable(WithRequestMetadata(r.Context(), r), id)
	writeJSON(w, http.StatusOK, map[string]bool{"closed": closed})
}

// handleListRows returns the raw rows of a table.
func (s *Server) handleListRows(w http.ResponseWriter, r *http.Request) {
	id, ok := s.tableIDParam(w, r)
	if !ok {
		return
	}
	rows, err := s.service.Rows(r.Context(), id)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rows":  rows,
		"count": len(rows),
	})
}

// handleAddRow appends a row. Price and quantity arrive as the strings the
// user typed and are parsed by the store.
func (s *Server) handleAddRow(w http.ResponseWriter, r *http.Request) {
	id, ok := s.tableIDParam(w, r)
	if !ok {
		return
	}

	var req core.AddRowRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, errInvalidRequest, http.StatusBadRequest)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	row, err := s.service.AddRow(ctx, id, req)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusCreated, row)
}

// handleDeleteRow removes a row. An absent row is reported as
// {"deleted": false}, not as an error.
func (s *Server) handleDeleteRow(w http.ResponseWriter, r *http.Request) {
	id, ok := s.tableIDParam(w, r)
	if !ok {
		return
	}
	rowID, err := core.ParseRowID(chi.URLParam(r, "rowID"))
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	deleted, err := s.service.DeleteRow(ctx, id, rowID)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

// handleTotals returns the footer sums of a table.
func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	id, ok := s.tableIDParam(w, r)
	if !ok {
		return
	}
	totals, err := s.service.Totals(r.Context(), id)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, totals)
}
