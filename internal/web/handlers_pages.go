package web

// handlers_pages.go serves the HTML table. Every visit to "/" is a new page
// load and gets a fresh table; the add and delete buttons are plain form
// posts that redirect back to the table (post/redirect/get).

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/lineitems/internal/core"
	"github.com/JonMunkholm/lineitems/internal/web/templates"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// handleIndex opens a new table and redirects to it.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := WithRequestMetadata(r.Context(), r)
	t, err := s.service.OpenTable(ctx)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, tablePath(t.ID), http.StatusSeeOther)
}

// handleTablePage renders the table with an empty add row.
func (s *Server) handleTablePage(w http.ResponseWriter, r *http.Request) {
	id, ok := s.tableIDParam(w, r)
	if !ok {
		return
	}
	s.renderTable(w, r, id, templates.AddForm{}, http.StatusOK)
}

// handleAddRowForm adds a row from the page's add row.
// Invalid input re-renders the page with the add row highlighted and the
// typed values kept, so the user can correct them.
func (s *Server) handleAddRowForm(w http.ResponseWriter, r *http.Request) {
	id, ok := s.tableIDParam(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		respondError(w, r, errInvalidRequest, http.StatusBadRequest)
		return
	}

	req := core.AddRowRequest{
		Item:     r.PostFormValue("item"),
		Price:    r.PostFormValue("price"),
		Quantity: r.PostFormValue("quantity"),
	}

	ctx := WithRequestMetadata(r.Context(), r)
	if _, err := s.service.AddRow(ctx, id, req); err != nil {
		var ve *core.ValidationError
		if !errors.As(err, &ve) {
			respondError(w, r, err, statusFor(err))
			return
		}
		form := templates.AddForm{
			Item:         req.Item,
			Price:        req.Price,
			Quantity:     req.Quantity,
			Invalid:      true,
			InvalidField: ve.Field,
			Message:      core.FormatUserError(err),
		}
		s.renderTable(w, r, id, form, http.StatusUnprocessableEntity)
		return
	}

	http.Redirect(w, r, tablePath(id), http.StatusSeeOther)
}

// handleDeleteRowForm deletes a row from the page's delete button.
// Deleting a row that is already gone just redirects back.
func (s *Server) handleDeleteRowForm(w http.ResponseWriter, r *http.Request) {
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
	if _, err := s.service.DeleteRow(ctx, id, rowID); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	http.Redirect(w, r, tablePath(id), http.StatusSeeOther)
}

// renderTable writes the full table page.
func (s *Server) renderTable(w http.ResponseWriter, r *http.Request, id uuid.UUID, form templates.AddForm, status int) {
	view, err := s.service.View(r.Context(), id)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.Page(view, form).Render(r.Context(), w); err != nil {
		slog.Error("render table page", "table_id", id, "error", err)
	}
}

// tableIDParam parses the {tableID} URL parameter, writing a 404 if it is
// not a valid table id.
func (s *Server) tableIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := core.ParseTableID(chi.URLParam(r, "tableID"))
	if err != nil {
		respondError(w, r, err, http.StatusNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func tablePath(id uuid.UUID) string {
	return "/table/" + id.String()
}
