package core

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// RowID identifies a row within one table.
// IDs come from a per-store counter and are never reused, even after deletes.
type RowID int64

func (id RowID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseRowID parses a row id taken from a URL or form value.
func ParseRowID(s string) (RowID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid request: row id %q", s)
	}
	return RowID(n), nil
}

// Row is one line item. Rows are values: the store replaces or removes
// whole rows and never edits one in place.
type Row struct {
	ID       RowID   `json:"id"`
	Item     string  `json:"item"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// Subtotal returns price * quantity. It is derived on demand and never stored.
func (r Row) Subtotal() float64 {
	return r.Price * r.Quantity
}

// AddRowRequest carries the raw strings a user typed into the add row.
type AddRowRequest struct {
	Item     string `json:"item"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
}

// ParseTableID parses a table session id. Malformed ids are reported as
// ErrTableNotFound since no such table can exist.
func ParseTableID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrTableNotFound, s)
	}
	return id, nil
}

// ColumnInfo describes a column for API clients.
type ColumnInfo struct {
	Title string     `json:"title"`
	Key   string     `json:"key"`
	Kind  ColumnKind `json:"kind"`
}

// RowView is a row rendered through the schema, one display string per column.
type RowView struct {
	ID    RowID    `json:"id"`
	Cells []string `json:"cells"`
}

// TableView is everything a renderer needs to draw one table.
type TableView struct {
	TableID uuid.UUID    `json:"table_id"`
	Columns []ColumnInfo `json:"columns"`
	Rows    []RowView    `json:"rows"`
	Footer  []string     `json:"footer"`
	Totals  Totals       `json:"totals"`
}
