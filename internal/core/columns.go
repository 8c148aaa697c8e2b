package core

// columns.go defines the column schema of the line item table.
//
// A column is either a FieldColumn, which projects one row field through a
// typed accessor, or a ComputedColumn, which derives its display value from
// the whole row. Field keys are resolved when the schema is built, so
// rendering never meets an unknown key.

import (
	"errors"
	"fmt"
)

// ColumnKind tags which variant a Column is.
type ColumnKind string

const (
	KindField    ColumnKind = "field"
	KindComputed ColumnKind = "computed"
)

// Column is one displayed column of the table.
type Column interface {
	Title() string
	Key() string
	Kind() ColumnKind
	// Display returns the cell text for r. It must not modify r.
	Display(r Row) string
}

// Accessor projects a row to the display value of one field.
type Accessor func(Row) string

// fieldAccessors maps row field keys to their typed projections.
var fieldAccessors = map[string]Accessor{
	"id":       func(r Row) string { return r.ID.String() },
	"item":     func(r Row) string { return r.Item },
	"price":    func(r Row) string { return FormatAmount(r.Price) },
	"quantity": func(r Row) string { return FormatAmount(r.Quantity) },
}

// FieldColumn shows a row field as is.
type FieldColumn struct {
	title string
	key   string
	get   Accessor
}

// NewField builds a FieldColumn for key.
// Returns an error if the row has no field with that key.
func NewField(title, key string) (FieldColumn, error) {
	get, ok := fieldAccessors[key]
	if !ok {
		return FieldColumn{}, fmt.Errorf("column %q: unknown row field %q", title, key)
	}
	return FieldColumn{title: title, key: key, get: get}, nil
}

// MustField is like NewField but panics on an unknown key.
// Use it for schemas declared at package level.
func MustField(title, key string) FieldColumn {
	c, err := NewField(title, key)
	if err != nil {
		panic(err)
	}
	return c
}

func (c FieldColumn) Title() string        { return c.title }
func (c FieldColumn) Key() string          { return c.key }
func (c FieldColumn) Kind() ColumnKind     { return KindField }
func (c FieldColumn) Display(r Row) string { return c.get(r) }

// ComputedColumn derives its cell text from the whole row.
type ComputedColumn struct {
	title   string
	key     string
	compute func(Row) string
}

// Computed builds a ComputedColumn. fn must be pure.
func Computed(title, key string, fn func(Row) string) ComputedColumn {
	return ComputedColumn{title: title, key: key, compute: fn}
}

func (c ComputedColumn) Title() string        { return c.title }
func (c ComputedColumn) Key() string          { return c.key }
func (c ComputedColumn) Kind() ColumnKind     { return KindComputed }
func (c ComputedColumn) Display(r Row) string { return c.compute(r) }

// Schema is a fixed, ordered list of columns.
type Schema struct {
	columns []Column
}

// NewSchema validates and freezes an ordered column list.
func NewSchema(cols ...Column) (Schema, error) {
	if len(cols) == 0 {
		return Schema{}, errors.New("schema needs at least one column")
	}

	seen := make(map[string]bool, len(cols))
	for i, col := range cols {
		if col == nil {
			return Schema{}, fmt.Errorf("column %d is nil", i)
		}
		if cc, ok := col.(ComputedColumn); ok && cc.compute == nil {
			return Schema{}, fmt.Errorf("column %q has no compute function", cc.title)
		}
		if fc, ok := col.(FieldColumn); ok && fc.get == nil {
			return Schema{}, fmt.Errorf("column %q was not built with NewField", fc.title)
		}
		if seen[col.Key()] {
			return Schema{}, fmt.Errorf("duplicate column key %q", col.Key())
		}
		seen[col.Key()] = true
	}

	frozen := make([]Column, len(cols))
	copy(frozen, cols)
	return Schema{columns: frozen}, nil
}

// Columns returns the ordered columns. The returned slice is a copy.
func (s Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Len returns the number of columns.
func (s Schema) Len() int {
	return len(s.columns)
}

// Info describes the columns for API clients.
func (s Schema) Info() []ColumnInfo {
	info := make([]ColumnInfo, len(s.columns))
	for i, col := range s.columns {
		info[i] = ColumnInfo{Title: col.Title(), Key: col.Key(), Kind: col.Kind()}
	}
	return info
}

// Cells renders r into one display string per column.
func (s Schema) Cells(r Row) []string {
	cells := make([]string, len(s.columns))
	for i, col := range s.columns {
		cells[i] = col.Display(r)
	}
	return cells
}

// Footer renders totals under the matching columns. The first column
// carries the "Total" label when it has no total of its own.
func (s Schema) Footer(t Totals) []string {
	cells := make([]string, len(s.columns))
	for i, col := range s.columns {
		cells[i] = t.Cell(col.Key())
	}
	if len(cells) > 0 && cells[0] == "" {
		cells[0] = "Total"
	}
	return cells
}

var defaultSchema = func() Schema {
	s, err := NewSchema(
		MustField("Item", "item"),
		Computed("Price", "price", func(r Row) string { return FormatDollar(r.Price) }),
		MustField("Quantity", "quantity"),
		Computed("Sub Total", "subTotal", func(r Row) string { return FormatDollar(r.Subtotal()) }),
	)
	if err != nil {
		panic(err)
	}
	return s
}()

// DefaultSchema returns the line item table schema:
// Item, Price, Quantity and Sub Total.
func DefaultSchema() Schema {
	return defaultSchema
}
