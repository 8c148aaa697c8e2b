package core

import (
	"slices"
	"sync"
)

// RowStore holds the rows of one table in display order.
//
// It is the only owner of its rows: Rows returns copies, and the only
// mutations are whole-row append and whole-row removal. A single mutex
// serializes them, which keeps ids unique and order stable when the store
// is shared between HTTP handlers.
type RowStore struct {
	mu     sync.Mutex
	rows   []Row
	nextID RowID
}

// NewRowStore returns an empty store. The first row gets id 0.
func NewRowStore() *RowStore {
	return &RowStore{}
}

// AddRow validates raw user input and appends a new row at the end.
// On a *ValidationError the store is left unchanged.
func (s *RowStore) AddRow(item, price, quantity string) (Row, error) {
	in, err := validateRequest(item, price, quantity)
	if err != nil {
		return Row{}, err
	}
	return s.append(in), nil
}

// Append adds a row from values that are already numeric.
// Empty items and NaN or infinite numbers are rejected with *ValidationError.
func (s *RowStore) Append(item string, price, quantity float64) (Row, error) {
	in, err := validateValues(item, price, quantity)
	if err != nil {
		return Row{}, err
	}
	return s.append(in), nil
}

func (s *RowStore) append(in rowInput) Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := Row{
		ID:       s.nextID,
		Item:     in.item,
		Price:    in.price,
		Quantity: in.quantity,
	}
	s.nextID++
	s.rows = append(s.rows, row)
	return row
}

// DeleteRow removes the row with the given id.
// Returns false, and changes nothing, if no such row exists.
func (s *RowStore) DeleteRow(id RowID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.rows, func(r Row) bool { return r.ID == id })
	if i < 0 {
		return false
	}
	s.rows = slices.Delete(s.rows, i, i+1)
	return true
}

// Rows returns a snapshot of the rows in insertion order.
func (s *RowStore) Rows() []Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// Len returns the number of live rows.
func (s *RowStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// sampleRows are the rows a freshly opened page starts with.
var sampleRows = []struct {
	item     string
	price    float64
	quantity float64
}{
	{"Cheese", 5, 2},
	{"Eggs", 3, 3},
	{"Steak", 25, 1},
}

// SeedDefaultRows appends the sample order (Cheese, Eggs, Steak) to s.
func SeedDefaultRows(s *RowStore) {
	for _, r := range sampleRows {
		// Sample rows are valid by construction.
		_, _ = s.Append(r.item, r.price, r.quantity)
	}
}
