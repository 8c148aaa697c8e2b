package core

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRowStore_AddRow(t *testing.T) {
	s := NewRowStore()

	row, err := s.AddRow("Milk", "2.5", "2")
	if err != nil {
		t.Fatalf("AddRow() error = %v", err)
	}

	want := Row{ID: 0, Item: "Milk", Price: 2.5, Quantity: 2}
	if diff := cmp.Diff(want, row); diff != "" {
		t.Errorf("AddRow() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Row{want}, s.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestRowStore_AddRowTrimsItem(t *testing.T) {
	s := NewRowStore()
	row, err := s.AddRow("  Bread ", "4", "1")
	if err != nil {
		t.Fatalf("AddRow() error = %v", err)
	}
	if row.Item != "Bread" {
		t.Errorf("Item = %q, want %q", row.Item, "Bread")
	}
}

func TestRowStore_AddRowValidation(t *testing.T) {
	tests := []struct {
		name      string
		item      string
		price     string
		quantity  string
		wantField string
	}{
		{name: "empty item", item: "", price: "1", quantity: "1", wantField: FieldItem},
		{name: "whitespace item", item: "   ", price: "1", quantity: "1", wantField: FieldItem},
		{name: "non-numeric price", item: "Bread", price: "abc", quantity: "1", wantField: FieldPrice},
		{name: "empty price", item: "Bread", price: "", quantity: "1", wantField: FieldPrice},
		{name: "non-numeric quantity", item: "Bread", price: "1", quantity: "two", wantField: FieldQuantity},
		{name: "empty quantity", item: "Bread", price: "1", quantity: "", wantField: FieldQuantity},
		{name: "item checked first", item: "", price: "abc", quantity: "abc", wantField: FieldItem},
		{name: "decimal comma price", item: "Bread", price: "1,5", quantity: "2", wantField: FieldPrice},
		{name: "currency symbol price", item: "Bread", price: "$5", quantity: "2", wantField: FieldPrice},
		{name: "thousands separator quantity", item: "Bread", price: "1", quantity: "1,000", wantField: FieldQuantity},
		{name: "price checked before quantity", item: "Bread", price: "abc", quantity: "abc", wantField: FieldPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewRowStore()
			SeedDefaultRows(s)
			before := s.Rows()

			_, err := s.AddRow(tt.item, tt.price, tt.quantity)

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("AddRow() error = %v, want *ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
			if !errors.Is(err, ErrValidation) {
				t.Error("error should match ErrValidation")
			}
			if diff := cmp.Diff(before, s.Rows()); diff != "" {
				t.Errorf("store changed after rejected add (-before +after):\n%s", diff)
			}
		})
	}
}

func TestRowStore_AddRowScientificNotation(t *testing.T) {
	s := NewRowStore()
	row, err := s.AddRow("Rice", "1e3", "2.5e-1")
	if err != nil {
		t.Fatalf("AddRow() error = %v", err)
	}
	if row.Price != 1000 || row.Quantity != 0.25 {
		t.Errorf("row = %+v, want price 1000 and quantity 0.25", row)
	}
	if row.Subtotal() != 250 {
		t.Errorf("Subtotal() = %v, want 250", row.Subtotal())
	}
}

func TestRowStore_Append(t *testing.T) {
	s := NewRowStore()
	if _, err := s.Append("Tea", 1.25, 4); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if _, err := s.Append("", 1, 1); err == nil {
		t.Error("Append with empty item should fail")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestRowStore_IDsAreUniqueAndNeverReused(t *testing.T) {
	s := NewRowStore()
	a, _ := s.AddRow("A", "1", "1")
	b, _ := s.AddRow("B", "1", "1")

	if !s.DeleteRow(b.ID) {
		t.Fatal("DeleteRow() = false for existing row")
	}
	c, _ := s.AddRow("C", "1", "1")

	if c.ID == a.ID || c.ID == b.ID {
		t.Errorf("new row reused id %d", c.ID)
	}
	if c.ID != 2 {
		t.Errorf("third row id = %d, want 2", c.ID)
	}
}

func TestRowStore_DeleteRow(t *testing.T) {
	s := NewRowStore()
	SeedDefaultRows(s)

	if !s.DeleteRow(1) {
		t.Fatal("DeleteRow(1) = false, want true")
	}

	got := s.Rows()
	want := []Row{
		{ID: 0, Item: "Cheese", Price: 5, Quantity: 2},
		{ID: 2, Item: "Steak", Price: 25, Quantity: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rows() after delete mismatch (-want +got):\n%s", diff)
	}
}

func TestRowStore_DeleteRowAbsent(t *testing.T) {
	s := NewRowStore()
	SeedDefaultRows(s)
	before := s.Rows()

	if s.DeleteRow(99) {
		t.Error("DeleteRow(99) = true for absent id")
	}
	if !s.DeleteRow(0) {
		t.Fatal("DeleteRow(0) = false")
	}
	if s.DeleteRow(0) {
		t.Error("second DeleteRow(0) = true")
	}
	if len(s.Rows()) != len(before)-1 {
		t.Errorf("Len = %d, want %d", len(s.Rows()), len(before)-1)
	}
}

func TestRowStore_DeleteAllThenAdd(t *testing.T) {
	s := NewRowStore()
	SeedDefaultRows(s)
	for _, r := range s.Rows() {
		s.DeleteRow(r.ID)
	}
	if got := s.Rows(); len(got) != 0 {
		t.Fatalf("Rows() = %v, want empty", got)
	}
	if ComputeTotals(s.Rows()) != (Totals{}) {
		t.Error("totals of an empty store should be zero")
	}

	row, err := s.AddRow("Bread", "4", "1")
	if err != nil {
		t.Fatalf("AddRow() error = %v", err)
	}
	if row.ID != 3 {
		t.Errorf("id after clearing = %d, want 3", row.ID)
	}
}

func TestRowStore_RowsIsSnapshot(t *testing.T) {
	s := NewRowStore()
	SeedDefaultRows(s)

	rows := s.Rows()
	rows[0].Item = "Changed"

	if got := s.Rows(); got[0].Item != "Cheese" {
		t.Errorf("store changed through snapshot: %+v", got)
	}
}

func TestRowStore_RowsEmptyIsNotNil(t *testing.T) {
	if rows := NewRowStore().Rows(); rows == nil {
		t.Error("Rows() on empty store = nil, want empty slice")
	}
}

func TestSeedDefaultRows(t *testing.T) {
	s := NewRowStore()
	SeedDefaultRows(s)

	want := []Row{
		{ID: 0, Item: "Cheese", Price: 5, Quantity: 2},
		{ID: 1, Item: "Eggs", Price: 3, Quantity: 3},
		{ID: 2, Item: "Steak", Price: 25, Quantity: 1},
	}
	if diff := cmp.Diff(want, s.Rows()); diff != "" {
		t.Errorf("seeded rows mismatch (-want +got):\n%s", diff)
	}
	if got := ComputeTotals(s.Rows()); got != (Totals{Price: 33, Quantity: 6, Subtotal: 44}) {
		t.Errorf("seeded totals = %+v", got)
	}
}

func TestRowStore_ConcurrentAdds(t *testing.T) {
	s := NewRowStore()
	const workers, perWorker = 8, 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := s.AddRow("Item", "1", "1"); err != nil {
					t.Errorf("AddRow() error = %v", err)
				}
			}
		}()
	}
	wg.Wait()

	rows := s.Rows()
	if len(rows) != workers*perWorker {
		t.Fatalf("Len = %d, want %d", len(rows), workers*perWorker)
	}

	seen := make(map[RowID]bool, len(rows))
	for i, r := range rows {
		if seen[r.ID] {
			t.Fatalf("duplicate id %d", r.ID)
		}
		seen[r.ID] = true
		if i > 0 && rows[i-1].ID >= r.ID {
			t.Fatalf("ids out of order at %d: %d then %d", i, rows[i-1].ID, r.ID)
		}
	}
}

func TestParseRowID(t *testing.T) {
	id, err := ParseRowID("42")
	if err != nil || id != 42 {
		t.Errorf("ParseRowID(\"42\") = %d, %v", id, err)
	}

	for _, bad := range []string{"", "abc", "1.5"} {
		if _, err := ParseRowID(bad); err == nil {
			t.Errorf("ParseRowID(%q) should fail", bad)
		}
	}
}
