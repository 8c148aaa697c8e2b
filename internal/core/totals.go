package core

// Totals are the column sums shown in the table footer.
type Totals struct {
	Price    float64 `json:"total_price"`
	Quantity float64 `json:"total_quantity"`
	Subtotal float64 `json:"total_subtotal"`
}

// ComputeTotals sums price, quantity and price*quantity over rows.
// It keeps no state; every call starts from zero.
func ComputeTotals(rows []Row) Totals {
	var t Totals
	for _, r := range rows {
		t.Price += r.Price
		t.Quantity += r.Quantity
		t.Subtotal += r.Subtotal()
	}
	return t
}

// Cell returns the footer text for the column with the given key,
// or "" for columns that have no total.
func (t Totals) Cell(key string) string {
	switch key {
	case "price":
		return FormatDollar(t.Price)
	case "quantity":
		return FormatAmount(t.Quantity)
	case "subTotal":
		return FormatDollar(t.Subtotal)
	default:
		return ""
	}
}
