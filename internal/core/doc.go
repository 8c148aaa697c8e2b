// Package core provides the business logic of the line item table.
//
// This package holds all domain logic independent of any UI or transport
// layer. It can be used by web handlers, CLI tools, or tests without
// modification.
//
// # Architecture
//
//   - Column Schema: a fixed, ordered list of [Column] values. Each column is
//     either a [FieldColumn] (typed projection of one row field) or a
//     [ComputedColumn] (pure function of the row), see [DefaultSchema].
//   - Row Store: [RowStore] owns the rows of one table in insertion order.
//     Rows are only ever appended or removed whole; ids come from a
//     monotonic counter and are never reused.
//   - Aggregator: [ComputeTotals] sums price, quantity and subtotal from
//     scratch on every call.
//   - Sessions: every page load gets its own [Table], kept in a bounded
//     [Sessions] registry and swept when idle.
//   - Service: [Service] ties these together for callers.
//
// # Adding Rows
//
//	row, err := store.AddRow("Milk", "2.50", "4")
//	if errors.Is(err, core.ErrValidation) {
//	    // highlight the add row; the store is unchanged
//	}
//
// # Error Handling
//
// The only failure of the core is [ValidationError], returned when the item
// is empty or price/quantity are not numbers. Deleting a row that does not
// exist is not an error. The service adds [ErrTableNotFound] for unknown or
// expired table sessions. [MapError] turns any of these into a
// [UserMessage] with a support code:
//
//   - VAL001-VAL002: validation errors
//   - TBL001: table session not found
//   - REQ001-REQ003: malformed, cancelled or timed out requests
//   - AUTH001-AUTH002, RATE001: access errors
package core
