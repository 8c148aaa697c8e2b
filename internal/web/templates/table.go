// Package templates holds the HTML components of the line item table,
// built as templ components.
package templates

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/lineitems/internal/core"
	"github.com/a-h/templ"
)

// AddForm is the state of the add row: what the user typed, and whether
// the last attempt was rejected.
type AddForm struct {
	Item         string
	Price        string
	Quantity     string
	Invalid      bool
	InvalidField string
	Message      string
}

// value returns the typed text for the input bound to a column key.
func (f AddForm) value(key string) string {
	switch key {
	case core.FieldItem:
		return f.Item
	case core.FieldPrice:
		return f.Price
	case core.FieldQuantity:
		return f.Quantity
	}
	return ""
}

// addInputs maps column keys to the add row input ids. Columns without an
// entry (computed ones) get an empty cell.
var addInputs = map[string]string{
	core.FieldItem:     "add-input",
	core.FieldPrice:    "price-input",
	core.FieldQuantity: "quantity-input",
}

// Page renders the complete table page.
func Page(view core.TableView, form AddForm) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>Order</title><link rel="stylesheet" href="/static/table.css"></head>`)
		h.raw(`<body><h1>Order</h1>`)
		h.render(ctx, LineItemTable(view, form))
		h.raw(`</body></html>`)
		return h.err
	})
}

// LineItemTable renders the table: header, one row per line item with a
// delete button, the add row, and the totals footer.
func LineItemTable(view core.TableView, form AddForm) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		base := tablePath(view)

		h.raw(`<form id="add-form" method="post" action="`)
		h.text(string(templ.URL(base + "/rows")))
		h.raw(`"></form>`)

		if form.Message != "" {
			h.raw(`<p class="error" role="alert">`)
			h.text(form.Message)
			h.raw(`</p>`)
		}

		h.raw(`<table id="line-items">`)
		h.render(ctx, HeaderRow(view.Columns))
		h.raw(`<tbody>`)
		for _, row := range view.Rows {
			h.render(ctx, ItemRow(base, view.Columns, row))
		}
		h.render(ctx, AddRow(view.Columns, form))
		h.raw(`</tbody>`)
		h.render(ctx, FooterRow(view.Columns, view.Footer))
		h.raw(`</table>`)

		return h.err
	})
}

// HeaderRow renders the column titles plus an empty cell over the delete
// buttons.
func HeaderRow(columns []core.ColumnInfo) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<thead><tr>`)
		for _, col := range columns {
			h.raw(`<th scope="col">`)
			h.text(col.Title)
			h.raw(`</th>`)
		}
		h.raw(`<th></th></tr></thead>`)
		return h.err
	})
}

// ItemRow renders one line item and its delete button. base is the table's
// page path.
func ItemRow(base string, columns []core.ColumnInfo, row core.RowView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		id := row.ID.String()

		h.raw(`<tr id="row-` + id + `">`)
		for i, cell := range row.Cells {
			key := columns[i].Key
			h.raw(`<td id="cell-` + id + `-`)
			h.text(key)
			h.raw(`" class="`)
			h.text(key)
			h.raw(`">`)
			h.text(cell)
			h.raw(`</td>`)
		}
		h.raw(`<td><form method="post" action="`)
		h.text(string(templ.URL(base + "/rows/" + id + "/delete")))
		h.raw(`"><button id="cell-` + id + `-delete" type="submit" class="btn btn-sm btn-danger">Delete</button></form></td>`)
		h.raw(`</tr>`)
		return h.err
	})
}

// AddRow renders the input row. Inputs belong to the add-form declared
// above the table.
func AddRow(columns []core.ColumnInfo, form AddForm) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		if form.Invalid {
			h.raw(`<tr id="row-add" class="invalid">`)
		} else {
			h.raw(`<tr id="row-add">`)
		}
		for _, col := range columns {
			inputID, ok := addInputs[col.Key]
			if !ok {
				h.raw(`<td></td>`)
				continue
			}
			h.raw(`<td><input form="add-form" id="` + inputID + `" name="`)
			h.text(col.Key)
			h.raw(`" placeholder="`)
			h.text(col.Title)
			h.raw(`" value="`)
			h.text(form.value(col.Key))
			h.raw(`"`)
			if form.Invalid && form.InvalidField == col.Key {
				h.raw(` aria-invalid="true" autofocus`)
			}
			h.raw(`></td>`)
		}
		h.raw(`<td><button form="add-form" id="add-button" type="submit" class="btn btn-sm">Add</button></td></tr>`)
		return h.err
	})
}

// FooterRow renders the totals under their columns.
func FooterRow(columns []core.ColumnInfo, footer []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<tfoot><tr>`)
		for i, cell := range footer {
			h.raw(`<td id="total-`)
			h.text(columns[i].Key)
			h.raw(`">`)
			h.text(cell)
			h.raw(`</td>`)
		}
		h.raw(`<td></td></tr></tfoot>`)
		return h.err
	})
}

func tablePath(view core.TableView) string {
	return "/table/" + view.TableID.String()
}

// ErrorPage renders a standalone error page with the user message and its
// support code.
func ErrorPage(msg core.UserMessage, status int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		title := strconv.Itoa(status) + " " + http.StatusText(status)

		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		h.text(title)
		h.raw(`</title><link rel="stylesheet" href="/static/table.css"></head><body><h1>`)
		h.text(title)
		h.raw(`</h1><p class="error" role="alert">`)
		h.text(msg.Message)
		if msg.Code != "" {
			h.text(" (" + msg.Code + ")")
		}
		h.raw(`</p>`)
		if msg.Action != "" {
			h.raw(`<p>`)
			h.text(msg.Action)
			h.raw(`</p>`)
		}
		h.raw(`<p><a href="/">Start a new order</a></p></body></html>`)
		return h.err
	})
}

// htmlWriter writes markup, remembering the first write error so
// components can check once at the end.
type htmlWriter struct {
	w   io.Writer
	err error
}

// raw writes trusted markup as is.
func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes s HTML-escaped; safe for element content and quoted attributes.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// render writes a child component.
func (h *htmlWriter) render(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}
