package web

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var formHeaders = map[string]string{"Content-Type": "application/x-www-form-urlencoded"}

// openTablePage follows the index redirect and returns the table page path.
func openTablePage(t *testing.T, srv *Server) string {
	t.Helper()
	rec := doRequest(t, srv, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	loc := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(loc, "/table/"), "unexpected redirect %q", loc)
	return loc
}

func postForm(t *testing.T, srv *Server, path string, values url.Values) (int, string, string) {
	t.Helper()
	rec := doRequest(t, srv, http.MethodPost, path, strings.NewReader(values.Encode()), formHeaders)
	return rec.Code, rec.Header().Get("Location"), rec.Body.String()
}

func TestPage_IndexOpensNewTable(t *testing.T) {
	srv := newTestServer(t, nil)

	first := openTablePage(t, srv)
	second := openTablePage(t, srv)
	assert.NotEqual(t, first, second, "each page load should get its own table")
	assert.Equal(t, 2, srv.service.OpenTables())
}

func TestPage_RendersTable(t *testing.T) {
	srv := newTestServer(t, nil)
	path := openTablePage(t, srv)

	rec := doRequest(t, srv, http.MethodGet, path, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	for _, want := range []string{
		`<th scope="col">Item</th>`,
		`<th scope="col">Sub Total</th>`,
		`id="row-0"`,
		`id="cell-0-item" class="item">Cheese</td>`,
		`id="cell-2-subTotal" class="subTotal">$25</td>`,
		`id="cell-1-delete"`,
		`id="add-input"`,
		`id="price-input"`,
		`id="quantity-input"`,
		`<td id="total-item">Total</td>`,
		`<td id="total-price">$33</td>`,
		`<td id="total-quantity">6</td>`,
		`<td id="total-subTotal">$44</td>`,
	} {
		assert.Contains(t, body, want)
	}
	assert.Contains(t, body, `<tr id="row-add">`)
	assert.NotContains(t, body, `class="invalid"`)
}

func TestPage_AddRow(t *testing.T) {
	srv := newTestServer(t, nil)
	path := openTablePage(t, srv)

	code, loc, _ := postForm(t, srv, path+"/rows", url.Values{
		"item":     {"Bread"},
		"price":    {"4"},
		"quantity": {"2"},
	})
	require.Equal(t, http.StatusSeeOther, code)
	assert.Equal(t, path, loc)

	rec := doRequest(t, srv, http.MethodGet, path, nil, nil)
	body := rec.Body.String()
	assert.Contains(t, body, `id="cell-3-item" class="item">Bread</td>`)
	assert.Contains(t, body, `<td id="total-subTotal">$52</td>`)
	assert.Contains(t, body, `id="add-input" name="item" placeholder="Item" value=""`)
}

func TestPage_AddRowInvalid(t *testing.T) {
	srv := newTestServer(t, nil)
	path := openTablePage(t, srv)

	code, _, body := postForm(t, srv, path+"/rows", url.Values{
		"item":     {"Bread"},
		"price":    {"four"},
		"quantity": {"2"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, code)

	assert.Contains(t, body, `<tr id="row-add" class="invalid">`)
	// Typed values are kept so the user can fix them.
	assert.Contains(t, body, `value="Bread"`)
	assert.Contains(t, body, `value="four" aria-invalid="true"`)
	assert.Contains(t, body, "Price and quantity must be numbers (Code: VAL002).")
	// Totals are unchanged.
	assert.Contains(t, body, `<td id="total-subTotal">$44</td>`)
}

func TestPage_AddRowEmptyItem(t *testing.T) {
	srv := newTestServer(t, nil)
	path := openTablePage(t, srv)

	code, _, body := postForm(t, srv, path+"/rows", url.Values{
		"item":     {"  "},
		"price":    {"1"},
		"quantity": {"1"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, body, `class="invalid"`)
	assert.Contains(t, body, "Item name is required")
	assert.NotContains(t, body, `id="row-3"`)
}

func TestPage_DeleteRow(t *testing.T) {
	srv := newTestServer(t, nil)
	path := openTablePage(t, srv)

	code, loc, _ := postForm(t, srv, path+"/rows/1/delete", nil)
	require.Equal(t, http.StatusSeeOther, code)
	assert.Equal(t, path, loc)

	rec := doRequest(t, srv, http.MethodGet, path, nil, nil)
	body := rec.Body.String()
	assert.NotContains(t, body, `id="row-1"`)
	assert.Contains(t, body, `id="row-0"`)
	assert.Contains(t, body, `id="row-2"`)
	assert.Contains(t, body, `<td id="total-subTotal">$35</td>`)

	// Deleting again is harmless.
	code, _, _ = postForm(t, srv, path+"/rows/1/delete", nil)
	assert.Equal(t, http.StatusSeeOther, code)
}

func TestPage_UnknownTable(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/table/"+uuid.NewString(), nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "This table no longer exists")
	assert.Contains(t, rec.Body.String(), "TBL001")

	rec = doRequest(t, srv, http.MethodGet, "/table/garbage", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPage_EscapesItems(t *testing.T) {
	srv := newTestServer(t, nil)
	path := openTablePage(t, srv)

	code, _, _ := postForm(t, srv, path+"/rows", url.Values{
		"item":     {"<script>alert(1)</script>"},
		"price":    {"1"},
		"quantity": {"1"},
	})
	require.Equal(t, http.StatusSeeOther, code)

	rec := doRequest(t, srv, http.MethodGet, path, nil, nil)
	assert.NotContains(t, rec.Body.String(), "<script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
}
