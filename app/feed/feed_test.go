package feed_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/dukaan/app/feed"
)

// wrap produces a feed response with the stock gviz wrapper: a 47-byte JS
// prologue and a 2-byte epilogue around the JSON payload.
func wrap(body string) string {
	return "/*O_o*/\ngoogle.visualization.Query.setResponse(" + body + ");"
}

// table builds the gviz JSON for the given rows of string cells.
func table(rows ...[]string) string {
	out := `{"table":{"rows":[`
	for i, row := range rows {
		if i > 0 {
			out += ","
		}
		out += `{"c":[`
		for j, cell := range row {
			if j > 0 {
				out += ","
			}
			out += fmt.Sprintf(`{"v":%q}`, cell)
		}
		out += `]}`
	}
	return out + `]}}`
}

func TestParseSingleRow(t *testing.T) {
	raw := wrap(table(
		[]string{"id", "name", "cat", "price", "desc", "img"},
		[]string{"1", "Widget", "Tools", "9.99", "A widget", ""},
	))

	products, err := feed.Parse(raw, feed.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, "Tools", p.Category)
	assert.Equal(t, 9.99, p.Price)
	assert.Equal(t, "A widget", p.Description)
	assert.Equal(t, "", p.Image)
}

func TestParseDiscardsHeader(t *testing.T) {
	raw := wrap(table(
		[]string{"id", "name", "cat", "price", "desc", "img"},
		[]string{"1", "A", "", "1", "", ""},
		[]string{"2", "B", "", "2", "", ""},
		[]string{"3", "C", "", "3", "", ""},
	))

	products, err := feed.Parse(raw, feed.DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, products, 3) // 4 rows - header
}

func TestParseNumericCells(t *testing.T) {
	// Sheets export numbers as JSON numbers, not strings.
	raw := wrap(`{"table":{"rows":[
		{"c":[{"v":"id"},{"v":"name"},{"v":"cat"},{"v":"price"},{"v":"desc"},{"v":"img"}]},
		{"c":[{"v":7},{"v":"Hammer"},{"v":"Tools"},{"v":12.5},{"v":null},null]}
	]}}`)

	products, err := feed.Parse(raw, feed.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "7", products[0].ID)
	assert.Equal(t, 12.5, products[0].Price)
	assert.Equal(t, "", products[0].Description)
	assert.Equal(t, "", products[0].Image)
}

func TestParsePriceFallsBackToZero(t *testing.T) {
	raw := wrap(table(
		[]string{"id", "name", "cat", "price", "desc", "img"},
		[]string{"1", "A", "", "not-a-price", "", ""},
		[]string{"2", "B", "", "-4", "", ""},
		[]string{"3", "C", "", "", "", ""},
	))

	products, err := feed.Parse(raw, feed.DefaultOptions())
	require.NoError(t, err)
	for _, p := range products {
		assert.GreaterOrEqual(t, p.Price, 0.0, "price must never be negative")
		assert.Equal(t, 0.0, p.Price)
	}
}

func TestParseNameFallback(t *testing.T) {
	raw := wrap(table(
		[]string{"id", "name", "cat", "price", "desc", "img"},
		[]string{"sku-9", "", "", "1", "", ""},
		[]string{"", "", "", "1", "", ""},
	))

	products, err := feed.Parse(raw, feed.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, products, 2)

	// Name falls back to the id cell when present, then to the label.
	assert.Equal(t, "sku-9", products[0].Name)
	assert.Equal(t, feed.FallbackName, products[1].Name)
}

func TestParseGeneratesDistinctFallbackIDs(t *testing.T) {
	raw := wrap(table(
		[]string{"id", "name", "cat", "price", "desc", "img"},
		[]string{"", "A", "", "1", "", ""},
		[]string{"", "B", "", "1", "", ""},
	))

	products, err := feed.Parse(raw, feed.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.NotEmpty(t, products[0].ID)
	assert.NotEmpty(t, products[1].ID)
	assert.NotEqual(t, products[0].ID, products[1].ID)
}

func TestParseCustomColumnOrder(t *testing.T) {
	// A name-first deployment.
	opts := feed.DefaultOptions()
	opts.Columns = []string{"name", "id", "price", "category"}

	raw := wrap(table(
		[]string{"name", "id", "price", "category"},
		[]string{"Mug", "m-1", "3.5", "Kitchen"},
	))

	products, err := feed.Parse(raw, opts)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "m-1", products[0].ID)
	assert.Equal(t, "Mug", products[0].Name)
	assert.Equal(t, 3.5, products[0].Price)
	assert.Equal(t, "Kitchen", products[0].Category)
}

func TestParseShortResponse(t *testing.T) {
	_, err := feed.Parse("tiny", feed.DefaultOptions())
	assert.True(t, errors.Is(err, feed.ErrFormat))
}

func TestParseMalformedJSON(t *testing.T) {
	_, err := feed.Parse(wrap(`{"table":{,}`), feed.DefaultOptions())
	assert.True(t, errors.Is(err, feed.ErrFormat))
}

func TestParseMissingTable(t *testing.T) {
	_, err := feed.Parse(wrap(`{"version":"0.6"}`), feed.DefaultOptions())
	assert.True(t, errors.Is(err, feed.ErrFormat))
}

func TestParseShortRows(t *testing.T) {
	// Rows shorter than the column layout must not panic; absent cells
	// resolve to their zero defaults.
	raw := wrap(table(
		[]string{"id", "name", "cat", "price", "desc", "img"},
		[]string{"1", "OnlyTwoCells"},
	))

	products, err := feed.Parse(raw, feed.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "OnlyTwoCells", products[0].Name)
	assert.Equal(t, 0.0, products[0].Price)
	assert.Equal(t, "", products[0].Category)
}
