// Package feed turns the raw spreadsheet feed response into Product
// records.
//
// The feed is a Google-Sheets-style gviz export: a JSON document wrapped in
// a fixed-length JS prologue and epilogue that must be stripped before the
// remainder parses. Inside, table.rows holds positional cells; the first
// row is a header. The column order varies between deployments, so the
// position→field mapping travels in Options rather than living here.
//
// Parse is a pure transform — it never touches the network and never
// mutates shared state. The catalog store decides how to install results.
package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/dukaan/app/models"
)

// ErrFormat marks any malformed feed response: wrapper shorter than the
// configured prefix+suffix, invalid JSON, or a missing table. Match with
// errors.Is.
var ErrFormat = errors.New("feed: malformed feed")

// FallbackName labels products whose row carries no usable name.
const FallbackName = "Unnamed"

// Options configures the wrapper lengths and the positional column layout.
type Options struct {
	PrefixLen int
	SuffixLen int
	// Columns maps cell position to field name. Recognised names:
	// id, name, category, price, description, image. Anything else is
	// skipped, which lets deployments carry extra columns.
	Columns []string
}

// DefaultOptions matches the stock gviz export with an id-first sheet.
func DefaultOptions() Options {
	return Options{
		PrefixLen: 47,
		SuffixLen: 2,
		Columns:   []string{"id", "name", "category", "price", "description", "image"},
	}
}

// gviz wire shapes. Cells may be null, and values may be string or number.
type gvizDoc struct {
	Table *gvizTable `json:"table"`
}

type gvizTable struct {
	Rows []gvizRow `json:"rows"`
}

type gvizRow struct {
	C []*gvizCell `json:"c"`
}

type gvizCell struct {
	V interface{} `json:"v"`
}

// Parse strips the wrapper, decodes the table, discards the header row and
// maps the remaining rows through opts.Columns. A valid feed of n rows
// yields exactly n-1 products, each with a non-negative price and a
// non-empty id.
func Parse(raw string, opts Options) ([]models.Product, error) {
	if len(opts.Columns) == 0 {
		opts.Columns = DefaultOptions().Columns
	}

	if len(raw) < opts.PrefixLen+opts.SuffixLen {
		return nil, fmt.Errorf("%w: response shorter than wrapper (%d bytes)", ErrFormat, len(raw))
	}
	body := raw[opts.PrefixLen : len(raw)-opts.SuffixLen]

	var doc gvizDoc
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if doc.Table == nil {
		return nil, fmt.Errorf("%w: missing table", ErrFormat)
	}

	rows := doc.Table.Rows
	if len(rows) == 0 {
		return []models.Product{}, nil
	}

	products := make([]models.Product, 0, len(rows)-1)
	for _, row := range rows[1:] { // first row is the header
		products = append(products, mapRow(row, opts.Columns))
	}
	return products, nil
}

func mapRow(row gvizRow, columns []string) models.Product {
	var p models.Product
	var idCell string

	for i, col := range columns {
		val := cellString(row, i)
		switch col {
		case "id":
			idCell = val
			p.ID = val
		case "name":
			p.Name = val
		case "category":
			p.Category = val
		case "price":
			p.Price = parsePrice(row, i)
		case "description":
			p.Description = val
		case "image":
			p.Image = val
		}
	}

	if p.Name == "" {
		if idCell != "" {
			p.Name = idCell
		} else {
			p.Name = FallbackName
		}
	}
	if p.ID == "" {
		// Random, not sequential: generated ids must not collide with ids
		// from earlier loads after a partial reload.
		p.ID = uuid.NewString()
	}
	return p
}

func cellString(row gvizRow, i int) string {
	if i >= len(row.C) || row.C[i] == nil || row.C[i].V == nil {
		return ""
	}
	switch v := row.C[i].V.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func parsePrice(row gvizRow, i int) float64 {
	if i >= len(row.C) || row.C[i] == nil || row.C[i].V == nil {
		return 0
	}
	var price float64
	switch v := row.C[i].V.(type) {
	case float64:
		price = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		price = parsed
	default:
		return 0
	}
	if price < 0 {
		return 0
	}
	return price
}
