// Package views renders the storefront's HTML shell. Templates are
// embedded so the binary ships self-contained.
package views

import (
	"embed"
	"html/template"
	"io"
)

//go:embed *.html
var files embed.FS

var templates = template.Must(template.ParseFS(files, "*.html"))

// PageData feeds the storefront template.
type PageData struct {
	Title      string
	Categories []string
}

// Render writes the named template to w.
func Render(w io.Writer, name string, data PageData) error {
	return templates.ExecuteTemplate(w, name+".html", data)
}
