package web

import (
	"embed"
	"html/template"

	"github.com/de-tools/boxoffice-atlas/pkg/format"
)

// TemplatesFS embeds HTML templates for server-side rendering.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

var Funcs = template.FuncMap{
	"currency": format.Currency,
	"amount":   format.Amount,
	"percent":  format.Percent,
}

// ParseTemplates parses every embedded template with the shared helpers.
func ParseTemplates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(TemplatesFS, "templates/*.html")
}
