package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
)

type TableConfig struct {
	NameWidth        int
	ValueWidth       int
	UnitWidth        int
	DescriptionWidth int
	CellWidth        int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:        16,
		ValueWidth:       18,
		UnitWidth:        8,
		DescriptionWidth: 34,
		CellWidth:        14,
	}
}

// Reporter prints a report to the terminal as fixed-width tables.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, value interface{}, unit string, desc string) string {
			return fmt.Sprintf("| %-*s | %*v | %*s | %-*s |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value,
				c.config.UnitWidth, unit,
				c.config.DescriptionWidth, desc)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.UnitWidth+2),
				strings.Repeat("-", c.config.DescriptionWidth+2))
		},
		"tableRow": func(cells []string) string {
			parts := make([]string, len(cells))
			for i, cell := range cells {
				if i == 0 {
					parts[i] = fmt.Sprintf(" %-6s ", cell)
					continue
				}
				parts[i] = fmt.Sprintf(" %*s ", c.config.CellWidth, cell)
			}
			return "|" + strings.Join(parts, "|") + "|"
		},
		"tableSeparator": func(columns []string) string {
			parts := make([]string, len(columns))
			for i := range columns {
				width := c.config.CellWidth + 2
				if i == 0 {
					width = 8
				}
				parts[i] = strings.Repeat("-", width)
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
		"join": strings.Join,
	}

	tmpl := `
{{.Title}} ({{.Years.Min}}-{{.Years.Max}})

Genres: {{if .Genres}}{{join .Genres ", "}}{{else}}none selected{{end}}
Total Amount: {{.Currency}} {{printf "%.2f" .TotalAmount}}
{{range .Sections}}
=== {{.Title}} ===
{{range $key, $value := .Summary}}{{$key}}: {{$value}}
{{end}}
{{- with .Table}}{{if .Rows}}
{{tableSeparator .Columns}}
{{tableRow .Columns}}
{{tableSeparator .Columns}}
{{range .Rows}}{{tableRow .}}
{{end}}{{tableSeparator .Columns}}
{{else}}
No revenue matches the current selection.
{{end}}{{end}}
{{- if .Details}}
{{separator}}
{{formatRow "Genre" "Gross" "Share" "Description"}}
{{separator}}
{{range .Details}}{{formatRow .Name .Value .Unit .Description}}
{{end}}{{separator}}
{{end}}{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

// HandleSummary prints the dataset's genres and year bounds.
func (c *Reporter) HandleSummary(summary domain.DatasetSummary) error {
	tmpl := `Records: {{.RecordsCount}}
Years: {{.Years.Min}}-{{.Years.Max}}
Genres:
{{range .Genres}}  - {{.}}
{{end}}`
	t, err := template.New("summary").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, summary)
}
