// Package charts turns a revenue view into ECharts pages.
package charts

import (
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/de-tools/boxoffice-atlas/pkg/format"
	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	chartHeight = "320px"
	chartWidth  = "100%"
)

// Palette is shared by every chart so a genre keeps its colour across them.
var Palette = []string{
	"#4c78a8", "#f58518", "#e45756", "#72b7b2", "#54a24b",
	"#eeca3b", "#b279a2", "#ff9da6", "#9d755d", "#bab0ac",
}

func colorFor(i int) string {
	return Palette[i%len(Palette)]
}

func baseOpts(title string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:  chartWidth,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithColorsOpts(opts.Colors(Palette)),
	}
}

// NewLineChart plots gross per year with one line per genre.
func NewLineChart(view domain.View) *charts.Line {
	years := make([]string, 0, len(view.Grid.Rows))
	for i := len(view.Grid.Rows) - 1; i >= 0; i-- {
		years = append(years, format.Year(view.Grid.Rows[i].Year))
	}

	byGenre := make(map[string][]opts.LineData, len(view.Grid.Genres))
	for _, p := range view.Series {
		byGenre[p.Genre] = append(byGenre[p.Genre], opts.LineData{Value: p.Gross})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(append(baseOpts("Gross revenue by year"),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Year"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Gross ($)"}),
	)...)

	line.SetXAxis(years)
	for _, genre := range view.Grid.Genres {
		line.AddSeries(genre, byGenre[genre])
	}
	return line
}

// NewBarChart shows per-genre totals labelled as whole dollars.
func NewBarChart(view domain.View) *charts.Bar {
	genres := make([]string, 0, len(view.Totals))
	data := make([]opts.BarData, 0, len(view.Totals))
	labels := make([]string, 0, len(view.Totals))
	for i, t := range view.Totals {
		genres = append(genres, t.Genre)
		data = append(data, opts.BarData{
			Name:      t.Genre,
			Value:     t.Gross,
			ItemStyle: &opts.ItemStyle{Color: colorFor(i)},
		})
		labels = append(labels, format.Currency(t.Gross))
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(baseOpts("Total revenue by genre"),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Genre"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Total gross ($)"}),
	)...)

	bar.SetXAxis(genres).AddSeries("Gross", data,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Position:  "top",
			Formatter: opts.FuncOpts(lookupFunc(labels)),
		}),
	)
	return bar
}

// NewDonutChart shows each genre's share of the selected revenue. Labels carry the
// share to one decimal, the tooltip genre, gross and share to two decimals.
func NewDonutChart(view domain.View) *charts.Pie {
	data := make([]opts.PieData, 0, len(view.Totals))
	labels := make([]string, 0, len(view.Totals))
	tips := make([]string, 0, len(view.Totals))
	for _, t := range view.Totals {
		data = append(data, opts.PieData{Name: t.Genre, Value: t.Gross})
		labels = append(labels, format.Percent(t.Percentage, 1)+"%")
		tips = append(tips, fmt.Sprintf("%s<br/>Gross: %s<br/>Share: %s%%",
			html.EscapeString(t.Genre), format.Currency(t.Gross), format.Percent(t.Percentage, 2)))
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(append(baseOpts("Share of total revenue"),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: opts.FuncOpts(lookupFunc(tips)),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)...)

	pie.AddSeries("Share", data,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Position:  "inside",
			Formatter: opts.FuncOpts(lookupFunc(labels)),
		}),
		charts.WithPieChartOpts(opts.PieChart{
			Radius: []string{"30%", "70%"},
		}),
	)
	return pie
}

// Render writes an HTML page with the line, bar and donut charts of view.
func Render(w io.Writer, view domain.View) error {
	page := components.NewPage()
	page.PageTitle = "Box office by genre"
	page.AddCharts(
		NewLineChart(view),
		NewBarChart(view),
		NewDonutChart(view),
	)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}
	return nil
}

// lookupFunc builds a JS formatter returning the value at params.dataIndex, so
// values must follow the series' data order. The body is emitted inside the option
// JSON; percent-encoded values need no quoting and pass through that escaping intact.
func lookupFunc(values []string) string {
	encoded := make([]string, len(values))
	for i, v := range values {
		encoded[i] = "'" + url.PathEscape(v) + "'"
	}
	return fmt.Sprintf("function (params) { var v = [%s]; var s = v[params.dataIndex]; return s ? decodeURIComponent(s) : ''; }",
		strings.Join(encoded, ", "))
}
