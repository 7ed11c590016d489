package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/de-tools/boxoffice-atlas/pkg/format"
	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrNothingToPlot = errors.New("nothing to plot")

type ImageFormat string

const (
	ImagePNG ImageFormat = "png"
	ImageSVG ImageFormat = "svg"
)

const (
	imageWidth  = 1024
	imageHeight = 480
)

var palette = []string{"#4c78a8", "#f58518", "#e45756", "#72b7b2", "#54a24b", "#eeca3b", "#b279a2", "#ff9da6", "#9d755d", "#bab0ac"}

func (f ImageFormat) renderer() (chart.RendererProvider, error) {
	switch f {
	case ImagePNG:
		return chart.PNG, nil
	case ImageSVG:
		return chart.SVG, nil
	default:
		return nil, fmt.Errorf("unsupported image format %q", string(f))
	}
}

// WriteImages renders the line, bar and donut charts of view into dir and
// returns the written paths. The line chart needs at least two years.
func WriteImages(dir string, view domain.View, imageFormat ImageFormat) ([]string, error) {
	provider, err := imageFormat.renderer()
	if err != nil {
		return nil, err
	}
	if view.TotalGross <= 0 {
		return nil, ErrNothingToPlot
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	type plot struct {
		name   string
		render func(io.Writer) error
	}
	plots := []plot{}
	if len(view.Grid.Rows) > 1 {
		plots = append(plots, plot{"revenue_by_year", func(w io.Writer) error { return RenderLine(w, provider, view) }})
	}
	plots = append(plots,
		plot{"revenue_by_genre", func(w io.Writer) error { return RenderBar(w, provider, view) }},
		plot{"revenue_share", func(w io.Writer) error { return RenderDonut(w, provider, view) }},
	)

	paths := make([]string, 0, len(plots))
	for _, p := range plots {
		path := filepath.Join(dir, p.name+"."+string(imageFormat))
		if err := writeFile(path, p.render); err != nil {
			return paths, fmt.Errorf("render %s: %w", p.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, render func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return render(f)
}

// RenderLine draws one series per genre with years on the x axis.
func RenderLine(w io.Writer, provider chart.RendererProvider, view domain.View) error {
	series := make([]chart.Series, 0, len(view.Grid.Genres))
	var maxGross float64
	for i, genre := range view.Grid.Genres {
		s := chart.ContinuousSeries{
			Name:  genre,
			Style: chart.Style{StrokeColor: color(i), StrokeWidth: 2},
		}
		for _, p := range view.Series {
			if p.Genre != genre {
				continue
			}
			s.XValues = append(s.XValues, float64(p.Year))
			s.YValues = append(s.YValues, p.Gross)
			if p.Gross > maxGross {
				maxGross = p.Gross
			}
		}
		series = append(series, s)
	}

	graph := chart.Chart{
		Title:  "Revenue by year",
		Width:  imageWidth,
		Height: imageHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Year",
			Ticks: yearTicks(view),
		},
		YAxis: chart.YAxis{
			Name:  "Gross earnings ($)",
			Range: &chart.ContinuousRange{Min: 0, Max: maxGross * 1.05},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return format.Currency(f)
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}
	return graph.Render(provider, w)
}

// RenderBar draws the total gross per genre.
func RenderBar(w io.Writer, provider chart.RendererProvider, view domain.View) error {
	bars := make([]chart.Value, 0, len(view.Totals))
	var maxGross float64
	for i, t := range view.Totals {
		bars = append(bars, chart.Value{
			Label: t.Genre + " " + format.Currency(t.Gross),
			Value: t.Gross,
			Style: chart.Style{FillColor: color(i), StrokeColor: color(i)},
		})
		if t.Gross > maxGross {
			maxGross = t.Gross
		}
	}

	graph := chart.BarChart{
		Title:    "Total revenue by genre",
		Width:    imageWidth,
		Height:   imageHeight,
		BarWidth: barWidth(len(bars)),
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxGross * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return format.Currency(f)
				}
				return ""
			},
		},
		Bars: bars,
	}
	return graph.Render(provider, w)
}

// RenderDonut draws each genre's share of the selected revenue.
func RenderDonut(w io.Writer, provider chart.RendererProvider, view domain.View) error {
	values := donutValues(view)
	if len(values) == 0 {
		return ErrNothingToPlot
	}

	graph := chart.DonutChart{
		Title:  "Share of total revenue",
		Width:  imageHeight,
		Height: imageHeight,
		Values: values,
	}
	return graph.Render(provider, w)
}

// yearTicks places one tick per year of the grid, oldest first.
func yearTicks(view domain.View) []chart.Tick {
	ticks := make([]chart.Tick, 0, len(view.Grid.Rows))
	for i := len(view.Grid.Rows) - 1; i >= 0; i-- {
		year := view.Grid.Rows[i].Year
		ticks = append(ticks, chart.Tick{Value: float64(year), Label: format.Year(year)})
	}
	return ticks
}

// donutValues skips genres without revenue; a zero-sized slice cannot be drawn.
func donutValues(view domain.View) []chart.Value {
	values := make([]chart.Value, 0, len(view.Totals))
	for i, t := range view.Totals {
		if t.Gross <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: t.Genre + " " + format.Percent(t.Percentage, 1) + "%",
			Value: t.Gross,
			Style: chart.Style{FillColor: color(i)},
		})
	}
	return values
}

func color(i int) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(palette[i%len(palette)], "#"))
}

func barWidth(n int) int {
	if n == 0 {
		return 60
	}
	width := (imageWidth - 120) / (n * 2)
	if width > 120 {
		return 120
	}
	if width < 10 {
		return 10
	}
	return width
}
