// Package charts renders density curves as PNG images.
package charts

import (
	"errors"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"pricesim.demo.org/internal/distribution"
)

const (
	DefaultWidth  = 900
	DefaultHeight = 480
)

// ErrNoSeries is returned when a chart is requested without any curves.
var ErrNoSeries = errors.New("charts: at least one series is required")

// Series is one named density curve over its grid.
type Series struct {
	Name  string
	Grid  distribution.PriceGrid
	Curve distribution.DensityCurve
}

// Options controls the chart title and size. Zero sizes fall back to the defaults.
type Options struct {
	Title  string
	Width  int
	Height int
}

var palette = []drawing.Color{chart.ColorBlue, chart.ColorRed, chart.ColorGreen, chart.ColorOrange}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
	}
}

// FormatPrice renders a price axis label such as "$1.5M" or "$250K".
func FormatPrice(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	switch {
	case f >= 1_000_000:
		return fmt.Sprintf("$%.1fM", f/1_000_000)
	case f >= 1_000:
		return fmt.Sprintf("$%.0fK", f/1_000)
	default:
		return fmt.Sprintf("$%.0f", f)
	}
}

func formatDensity(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.1e", f)
	}
	return ""
}

// RenderDensityChart draws every series as a line and writes the PNG to w.
func RenderDensityChart(w io.Writer, opts Options, series ...Series) error {
	if len(series) == 0 {
		return ErrNoSeries
	}

	lines := make([]chart.Series, 0, len(series))
	for i, s := range series {
		if len(s.Grid) != len(s.Curve) {
			return &distribution.DimensionMismatchError{
				Operation: "chart series " + s.Name,
				Lengths:   []int{len(s.Grid), len(s.Curve)},
			}
		}
		lines = append(lines, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: s.Grid,
			YValues: s.Curve,
			Style:   lineStyle(palette[i%len(palette)]),
		})
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Price", ValueFormatter: FormatPrice},
		YAxis:      chart.YAxis{Name: "Density", ValueFormatter: formatDensity},
		Series:     lines,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("charts: render %q: %w", opts.Title, err)
	}
	return nil
}
