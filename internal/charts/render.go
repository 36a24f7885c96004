package charts

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/GregMSThompson/sales-dashboard/internal/errs"
	"github.com/GregMSThompson/sales-dashboard/internal/models"
)

const (
	pngWidth  = 1024
	pngHeight = 512
)

// Renderable reports whether RenderPNG supports the chart's kind.
func Renderable(k Kind) bool {
	switch k {
	case KindLine, KindBar, KindPie, KindStackedBar:
		return true
	}
	return false
}

// RenderPNG draws c as a PNG image.
func RenderPNG(w io.Writer, c Chart) error {
	if !Renderable(c.Kind) {
		return errs.NewValidationError(fmt.Sprintf("charts of kind %q cannot be rendered as PNG", c.Kind))
	}
	if len(c.Series) == 0 || len(c.Series[0].Points) == 0 {
		return errs.NewValidationError(fmt.Sprintf("chart %q has no data", c.ID))
	}

	var err error
	switch c.Kind {
	case KindLine:
		err = renderLine(w, c)
	case KindBar:
		err = renderBar(w, c)
	case KindPie:
		err = renderPie(w, c)
	case KindStackedBar:
		err = renderStacked(w, c)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", c.ID, err)
	}
	return nil
}

func renderLine(w io.Writer, c Chart) error {
	graph := chart.Chart{
		Title:  c.Title,
		Width:  pngWidth,
		Height: pngHeight,
		XAxis:  chart.XAxis{Name: c.XAxis},
		YAxis:  chart.YAxis{Name: c.YAxis},
	}
	for _, s := range c.Series {
		style := chart.Style{StrokeColor: drawing.ColorFromHex(s.Color), StrokeWidth: 2}
		if dates, ok := parseDates(s.Points); ok {
			graph.Series = append(graph.Series, chart.TimeSeries{
				Name:    s.Name,
				Style:   style,
				XValues: dates,
				YValues: yValues(s.Points),
			})
			continue
		}
		xs := make([]float64, len(s.Points))
		for i := range xs {
			xs[i] = float64(i)
		}
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    s.Name,
			Style:   style,
			XValues: xs,
			YValues: yValues(s.Points),
		})
	}
	if len(c.Series) > 1 {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}
	return graph.Render(chart.PNG, w)
}

func renderBar(w io.Writer, c Chart) error {
	s := c.Series[0]
	bars := make([]chart.Value, 0, len(s.Points))
	maxY := 0.0
	for _, p := range s.Points {
		bars = append(bars, chart.Value{
			Label: p.Label,
			Value: p.Y,
			Style: chart.Style{FillColor: drawing.ColorFromHex(s.Color), StrokeColor: drawing.ColorFromHex(s.Color)},
		})
		maxY = math.Max(maxY, p.Y)
	}
	if maxY == 0 {
		maxY = 1
	}
	graph := chart.BarChart{
		Title:  c.Title,
		Width:  pngWidth,
		Height: pngHeight,
		YAxis: chart.YAxis{
			Name:  c.YAxis,
			Range: &chart.ContinuousRange{Min: 0, Max: maxY},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}

func renderPie(w io.Writer, c Chart) error {
	s := c.Series[0]
	values := make([]chart.Value, 0, len(s.Points))
	for i, p := range s.Points {
		values = append(values, chart.Value{
			Label: p.Label,
			Value: p.Y,
			Style: chart.Style{FillColor: drawing.ColorFromHex(defaultColors[i%len(defaultColors)])},
		})
	}
	graph := chart.PieChart{
		Title:  c.Title,
		Width:  pngHeight,
		Height: pngHeight,
		Values: values,
	}
	return graph.Render(chart.PNG, w)
}

func renderStacked(w io.Writer, c Chart) error {
	labels := c.Series[0].Points
	bars := make([]chart.StackedBar, 0, len(labels))
	for i, p := range labels {
		bar := chart.StackedBar{Name: p.Label}
		for _, s := range c.Series {
			if i >= len(s.Points) {
				continue
			}
			bar.Values = append(bar.Values, chart.Value{
				Label: s.Name,
				Value: s.Points[i].Y,
				Style: chart.Style{FillColor: drawing.ColorFromHex(s.Color), StrokeColor: drawing.ColorFromHex(s.Color)},
			})
		}
		bars = append(bars, bar)
	}
	graph := chart.StackedBarChart{
		Title:  c.Title,
		Width:  pngWidth,
		Height: pngHeight,
		Bars:   bars,
	}
	return graph.Render(chart.PNG, w)
}

func parseDates(points []Point) ([]time.Time, bool) {
	out := make([]time.Time, len(points))
	for i, p := range points {
		t, err := time.Parse(models.DateLayout, p.Label)
		if err != nil {
			return nil, false
		}
		out[i] = t
	}
	return out, true
}

func yValues(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Y
	}
	return out
}
