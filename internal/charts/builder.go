package charts

import (
	"math"

	"github.com/GregMSThompson/sales-dashboard/internal/frame"
)

var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// New builds a chart of the given kind and assigns palette colors to any
// series that has none.
func New(id string, kind Kind, title, xAxis, yAxis string, series ...Series) Chart {
	for i := range series {
		if series[i].Color == "" {
			series[i].Color = defaultColors[i%len(defaultColors)]
		}
	}
	return Chart{
		ID:         id,
		Kind:       kind,
		Title:      title,
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     series,
		ShowLegend: len(series) > 1 || kind == KindPie,
	}
}

// Labeled pairs labels with values positionally.
func Labeled(name string, labels []string, values []float64) Series {
	points := make([]Point, 0, len(labels))
	for i, l := range labels {
		points = append(points, Point{Label: l, Y: round2(values[i])})
	}
	return Series{Name: name, Points: points}
}

// LabeledOptional is Labeled for values that may be undefined; those points
// are skipped.
func LabeledOptional(name string, labels []string, values []*float64) Series {
	points := make([]Point, 0, len(labels))
	for i, l := range labels {
		if values[i] == nil {
			continue
		}
		points = append(points, Point{Label: l, Y: round2(*values[i])})
	}
	return Series{Name: name, Points: points}
}

// FromTotals plots one measure of already aggregated rows, keyed by the
// first grouping key.
func FromTotals(name string, rows []frame.Totals, m frame.Measure) Series {
	points := make([]Point, 0, len(rows))
	for _, t := range rows {
		points = append(points, Point{Label: t.Key, Y: round2(t.Of(m))})
	}
	return Series{Name: name, Points: points}
}

// Stacked turns a pivot into one series per column, stacked over the rows.
func Stacked(id, title, xAxis, yAxis string, p frame.Pivot) Chart {
	series := make([]Series, 0, len(p.Cols))
	for j, col := range p.Cols {
		values := make([]float64, len(p.Rows))
		for i := range p.Rows {
			values[i] = p.Values[i][j]
		}
		series = append(series, Labeled(col, p.Rows, values))
	}
	return New(id, KindStackedBar, title, xAxis, yAxis, series...)
}

// Scatter plots (Units, Sales) per group, one series per first key, with
// marker size from Customers. Rows must be aggregated by two dimensions.
func Scatter(id, title string, rows []frame.Totals) Chart {
	var series []Series
	index := make(map[string]int)
	for _, t := range rows {
		name := t.Keys[0]
		pos, ok := index[name]
		if !ok {
			pos = len(series)
			index[name] = pos
			series = append(series, Series{Name: name})
		}
		label := name
		if len(t.Keys) > 1 {
			label = t.Keys[1]
		}
		series[pos].Points = append(series[pos].Points, Point{
			Label: label,
			X:     t.Units,
			Y:     round2(t.Sales),
			Size:  t.Customers,
		})
	}
	return New(id, KindScatter, title, "Units", "Sales", series...)
}

// Distribution is a box or violin chart of per-group summaries.
func Distribution(id string, kind Kind, title, xAxis, yAxis string, boxes []frame.BoxStats) Chart {
	c := New(id, kind, title, xAxis, yAxis)
	c.Boxes = boxes
	return c
}

func Histogram(id, title, xAxis string, bins []frame.Bin) Chart {
	c := New(id, KindHistogram, title, xAxis, "Count")
	c.Bins = bins
	return c
}

func Heatmap(id, title string, m frame.CorrelationMatrix) Chart {
	c := New(id, KindHeatmap, title, "", "")
	c.Heatmap = &m
	return c
}

// MultiPanel stacks charts that share an x axis.
func MultiPanel(id, title string, panels ...Chart) Chart {
	c := New(id, KindMultiPanel, title, "", "")
	c.Panels = panels
	return c
}

// Pareto draws values as bars on the primary axis and the cumulative
// percentage as a line on the secondary axis, with a reference line at
// threshold percent.
func Pareto(id, title, xAxis string, labels []string, values, cumulative []float64, threshold float64) Chart {
	bars := Labeled("Sales", labels, values)
	line := Labeled("Cumulative %", labels, cumulative)
	line.Secondary = true
	c := New(id, KindPareto, title, xAxis, "Sales", bars, line)
	c.Reference = &threshold
	return c
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
