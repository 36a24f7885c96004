// Package charts describes dashboard charts as plain data and renders the
// simpler kinds to PNG.
package charts

import "github.com/GregMSThompson/sales-dashboard/internal/frame"

type Kind string

const (
	KindLine       Kind = "line"
	KindBar        Kind = "bar"
	KindPie        Kind = "pie"
	KindScatter    Kind = "scatter"
	KindBox        Kind = "box"
	KindViolin     Kind = "violin"
	KindHistogram  Kind = "histogram"
	KindStackedBar Kind = "stacked-bar"
	KindHeatmap    Kind = "heatmap"
	KindMultiPanel Kind = "multi-panel"
	KindPareto     Kind = "pareto"
)

// Chart is a renderer-agnostic chart description. Which of the payload
// fields are set depends on Kind.
type Chart struct {
	ID         string   `json:"id"`
	Kind       Kind     `json:"kind"`
	Title      string   `json:"title"`
	XAxis      string   `json:"xAxis,omitempty"`
	YAxis      string   `json:"yAxis,omitempty"`
	Series     []Series `json:"series,omitempty"`
	ShowLegend bool     `json:"showLegend"`

	Boxes     []frame.BoxStats         `json:"boxes,omitempty"`
	Bins      []frame.Bin              `json:"bins,omitempty"`
	Heatmap   *frame.CorrelationMatrix `json:"heatmap,omitempty"`
	Panels    []Chart                  `json:"panels,omitempty"`
	Reference *float64                 `json:"reference,omitempty"` // horizontal line on the secondary axis
}

type Series struct {
	Name      string  `json:"name"`
	Points    []Point `json:"points"`
	Color     string  `json:"color,omitempty"`
	Secondary bool    `json:"secondary,omitempty"`
}

// Point is a labeled value; scatter points also carry X and a marker Size.
type Point struct {
	Label string  `json:"label,omitempty"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size,omitempty"`
}
