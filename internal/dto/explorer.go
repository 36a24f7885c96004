package dto

import (
	"github.com/GregMSThompson/sales-dashboard/internal/charts"
	"github.com/GregMSThompson/sales-dashboard/internal/frame"
	"github.com/GregMSThompson/sales-dashboard/internal/models"
)

// Explorer chart types.
const (
	ExplorerBar       = "bar"
	ExplorerLine      = "line"
	ExplorerScatter   = "scatter"
	ExplorerBox       = "box"
	ExplorerViolin    = "violin"
	ExplorerHistogram = "histogram"
)

const ColorByNone = "None"

// HistogramBins is the bin count of explorer histograms.
const HistogramBins = 30

type ExplorerChartRequest struct {
	ChartType string `json:"chartType"`
	XAxis     string `json:"xAxis"`
	YAxis     string `json:"yAxis"`
	ColorBy   string `json:"colorBy,omitempty"`
}

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ExplorerQueryRequest narrows the filtered dataset by value ranges. Nil
// ranges default to the full observed range.
type ExplorerQueryRequest struct {
	Sales *Range `json:"sales,omitempty"`
	Units *Range `json:"units,omitempty"`
}

type QuickStat struct {
	Label string   `json:"label"`
	Value *float64 `json:"value"`
	// Delta is the percentage difference against the whole filtered dataset.
	Delta *float64 `json:"delta"`
}

type ExplorerQueryResult struct {
	Rows       []models.Record `json:"rows"`
	Matched    int             `json:"matched"`
	Total      int             `json:"total"`
	Message    string          `json:"message"`
	SalesRange Range           `json:"salesRange"`
	UnitsRange Range           `json:"unitsRange"`
	Stats      []QuickStat     `json:"stats"`
	Summary    []frame.Summary `json:"summary"`
	Warning    string          `json:"warning,omitempty"`
}

type CompareRequest struct {
	By string `json:"by"`
	// Items defaults to the first few options when nil; an explicit empty
	// list compares nothing.
	Items *[]string `json:"items,omitempty"`
}

type ComparisonRow struct {
	Key            string   `json:"key"`
	TotalSales     float64  `json:"totalSales"`
	AvgSale        *float64 `json:"avgSale"`
	Transactions   int      `json:"transactions"`
	TotalUnits     float64  `json:"totalUnits"`
	TotalCustomers float64  `json:"totalCustomers"`
}

type CompareResult struct {
	By       string          `json:"by"`
	Options  []string        `json:"options"`
	Selected []string        `json:"selected"`
	Rows     []ComparisonRow `json:"rows,omitempty"`
	Charts   []charts.Chart  `json:"charts,omitempty"`
	Message  string          `json:"message,omitempty"`
	Warning  string          `json:"warning,omitempty"`
}
