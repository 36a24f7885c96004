package dto

import (
	"github.com/GregMSThompson/sales-dashboard/internal/charts"
	"github.com/GregMSThompson/sales-dashboard/internal/models"
)

// Chart ids of the main dashboard.
const (
	ChartDailySales     = "daily-sales"
	ChartMovingAverage  = "moving-average"
	ChartCategorySales  = "category-sales"
	ChartCategoryShare  = "category-share"
	ChartRegionSales    = "region-sales"
	ChartRegionCategory = "region-category"
	ChartSalesVsUnits   = "sales-vs-units"
)

// PreviewRows is the number of most recent records returned with a plan.
const PreviewRows = 100

// RenderRequest carries the widget values a client reports for one render
// cycle. A nil field means the widget reported nothing; a non-nil empty
// list is an explicit empty selection.
type RenderRequest struct {
	Start      *string   `json:"start,omitempty"`
	End        *string   `json:"end,omitempty"`
	Categories *[]string `json:"categories,omitempty"`
	Regions    *[]string `json:"regions,omitempty"`
}

// WidgetOptions is what a client needs to draw the sidebar.
type WidgetOptions struct {
	MinDate    string                 `json:"minDate"`
	MaxDate    string                 `json:"maxDate"`
	Categories []string               `json:"categories"`
	Regions    []string               `json:"regions"`
	Values     models.FilterSelection `json:"values"`
}

type Metric struct {
	Label string  `json:"label"`
	Value string  `json:"value"`
	Delta string  `json:"delta,omitempty"`
	Raw   float64 `json:"raw"`
}

type RenderPlan struct {
	Dataset DatasetInfo            `json:"dataset"`
	Widgets WidgetOptions          `json:"widgets"`
	Filters models.FilterSelection `json:"filters"`
	Reset   bool                   `json:"reset"`
	Rows    int                    `json:"rows"`
	Warning string                 `json:"warning,omitempty"`
	Metrics []Metric               `json:"metrics,omitempty"`
	Charts  []charts.Chart         `json:"charts,omitempty"`
	Preview []models.Record        `json:"preview,omitempty"`
}
