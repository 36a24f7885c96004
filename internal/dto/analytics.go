package dto

import (
	"github.com/GregMSThompson/sales-dashboard/internal/charts"
	"github.com/GregMSThompson/sales-dashboard/internal/frame"
)

// PerformanceRow is one line of a category or region performance matrix.
type PerformanceRow struct {
	Key        string   `json:"key"`
	TotalSales float64  `json:"totalSales"`
	AvgSale    *float64 `json:"avgSale"`
	StdDev     *float64 `json:"stdDev"`
	Units      float64  `json:"units"`
	Customers  float64  `json:"customers"`
	Efficiency *float64 `json:"efficiency"`
}

type DayTotals struct {
	Date      string  `json:"date"`
	Sales     float64 `json:"sales"`
	Units     float64 `json:"units"`
	Customers float64 `json:"customers"`
}

type ParetoRow struct {
	Category          string  `json:"category"`
	Sales             float64 `json:"sales"`
	PercentOfTotal    float64 `json:"percentOfTotal"`
	CumulativePercent float64 `json:"cumulativePercent"`
}

type AnalyticsResult struct {
	Rows        int                      `json:"rows"`
	Warning     string                   `json:"warning,omitempty"`
	ByCategory  []PerformanceRow         `json:"byCategory,omitempty"`
	ByRegion    []PerformanceRow         `json:"byRegion,omitempty"`
	Correlation *frame.CorrelationMatrix `json:"correlation,omitempty"`
	TopDays     []DayTotals              `json:"topDays,omitempty"`
	BottomDays  []DayTotals              `json:"bottomDays,omitempty"`
	Pareto      []ParetoRow              `json:"pareto,omitempty"`
	Charts      []charts.Chart           `json:"charts,omitempty"`
}
