package services

import (
	"context"

	"github.com/GregMSThompson/sales-dashboard/internal/charts"
	"github.com/GregMSThompson/sales-dashboard/internal/dto"
	"github.com/GregMSThompson/sales-dashboard/internal/frame"
	"github.com/GregMSThompson/sales-dashboard/internal/models"
)

const (
	performerDays   = 10
	paretoThreshold = 80
)

type analyticsService struct {
	cache datasetCache
}

func NewAnalyticsService(cache datasetCache) *analyticsService {
	return &analyticsService{cache: cache}
}

// Analyze computes the advanced analytics page over the session's working
// set.
func (s *analyticsService) Analyze(_ context.Context, sessionID string) (dto.AnalyticsResult, error) {
	ds, err := workingSet(s.cache, sessionID)
	if err != nil {
		return dto.AnalyticsResult{}, err
	}
	records := ds.Records
	if len(records) == 0 {
		return dto.AnalyticsResult{Warning: emptyFilterWarning}, nil
	}

	corr := frame.Correlation(records, frame.Measures...)
	daily := dailyTotals(records)
	byDaySales := func(d dto.DayTotals) float64 { return d.Sales }
	pareto := paretoRows(records)

	res := dto.AnalyticsResult{
		Rows:        len(records),
		ByCategory:  performance(records, frame.Category),
		ByRegion:    performance(records, frame.Region),
		Correlation: &corr,
		TopDays:     frame.TopN(daily, performerDays, byDaySales),
		BottomDays:  frame.BottomN(daily, performerDays, byDaySales),
		Pareto:      pareto,
	}
	res.Charts = analyticsCharts(records, corr, daily, pareto)
	return res, nil
}

func performance(records []models.Record, dim frame.Dimension) []dto.PerformanceRow {
	totals := frame.Aggregate(records, dim)
	frame.SortBy(totals, func(t frame.Totals) float64 { return t.Sales }, true)

	out := make([]dto.PerformanceRow, 0, len(totals))
	for _, t := range totals {
		row := dto.PerformanceRow{
			Key:        t.Key,
			TotalSales: t.Sales,
			AvgSale:    t.MeanSales,
			StdDev:     t.StdSales,
			Units:      t.Units,
			Customers:  t.Customers,
		}
		if t.Units != 0 {
			eff := t.Sales / t.Units
			row.Efficiency = &eff
		}
		out = append(out, row)
	}
	return out
}

func dailyTotals(records []models.Record) []dto.DayTotals {
	totals := frame.Aggregate(records, frame.Date)
	out := make([]dto.DayTotals, len(totals))
	for i, t := range totals {
		out[i] = dto.DayTotals{Date: t.Key, Sales: t.Sales, Units: t.Units, Customers: t.Customers}
	}
	return out
}

func paretoRows(records []models.Record) []dto.ParetoRow {
	totals := frame.Aggregate(records, frame.Category)
	frame.SortBy(totals, func(t frame.Totals) float64 { return t.Sales }, true)

	sales := make([]float64, len(totals))
	for i, t := range totals {
		sales[i] = t.Sales
	}
	pct := frame.PercentOfTotal(sales)
	cum := frame.CumulativePercent(sales)

	out := make([]dto.ParetoRow, len(totals))
	for i, t := range totals {
		out[i] = dto.ParetoRow{Category: t.Key, Sales: t.Sales, PercentOfTotal: pct[i], CumulativePercent: cum[i]}
	}
	return out
}

func analyticsCharts(records []models.Record, corr frame.CorrelationMatrix, daily []dto.DayTotals, pareto []dto.ParetoRow) []charts.Chart {
	var boxes []frame.BoxStats
	for _, g := range frame.GroupBy(records, frame.Category) {
		boxes = append(boxes, frame.Box(g.Key(), frame.Values(g.Rows, frame.Sales)))
	}

	dates := make([]string, len(daily))
	sales := make([]float64, len(daily))
	units := make([]float64, len(daily))
	customers := make([]float64, len(daily))
	for i, d := range daily {
		dates[i], sales[i], units[i], customers[i] = d.Date, d.Sales, d.Units, d.Customers
	}

	labels := make([]string, len(pareto))
	values := make([]float64, len(pareto))
	cum := make([]float64, len(pareto))
	for i, p := range pareto {
		labels[i], values[i], cum[i] = p.Category, p.Sales, p.CumulativePercent
	}

	return []charts.Chart{
		charts.Heatmap("correlation", "Correlation Matrix", corr),
		charts.Distribution("sales-distribution", charts.KindBox, "Sales Distribution by Category", "Category", "Sales ($)", boxes),
		charts.MultiPanel("daily-panels", "Time Series Analysis",
			charts.New("daily-sales", charts.KindLine, "Daily Sales", "Date", "Sales ($)", charts.Labeled("Sales", dates, sales)),
			charts.New("daily-units", charts.KindLine, "Daily Units", "Date", "Units", charts.Labeled("Units", dates, units)),
			charts.New("daily-customers", charts.KindLine, "Daily Customers", "Date", "Customers", charts.Labeled("Customers", dates, customers)),
		),
		charts.Pareto("pareto", "Category Sales Pareto Chart", "Category", labels, values, cum, paretoThreshold),
	}
}
