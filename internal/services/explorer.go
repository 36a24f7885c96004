package services

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/GregMSThompson/sales-dashboard/internal/charts"
	"github.com/GregMSThompson/sales-dashboard/internal/dto"
	"github.com/GregMSThompson/sales-dashboard/internal/errs"
	"github.com/GregMSThompson/sales-dashboard/internal/frame"
	"github.com/GregMSThompson/sales-dashboard/internal/models"
	"github.com/GregMSThompson/sales-dashboard/pkg/helpers"
)

var explorerChartTypes = []string{
	dto.ExplorerBar, dto.ExplorerLine, dto.ExplorerScatter,
	dto.ExplorerBox, dto.ExplorerViolin, dto.ExplorerHistogram,
}

// Default comparison selection sizes.
const (
	compareDefaultCategories = 3
	compareDefaultRegions    = 2
)

type explorerService struct {
	cache datasetCache
}

func NewExplorerService(cache datasetCache) *explorerService {
	return &explorerService{cache: cache}
}

// Chart builds a custom chart from the chart-builder controls.
func (s *explorerService) Chart(_ context.Context, sessionID string, req dto.ExplorerChartRequest) (charts.Chart, error) {
	if !slices.Contains(explorerChartTypes, req.ChartType) {
		return charts.Chart{}, errs.NewValidationError(fmt.Sprintf(
			"invalid chartType %q: expected one of %s", req.ChartType, strings.Join(explorerChartTypes, ", ")))
	}
	x, err := frame.ParseDimension(req.XAxis)
	if err != nil {
		return charts.Chart{}, errs.NewValidationError(fmt.Sprintf("invalid xAxis: %v", err))
	}
	y, err := frame.ParseMeasure(req.YAxis)
	if err != nil {
		return charts.Chart{}, errs.NewValidationError(fmt.Sprintf("invalid yAxis: %v", err))
	}
	color, err := parseColorBy(req.ColorBy)
	if err != nil {
		return charts.Chart{}, err
	}

	ds, err := workingSet(s.cache, sessionID)
	if err != nil {
		return charts.Chart{}, err
	}
	records := ds.Records
	xs, ys := string(x), string(y)

	switch req.ChartType {
	case dto.ExplorerBar:
		title := fmt.Sprintf("%s by %s", ys, xs)
		if color != "" && color != x {
			return charts.Stacked("explorer", title, xs, ys, frame.PivotSum(records, x, color, y)), nil
		}
		return charts.New("explorer", charts.KindBar, title, xs, ys,
			charts.FromTotals(ys, frame.Aggregate(records, x), y)), nil

	case dto.ExplorerLine:
		return charts.New("explorer", charts.KindLine, ys+" Trend", xs, ys,
			charts.FromTotals(ys, frame.Aggregate(records, x), y)), nil

	case dto.ExplorerScatter:
		return charts.New("explorer", charts.KindScatter, fmt.Sprintf("%s vs %s", ys, xs), xs, ys,
			scatterSeries(records, x, y, color)...), nil

	case dto.ExplorerBox, dto.ExplorerViolin:
		kind := charts.KindBox
		if req.ChartType == dto.ExplorerViolin {
			kind = charts.KindViolin
		}
		dims := []frame.Dimension{x}
		if color != "" && color != x {
			dims = append(dims, color)
		}
		var boxes []frame.BoxStats
		for _, g := range frame.GroupBy(records, dims...) {
			boxes = append(boxes, frame.Box(strings.Join(g.Keys, " / "), frame.Values(g.Rows, y)))
		}
		return charts.Distribution("explorer", kind, fmt.Sprintf("%s Distribution by %s", ys, xs), xs, ys, boxes), nil
	}

	return charts.Histogram("explorer", ys+" Distribution", ys,
		frame.Histogram(frame.Values(records, y), dto.HistogramBins)), nil
}

func parseColorBy(s string) (frame.Dimension, error) {
	switch s {
	case "", dto.ColorByNone:
		return "", nil
	case string(frame.Category), string(frame.Region):
		return frame.Dimension(s), nil
	}
	return "", errs.NewValidationError(fmt.Sprintf("invalid colorBy %q: expected None, Category or Region", s))
}

func scatterSeries(records []models.Record, x frame.Dimension, y frame.Measure, color frame.Dimension) []charts.Series {
	if color == "" {
		points := make([]charts.Point, len(records))
		for i, r := range records {
			points[i] = charts.Point{Label: x.Of(r), Y: y.Of(r)}
		}
		return []charts.Series{{Name: string(y), Points: points}}
	}
	var series []charts.Series
	for _, g := range frame.GroupBy(records, color) {
		points := make([]charts.Point, len(g.Rows))
		for i, r := range g.Rows {
			points[i] = charts.Point{Label: x.Of(r), Y: y.Of(r)}
		}
		series = append(series, charts.Series{Name: g.Key(), Points: points})
	}
	return series
}

// Query narrows the working set to the requested Sales and Units ranges and
// summarizes the matching rows.
func (s *explorerService) Query(_ context.Context, sessionID string, req dto.ExplorerQueryRequest) (dto.ExplorerQueryResult, error) {
	ds, err := workingSet(s.cache, sessionID)
	if err != nil {
		return dto.ExplorerQueryResult{}, err
	}
	records := ds.Records
	if len(records) == 0 {
		return dto.ExplorerQueryResult{Rows: []models.Record{}, Warning: emptyFilterWarning}, nil
	}

	salesBounds := bounds(frame.Values(records, frame.Sales))
	unitsBounds := bounds(frame.Values(records, frame.Units))
	sales, err := resolveRange("sales", req.Sales, salesBounds)
	if err != nil {
		return dto.ExplorerQueryResult{}, err
	}
	units, err := resolveRange("units", req.Units, unitsBounds)
	if err != nil {
		return dto.ExplorerQueryResult{}, err
	}

	matched := frame.Filter(records, func(r models.Record) bool {
		return r.Sales >= sales.Min && r.Sales <= sales.Max &&
			float64(r.Units) >= units.Min && float64(r.Units) <= units.Max
	})

	summary := make([]frame.Summary, 0, len(frame.Measures))
	for _, m := range frame.Measures {
		summary = append(summary, frame.Describe(string(m), frame.Values(matched, m)))
	}

	return dto.ExplorerQueryResult{
		Rows:    frame.SortRecordsByDateDesc(matched),
		Matched: len(matched),
		Total:   len(records),
		Message: fmt.Sprintf("Showing %s of %s records",
			humanize.Comma(int64(len(matched))), humanize.Comma(int64(len(records)))),
		SalesRange: salesBounds,
		UnitsRange: unitsBounds,
		Stats:      quickStats(matched, records),
		Summary:    summary,
	}, nil
}

func bounds(x []float64) dto.Range {
	r := dto.Range{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, v := range x {
		r.Min = math.Min(r.Min, v)
		r.Max = math.Max(r.Max, v)
	}
	return r
}

func resolveRange(name string, req *dto.Range, b dto.Range) (dto.Range, error) {
	if req == nil {
		return b, nil
	}
	if req.Min > req.Max {
		return dto.Range{}, errs.NewValidationError(fmt.Sprintf("%s range minimum must not exceed maximum", name))
	}
	if req.Min < b.Min || req.Max > b.Max {
		return dto.Range{}, errs.NewValidationError(fmt.Sprintf(
			"%s range %g to %g is outside the available range %g to %g", name, req.Min, req.Max, b.Min, b.Max))
	}
	return *req, nil
}

// quickStats reports the record count and per-measure averages of subset,
// each with its percentage difference from all.
func quickStats(subset, all []models.Record) []dto.QuickStat {
	count := float64(len(subset))
	stats := []dto.QuickStat{{
		Label: "Records",
		Value: &count,
		Delta: helpers.Ptr(count/float64(len(all))*100 - 100),
	}}
	for _, m := range frame.Measures {
		sub, _ := frame.MeanStd(frame.Values(subset, m))
		whole, _ := frame.MeanStd(frame.Values(all, m))
		stat := dto.QuickStat{Label: "Avg " + string(m), Value: sub}
		if sub != nil && whole != nil && *whole != 0 {
			stat.Delta = helpers.Finite((*sub / *whole)*100 - 100)
		}
		stats = append(stats, stat)
	}
	return stats
}

// Compare tabulates the selected categories or regions side by side.
func (s *explorerService) Compare(_ context.Context, sessionID string, req dto.CompareRequest) (dto.CompareResult, error) {
	var dim frame.Dimension
	switch req.By {
	case string(frame.Category), string(frame.Region):
		dim = frame.Dimension(req.By)
	default:
		return dto.CompareResult{}, errs.NewValidationError(fmt.Sprintf("invalid by %q: expected Category or Region", req.By))
	}

	ds, err := workingSet(s.cache, sessionID)
	if err != nil {
		return dto.CompareResult{}, err
	}
	res := dto.CompareResult{By: req.By}
	if ds.Len() == 0 {
		res.Warning = emptyFilterWarning
		return res, nil
	}

	res.Options = ds.Categories()
	n := compareDefaultCategories
	if dim == frame.Region {
		res.Options = ds.Regions()
		n = compareDefaultRegions
	}

	if req.Items == nil {
		res.Selected = slices.Clone(res.Options[:min(n, len(res.Options))])
	} else {
		for _, item := range *req.Items {
			if !slices.Contains(res.Options, item) {
				return dto.CompareResult{}, errs.NewValidationError(fmt.Sprintf("%q is not an available %s", item, strings.ToLower(req.By)))
			}
		}
		res.Selected = slices.Clone(*req.Items)
	}
	if len(res.Selected) == 0 {
		res.Message = fmt.Sprintf("Please select at least one %s to compare", strings.ToLower(req.By))
		return res, nil
	}

	subset := frame.Filter(ds.Records, func(r models.Record) bool {
		return slices.Contains(res.Selected, dim.Of(r))
	})
	totals := frame.Aggregate(subset, dim)
	labels := make([]string, len(totals))
	avgs := make([]float64, len(totals))
	for i, t := range totals {
		res.Rows = append(res.Rows, dto.ComparisonRow{
			Key:            t.Key,
			TotalSales:     t.Sales,
			AvgSale:        t.MeanSales,
			Transactions:   t.Count,
			TotalUnits:     t.Units,
			TotalCustomers: t.Customers,
		})
		labels[i] = t.Key
		avgs[i] = helpers.ValueOr(t.MeanSales, 0)
	}
	res.Charts = []charts.Chart{
		charts.New("compare-total-sales", charts.KindBar, "Total Sales Comparison by "+req.By, req.By, "Total Sales",
			charts.FromTotals("Total Sales", totals, frame.Sales)),
		charts.New("compare-avg-sale", charts.KindBar, "Average Sale Comparison by "+req.By, req.By, "Avg Sale",
			charts.Labeled("Avg Sale", labels, avgs)),
	}
	return res, nil
}
