package services

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/GregMSThompson/sales-dashboard/internal/charts"
	"github.com/GregMSThompson/sales-dashboard/internal/dataset"
	"github.com/GregMSThompson/sales-dashboard/internal/dto"
	"github.com/GregMSThompson/sales-dashboard/internal/errs"
	"github.com/GregMSThompson/sales-dashboard/internal/frame"
	"github.com/GregMSThompson/sales-dashboard/internal/metrics"
	"github.com/GregMSThompson/sales-dashboard/internal/models"
	"github.com/GregMSThompson/sales-dashboard/internal/report"
	"github.com/GregMSThompson/sales-dashboard/pkg/logger"
)

const (
	emptyFilterWarning  = "No data matches the selected filters. Adjust the date range, categories or regions."
	movingAverageWindow = 7
)

// sessionStore persists per-session filter state.
type sessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.SessionState, error)
	Save(ctx context.Context, state *models.SessionState) error
}

// sampleSource supplies the default dataset when a session has none.
type sampleSource interface {
	Sample() *models.Dataset
}

type dashboardService struct {
	sessions sessionStore
	cache    datasetCache
	samples  sampleSource
}

func NewDashboardService(sessions sessionStore, cache datasetCache, samples sampleSource) *dashboardService {
	return &dashboardService{sessions: sessions, cache: cache, samples: samples}
}

// Render runs one render cycle: reconcile the persisted filters against
// the loaded dataset, apply the widget values, filter, and build the plan.
func (s *dashboardService) Render(ctx context.Context, sessionID string, req dto.RenderRequest) (dto.RenderPlan, error) {
	log := logger.FromContext(ctx)
	started := time.Now()

	ds := s.cache.Dataset(sessionID)
	if ds == nil {
		ds = s.samples.Sample()
		s.cache.SetDataset(sessionID, ds)
		metrics.DatasetLoaded("sample", nil)
	}

	prev, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return dto.RenderPlan{}, err
	}
	if prev == nil {
		prev = &models.SessionState{SessionID: sessionID}
	}

	sig := ds.Signature()
	state, changed := ReconcileFilters(sig, *prev)
	state.SessionID = sessionID
	if err := s.sessions.Save(ctx, &state); err != nil {
		return dto.RenderPlan{}, err
	}
	if err := applyWidgets(sig, &state, req); err != nil {
		return dto.RenderPlan{}, err
	}
	if err := s.sessions.Save(ctx, &state); err != nil {
		return dto.RenderPlan{}, err
	}

	filtered := ds.WithRecords(state.Filters.Apply(ds.Records))
	s.cache.SetFiltered(sessionID, filtered)

	plan := dto.RenderPlan{
		Dataset: dto.NewDatasetInfo(ds),
		Widgets: widgetOptions(sig, *state.Filters),
		Filters: state.Filters.Clone(),
		Reset:   changed,
		Rows:    filtered.Len(),
	}
	empty := filtered.Len() == 0
	metrics.ObserveRender(started, changed, empty)
	if changed {
		log.Info("dataset changed, filters reset", "source_id", sig.SourceID)
	}
	if empty {
		plan.Warning = emptyFilterWarning
		return plan, nil
	}

	plan.Metrics = keyMetrics(filtered.Records, ds.Records)
	plan.Charts = dashboardCharts(filtered.Records)
	plan.Preview = frame.Head(frame.SortRecordsByDateDesc(filtered.Records), dto.PreviewRows)

	if logger.IsDebugEnabled(ctx) {
		log.Debug("render cycle completed", "rows", plan.Rows, "duration", time.Since(started))
	}
	return plan, nil
}

// ExportCSV writes the session's filtered rows. An empty selection yields
// just the header row.
func (s *dashboardService) ExportCSV(_ context.Context, sessionID string, w io.Writer) error {
	ds, err := workingSet(s.cache, sessionID)
	if err != nil {
		return err
	}
	return dataset.WriteCSV(w, ds.Records)
}

// Report writes the XLSX report over the session's filtered data. An empty
// selection has nothing to summarize and is rejected.
func (s *dashboardService) Report(_ context.Context, sessionID string, w io.Writer) error {
	ds, err := workingSet(s.cache, sessionID)
	if err != nil {
		return err
	}
	if ds.Len() == 0 {
		return errs.NewValidationError(emptyFilterWarning)
	}
	return report.Write(w, ds.Records)
}

// ChartPNG renders one of the main dashboard charts over the session's
// filtered data.
func (s *dashboardService) ChartPNG(_ context.Context, sessionID, chartID string, w io.Writer) error {
	ds, err := workingSet(s.cache, sessionID)
	if err != nil {
		return err
	}
	if ds.Len() == 0 {
		return errs.NewValidationError(emptyFilterWarning)
	}
	for _, c := range dashboardCharts(ds.Records) {
		if c.ID == chartID {
			return charts.RenderPNG(w, c)
		}
	}
	return errs.NewNotFoundError(fmt.Sprintf("chart %q not found", chartID))
}

// keyMetrics computes the four headline figures. Percent deltas compare the
// filtered rows against the whole loaded dataset.
func keyMetrics(filtered, all []models.Record) []dto.Metric {
	sel, whole := frame.Total(filtered), frame.Total(all)

	avg, std := "n/a", "n/a"
	var avgRaw float64
	if sel.MeanSales != nil {
		avgRaw = *sel.MeanSales
		avg = "$" + humanize.FormatFloat("#,###.##", avgRaw)
	}
	if sel.StdSales != nil {
		std = fmt.Sprintf("$%.2f", *sel.StdSales)
	}

	return []dto.Metric{
		{
			Label: "Total Sales",
			Value: "$" + humanize.Comma(int64(math.Round(sel.Sales))),
			Delta: percentOf(sel.Sales, whole.Sales) + " of total",
			Raw:   sel.Sales,
		},
		{
			Label: "Units Sold",
			Value: humanize.Comma(int64(sel.Units)),
			Delta: fmt.Sprintf("%d transactions", sel.Count),
			Raw:   sel.Units,
		},
		{
			Label: "Average Sale",
			Value: avg,
			Delta: "±" + std + " std",
			Raw:   avgRaw,
		},
		{
			Label: "Total Customers",
			Value: humanize.Comma(int64(sel.Customers)),
			Delta: percentOf(sel.Customers, whole.Customers) + " of total",
			Raw:   sel.Customers,
		},
	}
}

func percentOf(part, whole float64) string {
	if whole == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", part/whole*100)
}

func dashboardCharts(records []models.Record) []charts.Chart {
	daily := frame.Aggregate(records, frame.Date)
	dates := make([]string, len(daily))
	dailySales := make([]float64, len(daily))
	for i, d := range daily {
		dates[i], dailySales[i] = d.Key, d.Sales
	}

	byCategory := frame.Aggregate(records, frame.Category)
	byRegion := frame.Aggregate(records, frame.Region)
	bySales := func(t frame.Totals) float64 { return t.Sales }
	frame.SortBy(byCategory, bySales, true)
	frame.SortBy(byRegion, bySales, true)

	return []charts.Chart{
		charts.New(dto.ChartDailySales, charts.KindLine, "Daily Sales Trend", "Date", "Total Sales ($)",
			charts.Labeled("Sales", dates, dailySales)),
		charts.New(dto.ChartMovingAverage, charts.KindLine, "Sales with 7-Day Moving Average", "Date", "Sales ($)",
			charts.Labeled("Daily Sales", dates, dailySales),
			charts.LabeledOptional("7-Day Moving Average", dates, frame.RollingMean(dailySales, movingAverageWindow))),
		charts.New(dto.ChartCategorySales, charts.KindBar, "Total Sales by Category", "Category", "Total Sales ($)",
			charts.FromTotals("Sales", byCategory, frame.Sales)),
		charts.New(dto.ChartCategoryShare, charts.KindPie, "Sales Distribution by Category", "", "",
			charts.FromTotals("Sales", byCategory, frame.Sales)),
		charts.New(dto.ChartRegionSales, charts.KindBar, "Total Sales by Region", "Region", "Total Sales ($)",
			charts.FromTotals("Sales", byRegion, frame.Sales)),
		charts.Stacked(dto.ChartRegionCategory, "Category Performance by Region", "Region", "Total Sales ($)",
			frame.PivotSum(records, frame.Region, frame.Category, frame.Sales)),
		charts.Scatter(dto.ChartSalesVsUnits, "Sales vs Units (bubble size = customers)",
			frame.Aggregate(records, frame.Category, frame.Region)),
	}
}
