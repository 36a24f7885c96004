package services

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/GregMSThompson/sales-dashboard/internal/charts"
	"github.com/GregMSThompson/sales-dashboard/internal/dto"
	"github.com/GregMSThompson/sales-dashboard/internal/errs"
	"github.com/GregMSThompson/sales-dashboard/pkg/helpers"
)

func newTestExplorer() *explorerService {
	cache := newFakeCache()
	cache.SetDataset("s1", smallDataset("a"))
	return NewExplorerService(cache)
}

func TestExplorerChart(t *testing.T) {
	svc := newTestExplorer()
	ctx := helpers.TestCtx()

	cases := []struct {
		req  dto.ExplorerChartRequest
		kind charts.Kind
	}{
		{dto.ExplorerChartRequest{ChartType: "bar", XAxis: "Category", YAxis: "Sales"}, charts.KindBar},
		{dto.ExplorerChartRequest{ChartType: "bar", XAxis: "Category", YAxis: "Sales", ColorBy: "Region"}, charts.KindStackedBar},
		{dto.ExplorerChartRequest{ChartType: "bar", XAxis: "Region", YAxis: "Units", ColorBy: "Region"}, charts.KindBar},
		{dto.ExplorerChartRequest{ChartType: "line", XAxis: "Date", YAxis: "Sales"}, charts.KindLine},
		{dto.ExplorerChartRequest{ChartType: "scatter", XAxis: "Region", YAxis: "Customers", ColorBy: "Category"}, charts.KindScatter},
		{dto.ExplorerChartRequest{ChartType: "box", XAxis: "Category", YAxis: "Sales"}, charts.KindBox},
		{dto.ExplorerChartRequest{ChartType: "violin", XAxis: "Category", YAxis: "Sales", ColorBy: "None"}, charts.KindViolin},
		{dto.ExplorerChartRequest{ChartType: "histogram", XAxis: "Category", YAxis: "Sales"}, charts.KindHistogram},
	}
	for _, tc := range cases {
		t.Run(tc.req.ChartType+"/"+tc.req.ColorBy, func(t *testing.T) {
			c, err := svc.Chart(ctx, "s1", tc.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Kind != tc.kind {
				t.Fatalf("expected %s, got %s", tc.kind, c.Kind)
			}
		})
	}

	hist, _ := svc.Chart(ctx, "s1", dto.ExplorerChartRequest{ChartType: "histogram", XAxis: "Date", YAxis: "Sales"})
	if len(hist.Bins) != dto.HistogramBins {
		t.Fatalf("expected %d bins, got %d", dto.HistogramBins, len(hist.Bins))
	}
}

func TestExplorerChartValidation(t *testing.T) {
	svc := newTestExplorer()
	bad := []dto.ExplorerChartRequest{
		{ChartType: "area", XAxis: "Category", YAxis: "Sales"},
		{ChartType: "bar", XAxis: "Sales", YAxis: "Sales"},
		{ChartType: "bar", XAxis: "Category", YAxis: "Region"},
		{ChartType: "bar", XAxis: "Category", YAxis: "Sales", ColorBy: "Date"},
	}
	for _, req := range bad {
		_, err := svc.Chart(helpers.TestCtx(), "s1", req)
		var validation *errs.ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("%+v: expected ValidationError, got %T (%v)", req, err, err)
		}
	}
}

func TestExplorerQuery(t *testing.T) {
	svc := newTestExplorer()

	res, err := svc.Query(helpers.TestCtx(), "s1", dto.ExplorerQueryRequest{
		Sales: &dto.Range{Min: 100, Max: 300},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Matched != 3 || res.Total != 4 || res.Message != "Showing 3 of 4 records" {
		t.Fatalf("unexpected counts %d/%d %q", res.Matched, res.Total, res.Message)
	}
	if res.Rows[0].Date != "2025-01-03" {
		t.Fatalf("expected newest first, got %s", res.Rows[0].Date)
	}
	if diff := cmp.Diff(dto.Range{Min: 50, Max: 300}, res.SalesRange); diff != "" {
		t.Fatalf("sales bounds mismatch (-want +got):\n%s", diff)
	}
	if *res.Stats[0].Delta != -25 {
		t.Fatalf("expected record delta -25%%, got %v", *res.Stats[0].Delta)
	}
	// avg sales 550/3 against 600/4
	if got, want := *res.Stats[1].Delta, (550.0/3)/150*100-100; !approxEqual(got, want) {
		t.Fatalf("expected avg sales delta %v, got %v", want, got)
	}
	if len(res.Summary) != 3 || res.Summary[0].Count != 3 || *res.Summary[0].Q50 != 150 {
		t.Fatalf("unexpected summary %+v", res.Summary[0])
	}
}

func TestExplorerQueryOutOfRange(t *testing.T) {
	svc := newTestExplorer()

	_, err := svc.Query(helpers.TestCtx(), "s1", dto.ExplorerQueryRequest{Units: &dto.Range{Min: 0, Max: 5}})

	var validation *errs.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %T (%v)", err, err)
	}
}

func TestExplorerCompare(t *testing.T) {
	svc := newTestExplorer()
	ctx := helpers.TestCtx()

	res, err := svc.Compare(ctx, "s1", dto.CompareRequest{By: "Region"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"North", "South"}, res.Selected); diff != "" {
		t.Fatalf("default selection mismatch (-want +got):\n%s", diff)
	}
	if len(res.Rows) != 2 || res.Rows[0].Key != "North" || res.Rows[0].Transactions != 2 || res.Rows[0].TotalSales != 400 {
		t.Fatalf("unexpected rows %+v", res.Rows)
	}
	if len(res.Charts) != 2 {
		t.Fatalf("expected 2 charts, got %d", len(res.Charts))
	}

	res, err = svc.Compare(ctx, "s1", dto.CompareRequest{By: "Category", Items: strs()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Message == "" || res.Rows != nil {
		t.Fatalf("expected an info message and no table, got %+v", res)
	}

	_, err = svc.Compare(ctx, "s1", dto.CompareRequest{By: "Category", Items: strs("Toys")})
	var validation *errs.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %T (%v)", err, err)
	}
}
