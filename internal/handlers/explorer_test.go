package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/GregMSThompson/sales-dashboard/internal/charts"
	"github.com/GregMSThompson/sales-dashboard/internal/dto"
	"github.com/GregMSThompson/sales-dashboard/internal/errs"
)

// --- Stub services ---

type stubExplorerService struct {
	err         error
	lastChart   dto.ExplorerChartRequest
	lastQuery   dto.ExplorerQueryRequest
	lastCompare dto.CompareRequest
}

func (s *stubExplorerService) Chart(_ context.Context, _ string, req dto.ExplorerChartRequest) (charts.Chart, error) {
	s.lastChart = req
	return charts.Chart{ID: "explorer", Kind: charts.KindBar}, s.err
}

func (s *stubExplorerService) Query(_ context.Context, _ string, req dto.ExplorerQueryRequest) (dto.ExplorerQueryResult, error) {
	s.lastQuery = req
	return dto.ExplorerQueryResult{}, s.err
}

func (s *stubExplorerService) Compare(_ context.Context, _ string, req dto.CompareRequest) (dto.CompareResult, error) {
	s.lastCompare = req
	return dto.CompareResult{}, s.err
}

type stubAnalyticsService struct {
	res dto.AnalyticsResult
	err error
}

func (s *stubAnalyticsService) Analyze(_ context.Context, _ string) (dto.AnalyticsResult, error) {
	return s.res, s.err
}

// --- Tests ---

func TestExplorerChart_DecodesRequest(t *testing.T) {
	svc := &stubExplorerService{}
	resp := &stubResponseHandler{}
	h := NewExplorerHandlers(&Deps{ResponseHandler: resp, ExplorerSvc: svc})

	body := `{"chartType":"bar","xAxis":"Category","yAxis":"Sales","colorBy":"Region"}`
	h.Chart(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/explorer/chart", strings.NewReader(body)))

	want := dto.ExplorerChartRequest{ChartType: "bar", XAxis: "Category", YAxis: "Sales", ColorBy: "Region"}
	if diff := cmp.Diff(want, svc.lastChart); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
	if !resp.writeSuccessCalled {
		t.Fatal("expected WriteSuccess")
	}
}

func TestExplorerQuery_DecodesRanges(t *testing.T) {
	svc := &stubExplorerService{}
	resp := &stubResponseHandler{}
	h := NewExplorerHandlers(&Deps{ResponseHandler: resp, ExplorerSvc: svc})

	body := `{"sales":{"min":100,"max":300}}`
	h.Query(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/explorer/query", strings.NewReader(body)))

	if svc.lastQuery.Sales == nil || *svc.lastQuery.Sales != (dto.Range{Min: 100, Max: 300}) || svc.lastQuery.Units != nil {
		t.Fatalf("unexpected query %+v", svc.lastQuery)
	}
}

func TestExplorerCompare_ServiceError(t *testing.T) {
	svc := &stubExplorerService{err: errs.NewValidationError("invalid by")}
	resp := &stubResponseHandler{}
	h := NewExplorerHandlers(&Deps{ResponseHandler: resp, ExplorerSvc: svc})

	h.Compare(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/explorer/compare", strings.NewReader(`{"by":"Date","items":[]}`)))

	if svc.lastCompare.Items == nil || len(*svc.lastCompare.Items) != 0 {
		t.Fatalf("expected an explicit empty selection, got %+v", svc.lastCompare.Items)
	}
	var validation *errs.ValidationError
	if !errors.As(resp.handleError, &validation) {
		t.Fatalf("expected ValidationError, got %T", resp.handleError)
	}
}

func TestAnalyze_OK(t *testing.T) {
	svc := &stubAnalyticsService{res: dto.AnalyticsResult{Rows: 4}}
	resp := &stubResponseHandler{}
	h := NewAnalyticsHandlers(&Deps{ResponseHandler: resp, AnalyticsSvc: svc})

	h.Analyze(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/analytics", nil))

	if !resp.writeSuccessCalled || resp.writeSuccessData.(dto.AnalyticsResult).Rows != 4 {
		t.Fatalf("unexpected response %+v", resp.writeSuccessData)
	}
}
