package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/sales-dashboard/internal/dto"
	"github.com/GregMSThompson/sales-dashboard/internal/middleware"
	"github.com/GregMSThompson/sales-dashboard/internal/response"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pngContentType  = "image/png"

	exportFilename = "dashboard_data.csv"
	reportFilename = "sales_report.xlsx"
)

type dashboardService interface {
	Render(ctx context.Context, sessionID string, req dto.RenderRequest) (dto.RenderPlan, error)
	ExportCSV(ctx context.Context, sessionID string, w io.Writer) error
	Report(ctx context.Context, sessionID string, w io.Writer) error
	ChartPNG(ctx context.Context, sessionID, chartID string, w io.Writer) error
}

type dashboardHandlers struct {
	ResponseHandler response.ResponseHandler
	DashboardSvc    dashboardService
}

func NewDashboardHandlers(deps *Deps) *dashboardHandlers {
	return &dashboardHandlers{
		ResponseHandler: deps.ResponseHandler,
		DashboardSvc:    deps.DashboardSvc,
	}
}

func (h *dashboardHandlers) DashboardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/render", h.Render)
	r.Get("/export.csv", h.ExportCSV)
	r.Get("/report.xlsx", h.Report)
	r.Get("/charts/{chartId}.png", h.ChartPNG)
	return r
}

// Render runs one render cycle. The body is optional: widgets left out keep
// their previous values.
func (h *dashboardHandlers) Render(w http.ResponseWriter, r *http.Request) {
	var req dto.RenderRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	sid := middleware.SessionID(r.Context())
	plan, err := h.DashboardSvc.Render(r.Context(), sid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, plan)
}

func (h *dashboardHandlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SessionID(r.Context())
	h.ResponseHandler.WriteFile(w, r, csvContentType, exportFilename, func(out io.Writer) error {
		return h.DashboardSvc.ExportCSV(r.Context(), sid, out)
	})
}

func (h *dashboardHandlers) Report(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SessionID(r.Context())
	h.ResponseHandler.WriteFile(w, r, xlsxContentType, reportFilename, func(out io.Writer) error {
		return h.DashboardSvc.Report(r.Context(), sid, out)
	})
}

func (h *dashboardHandlers) ChartPNG(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SessionID(r.Context())
	chartID := chi.URLParam(r, "chartId")
	h.ResponseHandler.WriteFile(w, r, pngContentType, "", func(out io.Writer) error {
		return h.DashboardSvc.ChartPNG(r.Context(), sid, chartID, out)
	})
}
