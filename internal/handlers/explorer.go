package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/sales-dashboard/internal/charts"
	"github.com/GregMSThompson/sales-dashboard/internal/dto"
	"github.com/GregMSThompson/sales-dashboard/internal/middleware"
	"github.com/GregMSThompson/sales-dashboard/internal/response"
)

type explorerService interface {
	Chart(ctx context.Context, sessionID string, req dto.ExplorerChartRequest) (charts.Chart, error)
	Query(ctx context.Context, sessionID string, req dto.ExplorerQueryRequest) (dto.ExplorerQueryResult, error)
	Compare(ctx context.Context, sessionID string, req dto.CompareRequest) (dto.CompareResult, error)
}

type explorerHandlers struct {
	ResponseHandler response.ResponseHandler
	ExplorerSvc     explorerService
}

func NewExplorerHandlers(deps *Deps) *explorerHandlers {
	return &explorerHandlers{
		ResponseHandler: deps.ResponseHandler,
		ExplorerSvc:     deps.ExplorerSvc,
	}
}

func (h *explorerHandlers) ExplorerRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/chart", h.Chart)
	r.Post("/query", h.Query)
	r.Post("/compare", h.Compare)
	return r
}

func (h *explorerHandlers) Chart(w http.ResponseWriter, r *http.Request) {
	var req dto.ExplorerChartRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	sid := middleware.SessionID(r.Context())
	chart, err := h.ExplorerSvc.Chart(r.Context(), sid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, chart)
}

func (h *explorerHandlers) Query(w http.ResponseWriter, r *http.Request) {
	var req dto.ExplorerQueryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	sid := middleware.SessionID(r.Context())
	res, err := h.ExplorerSvc.Query(r.Context(), sid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}

func (h *explorerHandlers) Compare(w http.ResponseWriter, r *http.Request) {
	var req dto.CompareRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	sid := middleware.SessionID(r.Context())
	res, err := h.ExplorerSvc.Compare(r.Context(), sid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}
