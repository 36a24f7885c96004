package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/sales-dashboard/internal/dto"
	"github.com/GregMSThompson/sales-dashboard/internal/middleware"
	"github.com/GregMSThompson/sales-dashboard/internal/response"
)

type analyticsService interface {
	Analyze(ctx context.Context, sessionID string) (dto.AnalyticsResult, error)
}

type analyticsHandlers struct {
	ResponseHandler response.ResponseHandler
	AnalyticsSvc    analyticsService
}

func NewAnalyticsHandlers(deps *Deps) *analyticsHandlers {
	return &analyticsHandlers{
		ResponseHandler: deps.ResponseHandler,
		AnalyticsSvc:    deps.AnalyticsSvc,
	}
}

func (h *analyticsHandlers) AnalyticsRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Analyze)
	return r
}

func (h *analyticsHandlers) Analyze(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SessionID(r.Context())
	res, err := h.AnalyticsSvc.Analyze(r.Context(), sid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}
