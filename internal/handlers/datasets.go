package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/sales-dashboard/internal/dto"
	"github.com/GregMSThompson/sales-dashboard/internal/errs"
	"github.com/GregMSThompson/sales-dashboard/internal/middleware"
	"github.com/GregMSThompson/sales-dashboard/internal/response"
)

const uploadField = "file"

type datasetService interface {
	LoadSample(ctx context.Context, sessionID string) (dto.DatasetInfo, error)
	LoadUpload(ctx context.Context, sessionID, filename string, data []byte) (dto.DatasetInfo, error)
	Current(ctx context.Context, sessionID string) (dto.DatasetInfo, error)
}

type datasetHandlers struct {
	ResponseHandler response.ResponseHandler
	DatasetSvc      datasetService
	MaxUploadBytes  int64
}

func NewDatasetHandlers(deps *Deps) *datasetHandlers {
	return &datasetHandlers{
		ResponseHandler: deps.ResponseHandler,
		DatasetSvc:      deps.DatasetSvc,
		MaxUploadBytes:  deps.MaxUploadBytes,
	}
}

func (h *datasetHandlers) DatasetRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/sample", h.LoadSample)
	r.Post("/upload", h.Upload)
	r.Get("/current", h.Current)
	return r
}

func (h *datasetHandlers) LoadSample(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SessionID(r.Context())
	info, err := h.DatasetSvc.LoadSample(r.Context(), sid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, info)
}

// Upload accepts a multipart form with the data file in the "file" field.
func (h *datasetHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	if h.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, h.uploadError(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, h.uploadError(err))
		return
	}

	sid := middleware.SessionID(r.Context())
	info, err := h.DatasetSvc.LoadUpload(r.Context(), sid, header.Filename, data)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, info)
}

func (h *datasetHandlers) uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return errs.NewValidationError(fmt.Sprintf("upload exceeds the %s limit", humanize.IBytes(uint64(tooLarge.Limit))))
	case errors.Is(err, http.ErrMissingFile):
		return errs.NewValidationError(fmt.Sprintf("missing %q file field", uploadField))
	}
	return errs.NewValidationError("invalid upload: " + err.Error())
}

func (h *datasetHandlers) Current(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SessionID(r.Context())
	info, err := h.DatasetSvc.Current(r.Context(), sid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, info)
}
