package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/GregMSThompson/sales-dashboard/internal/errs"
	"github.com/GregMSThompson/sales-dashboard/pkg/logger"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// SchemaDetails lists the columns an upload is missing.
type SchemaDetails struct {
	Missing  []string `json:"missing"`
	Expected []string `json:"expected"`
}

type CoercionDetails struct {
	Column string `json:"column"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	h.writeError(w, r, status, ErrorResponse{Code: code, Message: message})
}

func (h *responseHandler) writeError(w http.ResponseWriter, r *http.Request, status int, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		// Use context logger if encoding fails
		log := logger.FromContext(r.Context())
		log.Error("failed to encode error response", "error", err, "status", status, "code", resp.Code)
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	switch e := err.(type) {
	case *errs.NotFoundError:
		log.Warn("resource not found", "error", e.Message)
		h.WriteError(w, r, http.StatusNotFound, "not_found", e.Message)

	case *errs.ValidationError:
		log.Warn("validation failed", "error", e.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", e.Message)

	case *errs.SchemaError:
		log.Warn("upload schema rejected", "missing", e.Missing)
		h.writeError(w, r, http.StatusUnprocessableEntity, ErrorResponse{
			Code:    "schema_error",
			Message: e.Message,
			Details: SchemaDetails{Missing: e.Missing, Expected: e.Expected},
		})

	case *errs.CoercionError:
		log.Warn("column coercion failed", "column", e.Column, "error", e.Err)
		h.writeError(w, r, http.StatusUnprocessableEntity, ErrorResponse{
			Code:    "type_coercion",
			Message: e.Message,
			Details: CoercionDetails{Column: e.Column},
		})

	case *errs.EmptyResultError:
		log.Warn("no usable rows", "error", e.Message)
		h.WriteError(w, r, http.StatusUnprocessableEntity, "empty_result", e.Message)

	case *errs.DatabaseError:
		log.Error("database error",
			"operation", e.Operation,
			"error", e.Message,
			"cause", e.Err)
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An error occurred")

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An unexpected error occurred")
	}
}
