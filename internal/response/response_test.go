package response

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/GregMSThompson/sales-dashboard/internal/errs"
	"github.com/GregMSThompson/sales-dashboard/pkg/helpers"
	"github.com/GregMSThompson/sales-dashboard/pkg/logger"
)

func newTestHandler() *responseHandler {
	return New(slog.New(logger.NewTestHandler(slog.LevelDebug)))
}

func newTestRequest() *http.Request {
	return httptest.NewRequest(http.MethodGet, "/", nil).WithContext(helpers.TestCtx())
}

func TestHandleErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", errs.NewNotFoundError("no data"), http.StatusNotFound, "not_found"},
		{"validation", errs.NewValidationError("bad"), http.StatusBadRequest, "invalid_input"},
		{"schema", errs.NewSchemaError([]string{"Region"}, []string{"Date", "Region"}), http.StatusUnprocessableEntity, "schema_error"},
		{"coercion", errs.NewCoercionError("Date", errors.New("nope")), http.StatusUnprocessableEntity, "type_coercion"},
		{"empty", errs.NewEmptyResultError("no rows"), http.StatusUnprocessableEntity, "empty_result"},
		{"database", errs.NewDatabaseError("read", "failed", errors.New("x")), http.StatusInternalServerError, "internal_error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			newTestHandler().HandleError(rr, newTestRequest(), tt.err)

			if rr.Code != tt.status {
				t.Fatalf("status = %d, want %d", rr.Code, tt.status)
			}
			var body ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.code {
				t.Fatalf("code = %q, want %q", body.Code, tt.code)
			}
		})
	}
}

func TestSchemaErrorDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestHandler().HandleError(rr, newTestRequest(), errs.NewSchemaError([]string{"Region"}, []string{"Date", "Region"}))

	var body struct {
		Details SchemaDetails `json:"details"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := SchemaDetails{Missing: []string{"Region"}, Expected: []string{"Date", "Region"}}
	if diff := cmp.Diff(want, body.Details); diff != "" {
		t.Fatalf("details mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteSuccessEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestHandler().WriteSuccess(rr, newTestRequest(), http.StatusCreated, map[string]int{"rows": 3})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Body.String(); got != `{"success":true,"data":{"rows":3}}`+"\n" {
		t.Fatalf("body = %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestHandler().WriteFile(rr, newTestRequest(), "text/csv", "sales.csv", func(w io.Writer) error {
		_, err := io.WriteString(w, "a,b\n")
		return err
	})

	if rr.Code != http.StatusOK || rr.Body.String() != "a,b\n" {
		t.Fatalf("unexpected response %d %q", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Disposition"); got != `attachment; filename="sales.csv"` {
		t.Fatalf("Content-Disposition = %q", got)
	}
}

func TestWriteFileError(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestHandler().WriteFile(rr, newTestRequest(), "text/csv", "sales.csv", func(io.Writer) error {
		return errs.NewNotFoundError("no data loaded")
	})

	if rr.Code != http.StatusNotFound || rr.Header().Get("Content-Disposition") != "" {
		t.Fatalf("expected a 404 without attachment headers, got %d", rr.Code)
	}
}
