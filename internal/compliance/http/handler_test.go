package compliancehttp

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newTestRouter() chi.Router {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	h.WithNow(func() time.Time {
		return time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)
	})
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func doJSON(t *testing.T, r chi.Router, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	out := map[string]any{}
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	}
	return rr, out
}

func TestFinancialYearEndpoint(t *testing.T) {
	r := newTestRouter()

	rr, body := doJSON(t, r, http.MethodGet, "/workflow/financial-year", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "FY2024-25", body["fy_code"])
	require.Equal(t, "AY2025-26", body["ay_code"])
	require.Equal(t, float64(2), body["quarter"])

	rr, body = doJSON(t, r, http.MethodGet, "/workflow/financial-year?date=2024-02-10", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "FY2023-24", body["fy_code"])

	rr, _ = doJSON(t, r, http.MethodGet, "/workflow/financial-year?date=10-02-2024", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRequirementsEndpoint(t *testing.T) {
	r := newTestRouter()

	rr, body := doJSON(t, r, http.MethodPost, "/compliance/requirements",
		`{"business_type":"LLP","turnover":12000000}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "REQUIRED", body["requires_gst"])
	require.Equal(t, "REQUIRED", body["requires_audit"])

	rr, _ = doJSON(t, r, http.MethodPost, "/compliance/requirements",
		`{"business_type":"SOLE_TRADER"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLateFeeEndpoint(t *testing.T) {
	r := newTestRouter()

	rr, body := doJSON(t, r, http.MethodPost, "/compliance/late-fee",
		`{"category":"GST","due_date":"2024-11-20T00:00:00Z","as_of":"2025-01-10T00:00:00Z"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, true, body["overdue"])
	require.Equal(t, float64(51), body["days_overdue"])
	require.Equal(t, float64(2550), body["late_fee"])
}

func TestValidationEndpoints(t *testing.T) {
	r := newTestRouter()

	rr, body := doJSON(t, r, http.MethodPost, "/validate/gstin", `{"gstin":"27ABCDE1234F1Z5"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, true, body["valid"])
	require.Equal(t, "27", body["state_code"])

	rr, body = doJSON(t, r, http.MethodPost, "/validate/pan", `{"pan":"abcde1234f"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, true, body["valid"])

	rr, body = doJSON(t, r, http.MethodPost, "/validate/gstin", `{"gstin":"TOOSHORT"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, false, body["valid"])
	require.Equal(t, "GSTIN must be 15 characters", body["reason"])
}

func TestChecklistEndpoint(t *testing.T) {
	r := newTestRouter()

	rr, body := doJSON(t, r, http.MethodGet, "/workflow/checklists/ITR_BUSINESS", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ITR_BUSINESS", body["service_type"])
	items, ok := body["checklist"].([]any)
	require.True(t, ok)
	require.Len(t, items, 8)
}
