// Package compliancehttp exposes the compliance resolver, workflow
// tables, identifier validators, and late-fee calculator over JSON.
package compliancehttp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-ca/meridian/internal/compliance"
	"github.com/meridian-ca/meridian/internal/fiscal"
	"github.com/meridian-ca/meridian/internal/observability"
	"github.com/meridian-ca/meridian/internal/platform/httpx"
	"github.com/meridian-ca/meridian/internal/taxid"
)

// Handler wires compliance endpoints.
type Handler struct {
	logger    *slog.Logger
	validator *validator.Validate
	metrics   *observability.Metrics
	now       func() time.Time
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:    logger,
		validator: validator.New(),
		metrics:   metrics,
		now:       time.Now,
	}
}

// WithNow overrides the clock for testing. The engine itself never
// reads the clock; the handler supplies "now" only when the caller
// omits a reference date.
func (h *Handler) WithNow(now func() time.Time) {
	if now != nil {
		h.now = now
	}
}

// MountRoutes registers compliance routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/workflow/financial-year", h.financialYear)
	r.Get("/workflow/stages", h.stages)
	r.Post("/workflow/stages/advance", h.advanceStage)
	r.Get("/workflow/checklists/{serviceType}", h.checklist)
	r.Post("/compliance/requirements", h.requirements)
	r.Post("/compliance/late-fee", h.lateFee)
	r.Post("/validate/gstin", h.validateGSTIN)
	r.Post("/validate/pan", h.validatePAN)
}

func (h *Handler) financialYear(w http.ResponseWriter, r *http.Request) {
	date := h.now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}
	httpx.JSON(w, http.StatusOK, fiscal.Resolve(date))
}

func (h *Handler) stages(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{"stages": compliance.Stages()})
}

type advanceStageRequest struct {
	CurrentStage string `json:"current_stage" validate:"required"`
}

func (h *Handler) advanceStage(w http.ResponseWriter, r *http.Request) {
	var req advanceStageRequest
	if !h.decode(w, r, &req) {
		return
	}
	next, err := compliance.NextStage(compliance.Stage(req.CurrentStage))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"current_stage": req.CurrentStage, "next_stage": next})
}

func (h *Handler) checklist(w http.ResponseWriter, r *http.Request) {
	serviceType := chi.URLParam(r, "serviceType")
	httpx.JSON(w, http.StatusOK, map[string]any{
		"service_type": serviceType,
		"checklist":    compliance.Checklist(serviceType),
	})
}

type requirementsRequest struct {
	BusinessType string   `json:"business_type" validate:"required"`
	Turnover     *float64 `json:"turnover,omitempty" validate:"omitempty,gte=0"`
}

func (h *Handler) requirements(w http.ResponseWriter, r *http.Request) {
	var req requirementsRequest
	if !h.decode(w, r, &req) {
		return
	}
	set, err := compliance.Resolve(compliance.BusinessType(req.BusinessType), req.Turnover)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	h.metrics.CountComputation("compliance_requirements")
	httpx.JSON(w, http.StatusOK, set)
}

type lateFeeRequest struct {
	Category string     `json:"category" validate:"required"`
	DueDate  time.Time  `json:"due_date" validate:"required"`
	AsOf     *time.Time `json:"as_of,omitempty"`
}

func (h *Handler) lateFee(w http.ResponseWriter, r *http.Request) {
	var req lateFeeRequest
	if !h.decode(w, r, &req) {
		return
	}
	asOf := h.now().UTC()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}
	result := compliance.ComputeLateFee(compliance.TaskCategory(req.Category), req.DueDate, asOf)
	h.metrics.CountComputation("late_fee")
	httpx.JSON(w, http.StatusOK, result)
}

type gstinRequest struct {
	GSTIN string `json:"gstin" validate:"required"`
}

func (h *Handler) validateGSTIN(w http.ResponseWriter, r *http.Request) {
	var req gstinRequest
	if !h.decode(w, r, &req) {
		return
	}
	httpx.JSON(w, http.StatusOK, taxid.ValidateGSTIN(req.GSTIN))
}

type panRequest struct {
	PAN string `json:"pan" validate:"required"`
}

func (h *Handler) validatePAN(w http.ResponseWriter, r *http.Request) {
	var req panRequest
	if !h.decode(w, r, &req) {
		return
	}
	httpx.JSON(w, http.StatusOK, taxid.ValidatePAN(req.PAN))
}

// decode parses and validates a JSON body, writing the problem
// response itself on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := httpx.DecodeJSON(r, target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return false
	}
	if err := h.validator.Struct(target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return false
	}
	return true
}
