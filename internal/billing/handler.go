package billing

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-ca/meridian/internal/observability"
	"github.com/meridian-ca/meridian/internal/platform/httpx"
)

// Handler wires invoice computation endpoints.
type Handler struct {
	logger    *slog.Logger
	validator *validator.Validate
	metrics   *observability.Metrics
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:    logger,
		validator: validator.New(),
		metrics:   metrics,
	}
}

// MountRoutes registers billing routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/billing/invoice-totals", h.invoiceTotals)
}

type invoiceRequest struct {
	Lines []Line `json:"lines" validate:"required,min=1,dive"`
}

func (h *Handler) invoiceTotals(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	result := ComputeInvoice(req.Lines)
	h.metrics.CountComputation("invoice_totals")
	httpx.JSON(w, http.StatusOK, result)
}
