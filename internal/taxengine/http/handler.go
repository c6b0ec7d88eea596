// Package taxenginehttp exposes the tax computation engine over JSON.
package taxenginehttp

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-ca/meridian/internal/observability"
	"github.com/meridian-ca/meridian/internal/platform/httpx"
	"github.com/meridian-ca/meridian/internal/taxengine"
)

// Handler wires tax engine endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *taxengine.Service
	validator *validator.Validate
	metrics   *observability.Metrics
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *taxengine.Service, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
		metrics:   metrics,
	}
}

// MountRoutes registers tax engine routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/tax/income-tax", h.incomeTax)
	r.Post("/tax/compare-regimes", h.compareRegimes)
	r.Post("/tax/depreciation", h.depreciation)
	r.Post("/tax/capital-gains", h.capitalGains)
	r.Post("/tax/gst", h.gst)
	r.Post("/tax/tds", h.tds)
}

type incomeTaxRequest struct {
	Income     taxengine.Income     `json:"income"`
	Deductions taxengine.Deductions `json:"deductions"`
	Regime     string               `json:"regime" validate:"required"`
}

func (h *Handler) incomeTax(w http.ResponseWriter, r *http.Request) {
	var req incomeTaxRequest
	if !h.decode(w, r, &req) {
		return
	}
	regime, err := taxengine.ParseRegime(req.Regime)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	result, err := h.service.IncomeTax(r.Context(), req.Income, req.Deductions, regime)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.metrics.CountComputation("income_tax")
	httpx.JSON(w, http.StatusOK, result)
}

type compareRequest struct {
	Income     taxengine.Income     `json:"income"`
	Deductions taxengine.Deductions `json:"deductions"`
}

func (h *Handler) compareRegimes(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !h.decode(w, r, &req) {
		return
	}
	cmp, err := h.service.CompareRegimes(r.Context(), req.Income, req.Deductions)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.metrics.CountComputation("compare_regimes")
	httpx.JSON(w, http.StatusOK, cmp)
}

type depreciationRequest struct {
	Assets []taxengine.Asset `json:"assets" validate:"required,dive"`
	Method string            `json:"method,omitempty"`
}

func (h *Handler) depreciation(w http.ResponseWriter, r *http.Request) {
	var req depreciationRequest
	if !h.decode(w, r, &req) {
		return
	}
	schedule := h.service.Depreciation(r.Context(), req.Assets, taxengine.DepreciationMethod(req.Method))
	h.metrics.CountComputation("depreciation")
	httpx.JSON(w, http.StatusOK, schedule)
}

type capitalGainsRequest struct {
	AssetClass    string     `json:"asset_type" validate:"required"`
	PurchasePrice float64    `json:"purchase_price" validate:"gte=0"`
	SalePrice     float64    `json:"sale_price" validate:"gte=0"`
	PurchaseDate  *time.Time `json:"purchase_date,omitempty"`
	SaleDate      *time.Time `json:"sale_date,omitempty"`
	HoldingDays   int        `json:"holding_days,omitempty"`
	CIIPurchase   float64    `json:"cost_inflation_index_purchase,omitempty"`
	CIISale       float64    `json:"cost_inflation_index_sale,omitempty"`
}

func (h *Handler) capitalGains(w http.ResponseWriter, r *http.Request) {
	var req capitalGainsRequest
	if !h.decode(w, r, &req) {
		return
	}
	result, err := h.service.CapitalGains(r.Context(), taxengine.Disposal{
		AssetClass:    taxengine.GainAssetClass(req.AssetClass),
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
		PurchaseDate:  req.PurchaseDate,
		SaleDate:      req.SaleDate,
		HoldingDays:   req.HoldingDays,
		CIIPurchase:   req.CIIPurchase,
		CIISale:       req.CIISale,
	})
	if err != nil {
		if errors.Is(err, taxengine.ErrNegativeHolding) {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
			return
		}
		httpx.RespondError(w, err)
		return
	}
	h.metrics.CountComputation("capital_gains")
	httpx.JSON(w, http.StatusOK, result)
}

type gstRequest struct {
	Transactions []taxengine.GSTTransaction `json:"transactions" validate:"required,dive"`
}

func (h *Handler) gst(w http.ResponseWriter, r *http.Request) {
	var req gstRequest
	if !h.decode(w, r, &req) {
		return
	}
	result := h.service.GST(r.Context(), req.Transactions)
	h.metrics.CountComputation("gst")
	httpx.JSON(w, http.StatusOK, result)
}

type tdsRequest struct {
	Category string  `json:"type" validate:"required"`
	Amount   float64 `json:"amount" validate:"gte=0"`
}

func (h *Handler) tds(w http.ResponseWriter, r *http.Request) {
	var req tdsRequest
	if !h.decode(w, r, &req) {
		return
	}
	result := h.service.TDS(r.Context(), taxengine.PaymentCategory(req.Category), req.Amount)
	h.metrics.CountComputation("tds")
	httpx.JSON(w, http.StatusOK, result)
}

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
