package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/meridian-ca/meridian/internal/billing"
	"github.com/meridian-ca/meridian/internal/clients"
	compliancehttp "github.com/meridian-ca/meridian/internal/compliance/http"
	"github.com/meridian-ca/meridian/internal/observability"
	"github.com/meridian-ca/meridian/internal/tasks"
	taxenginehttp "github.com/meridian-ca/meridian/internal/taxengine/http"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	ComplianceHandler *compliancehttp.Handler
	TaxHandler        *taxenginehttp.Handler
	ClientsHandler    *clients.Handler
	TasksHandler      *tasks.Handler
	BillingHandler    *billing.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with Meridian defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		if params.ComplianceHandler != nil {
			params.ComplianceHandler.MountRoutes(r)
		}
		if params.TaxHandler != nil {
			params.TaxHandler.MountRoutes(r)
		}
		if params.ClientsHandler != nil {
			params.ClientsHandler.MountRoutes(r)
		}
		if params.TasksHandler != nil {
			params.TasksHandler.MountRoutes(r)
		}
		if params.BillingHandler != nil {
			params.BillingHandler.MountRoutes(r)
		}
	})

	return r
}
