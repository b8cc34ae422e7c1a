// Package api provides the HTTP JSON surface over the warehouse.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pgEdge/pgedge-warehouse/internal/warehouse"
)

// Store is the subset of warehouse operations the HTTP layer needs.
// Handlers depend on it rather than *warehouse.Warehouse so tests can
// stub the store.
type Store interface {
	Analytics(ctx context.Context) (*warehouse.AnalyticsReport, error)
	RunChecks(ctx context.Context) ([]warehouse.QualityMetric, error)
	StoredMetrics(ctx context.Context) ([]warehouse.QualityMetric, error)
	Lineage() *warehouse.Lineage
}

// Handler serves the warehouse HTTP API.
type Handler struct {
	store Store
}

// NewHandler creates a Handler over a warehouse store.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Routes builds the router for the warehouse API. CORS is wide open since
// the dashboard is served from the browser.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}))

	r.Get("/healthz", h.getHealth)
	r.Get("/analytics", h.getAnalytics)
	r.Get("/quality-metrics", h.getQualityMetrics)
	r.Post("/quality-check", h.postQualityCheck)
	r.Get("/lineage", h.getLineage)

	return r
}

func (h *Handler) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) getAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.store.Analytics(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) getQualityMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.store.StoredMetrics(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

func (h *Handler) postQualityCheck(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.store.RunChecks(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

func (h *Handler) getLineage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Lineage())
}
