package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	service "github.com/okian/collections/internal/app"
	"github.com/okian/collections/pkg/metrics"
)

// HealthHandler handles health and metrics requests.
type HealthHandler struct {
	providers []StatsProvider
	metrics   http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(providers ...StatsProvider) *HealthHandler {
	return &HealthHandler{
		providers: providers,
		metrics:   promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

type healthResponse struct {
	Status      string          `json:"status"`
	Collections []service.Stats `json:"collections"`
}

// HandleHealth handles GET /healthz.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Collections: collectStats(r, h.providers)}
	writeJSON(w, http.StatusOK, resp)
}

// HandleMetrics handles GET /metrics with the Prometheus exposition format.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	providers []StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(providers ...StatsProvider) *StatsHandler {
	return &StatsHandler{providers: providers}
}

// HandleStats handles GET /stats.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, collectStats(r, h.providers))
}

func collectStats(r *http.Request, providers []StatsProvider) []service.Stats {
	out := make([]service.Stats, 0, len(providers))
	for _, p := range providers {
		out = append(out, p.Stats(r.Context()))
	}
	return out
}
