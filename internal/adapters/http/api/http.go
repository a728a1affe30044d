// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/okian/collections/internal/app"
	"github.com/okian/collections/internal/domain/model"
	"github.com/okian/collections/pkg/logger"
)

// Error messages returned in the "error" field.
const (
	msgProductRequired = "Nome e prezzo sono obbligatori"
	msgProductNotFound = "Prodotto non trovato"
	msgBadRequest      = "Richiesta non valida"
	msgBodyTooLarge    = "Richiesta troppo grande"
	msgInternal        = "Errore interno"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 100 << 10

// ProductsDependencies is what the products routes need.
type ProductsDependencies interface {
	List(ctx context.Context) []model.Product
	Create(ctx context.Context, in service.ProductInput) (model.Product, error)
	Delete(ctx context.Context, id int) error
	Stats(ctx context.Context) service.Stats
}

// PostsDependencies is what the posts routes need.
type PostsDependencies interface {
	List(ctx context.Context) []model.Post
	Create(ctx context.Context, in service.PostInput) model.Post
	Stats(ctx context.Context) service.Stats
}

// StatsProvider reports collection stats for /healthz and /stats.
type StatsProvider interface {
	Stats(ctx context.Context) service.Stats
}

// Server wires HTTP routes for the collection APIs.
type Server struct {
	productsHandler *ProductsHandler
	postsHandler    *PostsHandler
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler

	corsEnabled bool
	corsOrigins []string
	logger      logger.Logger
}

// NewServer creates an API server. Only the collections passed in options are mounted.
func NewServer(opts ...Option) *Server {
	s := &Server{corsOrigins: []string{"*"}}
	var providers []StatsProvider
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.productsHandler != nil {
		providers = append(providers, s.productsHandler.deps)
	}
	if s.postsHandler != nil {
		providers = append(providers, s.postsHandler.deps)
	}
	s.healthHandler = NewHealthHandler(providers...)
	s.statsHandler = NewStatsHandler(providers...)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	if h := s.productsHandler; h != nil {
		mux.HandleFunc("GET /products", MetricsMiddleware(h.HandleList, "products"))
		mux.HandleFunc("POST /products", MetricsMiddleware(h.HandleCreate, "products"))
		mux.HandleFunc("DELETE /products/{id}", MetricsMiddleware(h.HandleDelete, "product"))
	}
	if h := s.postsHandler; h != nil {
		mux.HandleFunc("GET /api/posts", MetricsMiddleware(h.HandleList, "posts"))
		mux.HandleFunc("POST /api/posts", MetricsMiddleware(h.HandleCreate, "posts"))
	}
}

// Handler wraps next with the middleware chain. Outermost first: recovery, real ip,
// request id, access log, CORS when enabled.
func (s *Server) Handler(next http.Handler) http.Handler {
	if s.corsEnabled {
		next = CORS(s.corsOrigins)(next)
	}
	next = AccessLog(s.logger.Named("http"))(next)
	next = RequestID(next)
	next = RealIP(next)
	return Recoverer(next)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
