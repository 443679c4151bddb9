// Package httpapi exposes the admin state container over HTTP. Reads are
// served from the current state; writes run the matching remote call
// through the API middleware and answer from the state it produced.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/wilhg/foodadmin/internal/logging"
	"github.com/wilhg/foodadmin/pkg/api"
	"github.com/wilhg/foodadmin/pkg/store"
)

const maxBodyBytes = 1 << 20

// Runner runs a remote call against a dispatcher. *api.Middleware
// implements it.
type Runner interface {
	Run(ctx context.Context, d api.Dispatcher, call api.Call) (api.Result, error)
}

// Server routes admin requests to the store.
type Server struct {
	store   *store.Store
	runner  Runner
	router  *chi.Mux
	metrics http.Handler
}

// Option configures optional routes.
type Option func(*Server)

// WithMetrics mounts h at GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// NewServer wires the router.
func NewServer(st *store.Store, runner Runner, opts ...Option) *Server {
	s := &Server{store: st, runner: runner, router: chi.NewRouter()}
	for _, opt := range opts {
		opt(s)
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the instrumented root handler.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router, "foodadmin",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(logging.Requests)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics)
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)

		r.Get("/food-items", s.handleListItems)
		r.Get("/food-items/{id}", s.handleGetItem)

		r.Get("/categories", s.handleListCategories)
		r.Post("/categories", s.handleSaveCategory)
		r.Post("/categories/reload", s.handleReload)
		r.Get("/categories/{categoryID}", s.handleGetCategory)
		r.Put("/categories/{categoryID}", s.handleSaveCategory)
		r.Delete("/categories/{categoryID}", s.handleDeleteCategory)

		r.Post("/categories/{categoryID}/items", s.handleSaveItem)
		r.Put("/categories/{categoryID}/items/{itemID}", s.handleSaveItem)
		r.Delete("/categories/{categoryID}/items/{itemID}", s.handleDeleteItem)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
