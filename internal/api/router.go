// Package api exposes the analysis service over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/tsawler/lexico/internal/metrics"
	"github.com/tsawler/lexico/internal/service"
)

// Options configures the router.
type Options struct {
	AllowedOrigins []string
	// MaxBodyBytes bounds request bodies; zero means unbounded.
	MaxBodyBytes int64
}

// Router creates and configures the HTTP router.
type Router struct {
	svc      *service.Service
	metrics  *metrics.Collector
	logger   *zap.Logger
	validate *validator.Validate
	opts     Options
}

// NewRouter creates a new router instance.
func NewRouter(svc *service.Service, m *metrics.Collector, logger *zap.Logger, opts Options) *Router {
	return &Router{
		svc:      svc,
		metrics:  m,
		logger:   logger,
		validate: newValidator(),
		opts:     opts,
	}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(Logger(rt.logger))
	router.Use(rt.metrics.Middleware)
	router.Use(cors.New(cors.Options{
		AllowedOrigins: rt.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}).Handler)
	if rt.opts.MaxBodyBytes > 0 {
		router.Use(chimiddleware.RequestSize(rt.opts.MaxBodyBytes))
	}

	router.Get("/health", rt.healthCheck)
	router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/languages", rt.listLanguages)
		r.Post("/analyze", rt.analyzeText)

		r.Route("/documents", func(r chi.Router) {
			r.Post("/", rt.createDocument)
			r.Get("/", rt.listDocuments)
			r.Get("/{documentID}", rt.getDocument)
			r.Post("/{documentID}/analyses", rt.analyzeDocument)
			r.Get("/{documentID}/analyses", rt.listAnalyses)
			r.Get("/{documentID}/summary", rt.summary)
		})

		r.Route("/analyses", func(r chi.Router) {
			r.Post("/batch", rt.analyzeBatch)
			r.Get("/{analysisID}", rt.getAnalysis)
			r.Get("/{analysisID}/report", rt.getReport)
		})
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, rt.logger, http.StatusOK, map[string]string{"status": "healthy"})
}
