package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hero4job/cv-engine/internal/config"
	"github.com/hero4job/cv-engine/internal/drafts"
	"github.com/hero4job/cv-engine/internal/forms"
	"github.com/hero4job/cv-engine/internal/layouts"
	"github.com/hero4job/cv-engine/internal/store"
)

// Server represents the HTTP API server
type Server struct {
	config      config.ServerConfig
	cors        config.CORSConfig
	router      *chi.Mux
	store       *store.Store
	controllers *forms.Controllers
	registry    *layouts.Registry
	drafts      *drafts.Manager
	logger      *zap.Logger
}

// NewServer creates a new API server
func NewServer(
	cfg *config.Config,
	st *store.Store,
	controllers *forms.Controllers,
	registry *layouts.Registry,
	manager *drafts.Manager,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		config:      cfg.Server,
		cors:        cfg.CORS,
		store:       st,
		controllers: controllers,
		registry:    registry,
		drafts:      manager,
		logger:      logger,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cors.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (outside versioned API)
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cv", func(r chi.Router) {
			r.Get("/", s.handleGetDocument)
			r.Patch("/personal", s.handlePatchPersonal)
			r.Put("/personal/photo", s.handlePutPhoto)
			r.Get("/preview", s.handlePreview)
			r.Put("/sections/{section}/visibility", s.handlePutVisibility)
			r.Put("/{section}", s.handlePutSection)
		})

		r.Route("/layouts", func(r chi.Router) {
			r.Get("/", s.handleListLayouts)
			r.Get("/{name}", s.handleGetLayout)
		})

		r.Route("/drafts", func(r chi.Router) {
			r.Post("/", s.handleOpenDraft)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetDraft)
				r.Put("/", s.handleUpdateDraft)
				r.Delete("/", s.handleDiscardDraft)
				r.Post("/submit", s.handleSubmitDraft)
				r.Post("/entries", s.handleAppendEntry)
				r.Delete("/entries/{index}", s.handleRemoveEntry)
				r.Put("/entries/{index}/still-here", s.handleSetStillHere)
			})
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using zap
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("remote_addr", r.RemoteAddr),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
