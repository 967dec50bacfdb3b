// Package rest wires the HTTP routes to their handlers.
package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"memoir-backend/application/services"
	"memoir-backend/infrastructure/persistence/filestore"
	"memoir-backend/interfaces/http/rest/handlers"
	"memoir-backend/interfaces/http/rest/middleware"
	"memoir-backend/pkg/common"
	"memoir-backend/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	store   *filestore.Store
	assist  *services.AssistService
	export  *services.ExportService
	upload  *services.UploadService
	metrics *observability.Metrics
	logger  *zap.Logger

	publicDir  string
	uploadRoot string
	enableCORS bool
}

// Options carries the router dependencies and settings.
type Options struct {
	Store      *filestore.Store
	Assist     *services.AssistService
	Export     *services.ExportService
	Upload     *services.UploadService
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	PublicDir  string
	UploadRoot string
	EnableCORS bool
}

// NewRouter creates a new router instance
func NewRouter(opts Options) *Router {
	return &Router{
		store:      opts.Store,
		assist:     opts.Assist,
		export:     opts.Export,
		upload:     opts.Upload,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
		publicDir:  opts.PublicDir,
		uploadRoot: opts.UploadRoot,
		enableCORS: opts.EnableCORS,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.metrics != nil {
		router.Use(rt.metrics.Middleware)
	}

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		common.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check
	router.Get("/healthz", rt.healthCheck)
	if rt.metrics != nil {
		router.Handle("/metrics", rt.metrics.Handler())
	}

	router.Route("/api/projects", func(r chi.Router) {
		projectHandler := handlers.NewProjectHandler(rt.store, rt.logger)
		r.Get("/", projectHandler.ListProjects)
		r.Post("/", projectHandler.CreateProject)

		r.Route("/{projectID}", func(r chi.Router) {
			r.Use(middleware.RequireProjectID)

			r.Get("/", projectHandler.GetProject)
			r.Put("/", projectHandler.UpdateProject)
			r.Delete("/", projectHandler.DeleteProject)

			r.Route("/memories", func(r chi.Router) {
				memoryHandler := handlers.NewMemoryHandler(rt.store, rt.logger)
				r.Get("/", memoryHandler.ListMemories)
				r.Post("/", memoryHandler.CreateMemory)
				r.Put("/{memoryID}", memoryHandler.UpdateMemory)
				r.Delete("/{memoryID}", memoryHandler.DeleteMemory)
			})

			r.Route("/chapters", func(r chi.Router) {
				chapterHandler := handlers.NewChapterHandler(rt.store, rt.logger)
				r.Get("/", chapterHandler.ListChapters)
				r.Post("/", chapterHandler.CreateChapter)
				// Static route wins over the id parameter in chi.
				r.Put("/reorder", chapterHandler.ReorderChapters)
				r.Put("/{chapterID}", chapterHandler.UpdateChapter)
				r.Delete("/{chapterID}", chapterHandler.DeleteChapter)
			})

			r.Post("/upload", handlers.NewUploadHandler(rt.upload, rt.logger).Upload)
			r.Post("/ai/{action}", handlers.NewAssistHandler(rt.assist, rt.logger).Run)
			r.Get("/export/{format}", handlers.NewExportHandler(rt.export, rt.logger).Download)
		})
	})

	// Uploaded images referenced by relative URL from chapter content.
	if rt.uploadRoot != "" {
		router.Handle("/uploads/*", http.StripPrefix("/uploads/",
			http.FileServer(http.Dir(rt.uploadRoot))))
	}

	// Everything else is the SPA.
	router.NotFound(rt.serveStatic)

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// serveStatic serves the client bundle with an SPA index fallback.
// Unmatched /api paths stay JSON 404s so the client never parses HTML as
// an API response.
func (rt *Router) serveStatic(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") || rt.publicDir == "" {
		common.RespondError(w, http.StatusNotFound, "Not found")
		return
	}

	path := filepath.Join(rt.publicDir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}

	index := filepath.Join(rt.publicDir, "index.html")
	if _, err := os.Stat(index); err == nil {
		http.ServeFile(w, r, index)
		return
	}
	common.RespondError(w, http.StatusNotFound, "Not found")
}
