package api

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(h *Handlers, webDir string, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	// Add middleware stack
	r.Use(middleware.RequestID)
	r.Use(RequestIDResponse) // Add X-Request-ID to response headers
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(Recovery(logger))
	r.Use(middleware.Compress(5)) // Gzip compression

	// CORS configuration. The JSON analysis endpoint is scriptable from
	// other origins; the page actions ride on the session cookie.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	}))

	// Health check endpoint
	r.Get("/health", h.Health)

	// The page
	r.Get("/", h.Page)

	// Page actions (Datastar signal bodies, SSE responses)
	r.Route("/ui", func(r chi.Router) {
		r.Post("/mode", h.ModeSelect)
		r.Post("/shape", h.ShapeEvent)
		r.Post("/bbox", h.BBoxSubmit)
		r.Post("/analyze", h.Analyze)
		r.Post("/layers", h.LayerToggle)
		r.Post("/reset", h.Reset)
	})

	// JSON analysis proxy
	r.Post("/api/v1/analysis", h.Analysis)

	// Static assets
	staticDir := filepath.Join(webDir, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "endpoint not found")
	})

	// 405 handler
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", "method not allowed")
	})

	return r
}
