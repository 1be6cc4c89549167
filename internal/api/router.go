package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/schemadoc/internal/api/middleware"
	"github.com/phrazzld/schemadoc/internal/auth"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds what NewRouter needs to register routes.
type RouterConfig struct {
	Logger        *slog.Logger
	JWTService    auth.JWTService
	Documentation *DocumentationHandler
	Tasks         *TaskHandler

	// Metrics serves /metrics. Defaults to promhttp.Handler().
	Metrics http.Handler
}

// NewRouter creates the application router with all routes and middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Trace(log))

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTService)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Route("/connections/{id}", func(r chi.Router) {
			r.Post("/documentation", cfg.Documentation.CreateDocumentation)
			r.Get("/documentation/progress", cfg.Documentation.GetProgress)
			r.Get("/summary", cfg.Documentation.GetSummary)
		})
		r.Get("/tasks/{taskID}", cfg.Tasks.GetTask)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("failed to write health check response", "error", err)
		}
	})
	r.Handle("/metrics", metrics)

	return r
}
