package api

import (
	"net/http"
	"time"

	"github.com/futig/multimodal-rag/internal/api/docs"
	"github.com/futig/multimodal-rag/internal/api/middleware"
	ragapi "github.com/futig/multimodal-rag/internal/api/rag"
	"github.com/futig/multimodal-rag/internal/observability/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	ragHandler *ragapi.Handler,
	serverMetrics *metrics.ServerMetrics,
	requestTimeout time.Duration,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)               // Recover from panics
	r.Use(chimiddleware.RequestID)               // Add request ID
	r.Use(middleware.Logger(logger))             // Log requests
	r.Use(middleware.CORS)                       // Handle CORS
	r.Use(serverMetrics.Middleware)              // Collect request metrics
	r.Use(chimiddleware.Timeout(requestTimeout)) // Default timeout

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})

	// Prometheus metrics
	r.Method(http.MethodGet, "/metrics", serverMetrics.Handler())

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	ragapi.RegisterRoutes(r, ragHandler)

	return r
}
