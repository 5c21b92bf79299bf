package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/resumerater/resumerater-backend/internal/rating/handler"
	"github.com/resumerater/resumerater-backend/pkg/config"
	"github.com/resumerater/resumerater-backend/pkg/httputil"
	"github.com/resumerater/resumerater-backend/pkg/i18n"
	"github.com/resumerater/resumerater-backend/pkg/logger"
	"github.com/resumerater/resumerater-backend/pkg/messaging"
)

// newRouter wires middleware and routes. rmq may be nil when events are disabled.
func newRouter(cfg *config.Config, h *handler.Handler, rmq *messaging.RabbitMQ, log *logger.Logger) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(i18n.Middleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := map[string]interface{}{
			"status":  "healthy",
			"service": serviceName,
		}
		if rmq != nil {
			health["rabbitmq"] = rmq.Health()
		}
		httputil.JSON(w, http.StatusOK, health)
	})

	// Browser pages
	r.Get("/", h.Index)
	r.Post("/rate", h.Rate)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", "Accept-Language"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))

		r.Post("/ratings", h.APIRate)
	})

	return r
}
