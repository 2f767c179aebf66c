// Package paymentorchestrator предоставляет сборку и маршруты основного
// приложения.
package paymentorchestrator

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/payment-orchestrator/internal/http/handlers/health"
	"github.com/magabrotheeeer/payment-orchestrator/internal/http/handlers/lead/leadcreate"
	"github.com/magabrotheeeer/payment-orchestrator/internal/http/handlers/payment/intentcreate"
	"github.com/magabrotheeeer/payment-orchestrator/internal/http/handlers/subscription/subcreate"
	"github.com/magabrotheeeer/payment-orchestrator/internal/http/middlewarectx"
	chargeservice "github.com/magabrotheeeer/payment-orchestrator/internal/services/charge"
	subservice "github.com/magabrotheeeer/payment-orchestrator/internal/services/subscription"
	"github.com/magabrotheeeer/payment-orchestrator/internal/storage/leadcsv"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, chargeService *chargeservice.Service, subscriptionService *subservice.Service, leadRecorder *leadcsv.Recorder, processorConfigured bool) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// Платёжные конечные точки с ограничением частоты
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, rate.NewLimiter(10, 30)))
			r.Post("/payment-intents", intentcreate.New(logger, chargeService).ServeHTTP)
			r.Post("/subscriptions", subcreate.New(logger, subscriptionService).ServeHTTP)
		})

		r.Post("/leads", leadcreate.New(logger, leadRecorder).ServeHTTP)
		r.Get("/health", health.New(logger, processorConfigured).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	// Статика для платёжной страницы
	r.Handle("/*", http.FileServer(http.Dir("./public")))
}
