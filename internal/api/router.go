package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/YieldMax-Dashboard-Backend/internal/api/middleware"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/config"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/metrics"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	sessionService *service.SessionService,
	marketDataService *service.MarketDataService,
	dashboardService *service.DashboardService,
	metricsRegistry *metrics.Registry,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	r.Handle("/metrics", metricsRegistry.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/fund", func(r chi.Router) {
			fundHandler := handlers.NewFundHandler()
			r.Get("/", fundHandler.Funds)
		})

		sessionHandler := handlers.NewSessionHandler(sessionService, marketDataService)
		dashboardHandler := handlers.NewDashboardHandler(dashboardService)

		r.Route("/session", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)

			// Everything below needs a resolved session.
			r.Group(func(r chi.Router) {
				r.Use(custommiddleware.RequireSession(sessionService))
				r.Post("/fetch", sessionHandler.Fetch)
				r.Get("/daterange", dashboardHandler.DateRange)
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(custommiddleware.RequireSession(sessionService))
			r.Get("/prices", dashboardHandler.Prices)
			r.Get("/dividends/table", dashboardHandler.DividendTable)
			r.Get("/dividends/chart", dashboardHandler.DividendChart)
		})
	})

	return r
}
