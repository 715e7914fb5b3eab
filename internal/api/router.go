package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Crypto-Dashboard-Backend/internal/api/middleware"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/service"
)

// Services groups everything the HTTP layer delegates to.
type Services struct {
	System      *service.SystemService
	Market      *service.MarketService
	Chart       *service.ChartService
	Portfolio   *service.PortfolioService
	Preferences *service.PreferenceService
	Dashboard   *service.DashboardService

	// Stream serves the live market feed. Optional.
	Stream http.Handler
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Get("/dashboard", handlers.NewDashboardHandler(svc.Dashboard, svc.Preferences).Dashboard)

		r.Route("/market", func(r chi.Router) {
			marketHandler := handlers.NewMarketHandler(svc.Market, svc.Preferences, cfg.Market.ListLimit)
			chartHandler := handlers.NewChartHandler(svc.Chart, svc.Preferences)
			r.Get("/", marketHandler.Overview)
			r.Get("/{assetId}/history", chartHandler.History)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio, svc.Preferences)
			r.Get("/", portfolioHandler.Portfolio)
			r.Post("/assets", portfolioHandler.CreateAsset)
			r.Route("/assets/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Delete("/", portfolioHandler.DeleteAsset)
			})
		})

		preferenceHandler := handlers.NewPreferenceHandler(svc.Preferences)
		r.Route("/preferences", func(r chi.Router) {
			r.Get("/", preferenceHandler.Preferences)
			r.Put("/currency", preferenceHandler.UpdateCurrency)
			r.Put("/notifications", preferenceHandler.UpdateNotifications)
			r.Post("/notifications/{key}/toggle", preferenceHandler.ToggleNotification)
		})
		r.Get("/format", preferenceHandler.Format)

		if svc.Stream != nil {
			r.Handle("/stream", svc.Stream)
		}
	})

	return r
}
