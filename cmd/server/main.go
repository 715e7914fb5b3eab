package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/api"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/app"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/coingecko"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/database"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/logging"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/scheduler"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/seed"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/stream"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck // nothing to do if the final flush fails
	zap.ReplaceGlobals(logger)

	if err := run(cfg, logger); err != nil && !errors.Is(err, app.ErrInterrupted) {
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("server exited")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}
	logger.Info("connected to database", zap.String("path", cfg.Database.Path))

	// Create repositories
	assetRepo := repository.NewAssetRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)

	client := coingecko.NewFinanceClient(cfg.Market.Timeout,
		coingecko.WithBaseURL(cfg.Market.BaseURL),
		coingecko.WithAPIKey(cfg.Market.APIKey),
	)
	quote := cfg.Market.QuoteCurrency

	// Create services
	preferenceService := service.NewPreferenceService(preferenceRepo, cfg.Currency.BTCRate, logger)
	if err := preferenceService.Load(ctx); err != nil {
		logger.Warn("using default preferences", zap.Error(err))
	}

	portfolioService := service.NewPortfolioService(db, assetRepo, logger)
	seedAssets, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return err
	}
	if _, err := portfolioService.SeedIfEmpty(ctx, seedAssets); err != nil {
		logger.Warn("failed to seed portfolio", zap.Error(err))
	}

	marketService := service.NewMarketService(client, quote, logger)
	chartService := service.NewChartService(client,
		service.NewFallbackGenerator(uint64(time.Now().UnixNano()), time.Now),
		quote, logger)
	dashboardService := service.NewDashboardService(marketService, portfolioService, chartService, preferenceService)
	systemService := service.NewSystemService(db, map[string]bool{
		"stream":     true,
		"btc_unit":   true,
		"seed":       len(seedAssets) > 0,
		"refresh":    cfg.Market.RefreshCron != "",
		"custom_api": cfg.Market.APIKey != "",
	})

	hub := stream.NewHub(cfg.CORS.AllowedOrigins, logger)
	defer hub.Close()

	refresher := scheduler.NewMarketRefresher(
		marketService,
		portfolioService,
		hub,
		cfg.Market.RefreshCron,
		cfg.Market.ListLimit,
		logger,
	)

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Market:      marketService,
		Chart:       chartService,
		Portfolio:   portfolioService,
		Preferences: preferenceService,
		Dashboard:   dashboardService,
		Stream:      hub,
	}, cfg, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("starting crypto dashboard", zap.String("version", version.Version))

	return app.NewApp().
		WithService(app.NewHTTPServer(server, logger)).
		WithService(refresher).
		WithService(app.Interrupter{}).
		Run(ctx)
}
