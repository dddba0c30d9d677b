package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/api"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/config"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/database"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/metrics"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/service"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/yahoo"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Open the session cache database and run migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	log.Info().Str("path", cfg.Database.Path).Msg("session cache database ready")

	// Create repositories
	sessionRepo := repository.NewSessionRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	dividendRepo := repository.NewDividendRepository(db)

	metricsRegistry := metrics.NewRegistry()
	yahooClient := yahoo.NewFinanceClient(cfg.Yahoo.BaseURL)

	// Create services
	systemService := service.NewSystemService(db)
	sessionService, err := service.NewSessionService(
		sessionRepo,
		cfg.Session.FernetKey,
		cfg.Session.TTL,
		metricsRegistry,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session service")
	}
	marketDataService := service.NewMarketDataService(
		sessionRepo,
		priceRepo,
		dividendRepo,
		yahooClient,
		metricsRegistry,
	)
	dashboardService := service.NewDashboardService(priceRepo, dividendRepo)

	// Session janitor: purge expired sessions and their cached tables
	janitor := cron.New()
	_, err = janitor.AddFunc("@every "+cfg.Session.SweepInterval.String(), func() {
		if _, err := sessionService.PurgeExpired(context.Background()); err != nil {
			log.Error().Err(err).Msg("session sweep failed")
		}
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to schedule session janitor")
	}
	janitor.Start()
	defer janitor.Stop()

	// Create router
	router := api.NewRouter(systemService, sessionService, marketDataService, dashboardService, metricsRegistry, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // fetch batches block on Yahoo
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
