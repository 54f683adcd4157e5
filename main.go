package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	appLogger "github.com/FACorreiaa/travel-recommendation-api/app/logger"
	"github.com/FACorreiaa/travel-recommendation-api/app/observability/metrics"
	"github.com/FACorreiaa/travel-recommendation-api/app/tracer"
	"github.com/FACorreiaa/travel-recommendation-api/config"
	"github.com/FACorreiaa/travel-recommendation-api/internal/api/destinations"
	generativeAI "github.com/FACorreiaa/travel-recommendation-api/internal/api/generative_ai"
	"github.com/FACorreiaa/travel-recommendation-api/internal/api/itinerary"
	"github.com/FACorreiaa/travel-recommendation-api/internal/api/photos"
	"github.com/FACorreiaa/travel-recommendation-api/internal/api/search"
	"github.com/FACorreiaa/travel-recommendation-api/internal/api/weather"
	api "github.com/FACorreiaa/travel-recommendation-api/internal/router"
)

func main() {
	// --- Initial Loading ---
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	// --- Logger Setup ---
	logger := setupLogger()
	slog.SetDefault(logger)

	// --- Application Context & Shutdown ---
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Observability ---
	tracer.InitTracingAndMetrics(cfg.Handlers.Prometheus.Port)
	metrics.InitAppMetrics()

	// --- Provider Clients (explicit construction, no hidden module state) ---
	aiClient, err := generativeAI.NewAIClient(ctx,
		cfg.Providers.Gemini.APIKey, cfg.Providers.Gemini.Model, cfg.Providers.Gemini.Temperature)
	if err != nil {
		logger.Error("Failed to initialize generative AI client", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.Providers.Gemini.APIKey == "" {
		logger.Warn("GOOGLE_GEMINI_API_KEY not set; generation will return empty results")
	}

	searchClient := search.NewClient(cfg.Providers.Search.BaseURL, cfg.Providers.Search.APIKey,
		cfg.Providers.Search.MaxResults, cfg.Providers.Search.Timeout)
	photoClient := photos.NewClient(cfg.Providers.Photos.BaseURL, cfg.Providers.Photos.AccessKey,
		cfg.Providers.Photos.Timeout, logger)
	weatherClient := weather.NewClient(cfg.Providers.Weather.GeocodingURL, cfg.Providers.Weather.ForecastURL,
		cfg.Providers.Weather.Timeout, logger)

	// --- Pipelines & Handlers ---
	destinationService := destinations.NewServiceImpl(aiClient, searchClient, photoClient, weatherClient, logger)
	destinationHandler := destinations.NewHandlerImpl(destinationService, logger)

	itineraryService := itinerary.NewServiceImpl(aiClient, searchClient, photoClient, logger)
	itineraryHandler := itinerary.NewHandlerImpl(itineraryService, logger)

	// --- Router Setup ---
	routerConfig := &api.Config{
		DestinationsHandler: destinationHandler,
		ItineraryHandler:    itineraryHandler,
	}
	mainRouter := api.SetupRouter(routerConfig)

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appLogger.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(middleware.Compress(5, "application/json"))
	router.Mount("/", mainRouter)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		slog.InfoContext(r.Context(), "Root endpoint hit")
		w.Write([]byte("Travel Recommendation AI Server is running"))
	})

	// --- HTTP Server Setup ---
	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	// --- Start Server Goroutine ---
	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	// --- Wait for Shutdown Signal ---
	<-ctx.Done()

	// --- Graceful Shutdown ---
	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" { // Default to development if not set
		// Colored logs for development
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		// JSON logs for production or other environments
		jsonOpts := &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: false,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
