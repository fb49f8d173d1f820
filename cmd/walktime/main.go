package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	httpapi "github.com/alexkokkinos/walktime/internal/api/http"
	"github.com/alexkokkinos/walktime/internal/config"
	"github.com/alexkokkinos/walktime/internal/prefs"
	"github.com/alexkokkinos/walktime/internal/scheduler"
	"github.com/alexkokkinos/walktime/internal/store"
	"github.com/alexkokkinos/walktime/internal/walk"
	"github.com/alexkokkinos/walktime/internal/weather"
	"github.com/alexkokkinos/walktime/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Forecast provider with resilience (backoff + circuit breaker).
	var provider weather.Provider
	switch cfg.Provider {
	case config.ProviderOpenWeather:
		provider = providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey)
	default:
		provider = providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey)
	}

	// Preference store: PostgreSQL when configured, in-memory otherwise.
	var repo prefs.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer pool.Close()
		repo = prefs.NewPostgresRepository(pool)
	} else {
		log.Println("INFO: DATABASE_URL not set; using in-memory preference store")
		repo = prefs.NewMemoryRepository()
	}

	// Forecast cache with configured freshness window.
	cache := store.NewMemoryCache(cfg.ForecastMaxAge)

	// Core service: fetch, filter to remaining hours, score, select.
	service := walk.NewService(provider, cache)

	// Scheduler that keeps forecasts warm for stored preference locations.
	sched := scheduler.New(repo, cache, cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "walktime",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "walktime",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, repo)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
