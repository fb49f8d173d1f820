package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Provider selection values for WEATHER_PROVIDER.
const (
	ProviderWeatherAPI  = "weatherapi"
	ProviderOpenWeather = "openweathermap"
)

type AppConfig struct {
	// Provider selects the upstream forecast source.
	Provider          string
	WeatherAPIKey     string
	OpenWeatherAPIKey string

	// DatabaseURL enables the PostgreSQL preference store; when empty the
	// in-memory store is used instead.
	DatabaseURL string

	// HTTPTimeout bounds outbound provider calls.
	HTTPTimeout time.Duration

	// ForecastMaxAge is how long a cached forecast document stays fresh.
	ForecastMaxAge time.Duration

	// RefreshInterval controls how often the scheduler warms the cache.
	RefreshInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")

	cfg.Provider = getenvDefault("WEATHER_PROVIDER", ProviderWeatherAPI)
	switch cfg.Provider {
	case ProviderWeatherAPI, ProviderOpenWeather:
	default:
		return nil, fmt.Errorf("invalid WEATHER_PROVIDER: %q", cfg.Provider)
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	timeout, err := parseDurationEnv("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	maxAge, err := parseDurationEnv("FORECAST_MAX_AGE", "15m")
	if err != nil {
		return nil, err
	}
	cfg.ForecastMaxAge = maxAge

	interval, err := parseDurationEnv("REFRESH_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = interval

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func parseDurationEnv(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
