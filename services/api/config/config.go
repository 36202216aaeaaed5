package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds environment-driven settings for the REST API.
type Config struct {
	DatabaseURL  string
	Port         int
	BearerToken  string
	JWTSecret    string
	DefaultLimit int
	TrendWindow  int
	LogLevel     string
	LogFormat    string
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:         8080,
		DefaultLimit: 200,
		TrendWindow:  20,
		LogLevel:     "info",
		LogFormat:    "json",
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := positiveInt("PORT", portStr)
		if err != nil {
			return cfg, err
		}
		cfg.Port = port
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		port, err := positiveInt("API_PORT", portStr)
		if err != nil {
			return cfg, err
		}
		cfg.Port = port
	}

	if limitStr := os.Getenv("API_DEFAULT_LIMIT"); limitStr != "" {
		limit, err := positiveInt("API_DEFAULT_LIMIT", limitStr)
		if err != nil {
			return cfg, err
		}
		cfg.DefaultLimit = limit
	}

	if windowStr := os.Getenv("API_TREND_WINDOW"); windowStr != "" {
		window, err := positiveInt("API_TREND_WINDOW", windowStr)
		if err != nil {
			return cfg, err
		}
		cfg.TrendWindow = window
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.LogFormat = format
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")
	cfg.JWTSecret = os.Getenv("API_JWT_SECRET")

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func positiveInt(name, raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %d", name, v)
	}
	return v, nil
}
