package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultMinInterval    = 5 * time.Minute
	defaultRequestTimeout = 30 * time.Second
	defaultResultsTopic   = "stressindex.results"
	defaultAlertTopic     = "stressindex/alerts"
	defaultMQTTClientID   = "stress-watcher"
)

// Config holds runtime configuration for the watcher service.
type Config struct {
	DatabaseURL    string
	SnapshotURL    string
	MinInterval    time.Duration
	RequestTimeout time.Duration
	KafkaBrokers   []string
	ResultsTopic   string
	MQTTBrokerURL  string
	AlertTopic     string
	MQTTClientID   string
	DryRun         bool
	LogLevel       string
	LogFormat      string
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	cfg.SnapshotURL = strings.TrimSpace(os.Getenv("SNAPSHOT_URL"))
	if cfg.SnapshotURL == "" {
		return cfg, errors.New("SNAPSHOT_URL is required")
	}

	cfg.MinInterval = defaultMinInterval
	if v := strings.TrimSpace(os.Getenv("WATCHER_MIN_INTERVAL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid WATCHER_MIN_INTERVAL: %w", err)
		}
		if d < 0 {
			return cfg, fmt.Errorf("invalid WATCHER_MIN_INTERVAL: negative duration %s", d)
		}
		cfg.MinInterval = d
	}

	cfg.RequestTimeout = defaultRequestTimeout
	if v := strings.TrimSpace(os.Getenv("WATCHER_REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid WATCHER_REQUEST_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return cfg, fmt.Errorf("invalid WATCHER_REQUEST_TIMEOUT: must be positive, got %s", d)
		}
		cfg.RequestTimeout = d
	}

	cfg.KafkaBrokers = splitList(os.Getenv("KAFKA_BROKERS"))
	cfg.ResultsTopic = envOr("KAFKA_RESULTS_TOPIC", defaultResultsTopic)

	cfg.MQTTBrokerURL = strings.TrimSpace(os.Getenv("MQTT_BROKER_URL"))
	cfg.AlertTopic = envOr("MQTT_ALERT_TOPIC", defaultAlertTopic)
	cfg.MQTTClientID = envOr("MQTT_CLIENT_ID", defaultMQTTClientID)

	dryRun := strings.TrimSpace(os.Getenv("DRY_RUN"))
	cfg.DryRun = dryRun == "1" || strings.EqualFold(dryRun, "true")

	cfg.LogLevel = envOr("LOG_LEVEL", "info")
	cfg.LogFormat = envOr("LOG_FORMAT", "json")

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
