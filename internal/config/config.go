package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	ForecastBaseURL  string
	ForecastLocation string
	ForecastDays     int
	ForecastUnits    string

	FetchTimeout   time.Duration
	FetchRateLimit float64
	FetchRateBurst int

	SyncInterval time.Duration
	DBPath       string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka snapshot publishing.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parsePositiveDuration("FETCH_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	syncInterval, err := parsePositiveDuration("SYNC_INTERVAL", "3h")
	if err != nil {
		return nil, err
	}

	days, err := parseIntInRange("FORECAST_DAYS", 14, 1, 16)
	if err != nil {
		return nil, err
	}

	burst, err := parseIntInRange("FETCH_RATE_BURST", 1, 1, 100)
	if err != nil {
		return nil, err
	}

	rateLimit := 0.1
	if s := os.Getenv("FETCH_RATE_LIMIT"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 {
			return nil, errors.New("invalid FETCH_RATE_LIMIT: must be a positive number of requests per second")
		}
		rateLimit = v
	}

	kafkaEnabled := false
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		ForecastBaseURL:  sharedcfg.EnvOrDefault("FORECAST_BASE_URL", "http://localhost:8081/forecast"),
		ForecastLocation: sharedcfg.EnvOrDefault("FORECAST_LOCATION", "94043,USA"),
		ForecastDays:     days,
		ForecastUnits:    sharedcfg.EnvOrDefault("FORECAST_UNITS", "metric"),
		FetchTimeout:     fetchTimeout,
		FetchRateLimit:   rateLimit,
		FetchRateBurst:   burst,
		SyncInterval:     syncInterval,
		DBPath:           sharedcfg.EnvOrDefault("DB_PATH", "weather.db"),
		HTTPAddr:         sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:         sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:        sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,

		KafkaEnabled: kafkaEnabled,
		KafkaBrokers: sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "forecast-snapshots"),
	}

	if cfg.ForecastBaseURL == "" {
		return nil, errors.New("FORECAST_BASE_URL is required")
	}
	if cfg.ForecastLocation == "" {
		return nil, errors.New("FORECAST_LOCATION is required")
	}
	if cfg.ForecastUnits != "metric" && cfg.ForecastUnits != "imperial" {
		return nil, fmt.Errorf("invalid FORECAST_UNITS %q: want metric or imperial", cfg.ForecastUnits)
	}
	if cfg.DBPath == "" {
		return nil, errors.New("DB_PATH is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is empty")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive duration", key)
	}
	return d, nil
}

func parseIntInRange(key string, def, lo, hi int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("invalid %s: must be an integer between %d and %d", key, lo, hi)
	}
	return n, nil
}
