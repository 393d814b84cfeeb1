package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8081/forecast", cfg.ForecastBaseURL)
	assert.Equal(t, "94043,USA", cfg.ForecastLocation)
	assert.Equal(t, 14, cfg.ForecastDays)
	assert.Equal(t, "metric", cfg.ForecastUnits)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.InDelta(t, 0.1, cfg.FetchRateLimit, 1e-9)
	assert.Equal(t, 1, cfg.FetchRateBurst)
	assert.Equal(t, 3*time.Hour, cfg.SyncInterval)
	assert.Equal(t, "weather.db", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "forecast-snapshots", cfg.KafkaTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("FORECAST_BASE_URL", "https://andfun-weather.udacity.com/staticweather")
	t.Setenv("FORECAST_LOCATION", "London,UK")
	t.Setenv("FORECAST_DAYS", "7")
	t.Setenv("FORECAST_UNITS", "imperial")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("FETCH_RATE_LIMIT", "2.5")
	t.Setenv("FETCH_RATE_BURST", "3")
	t.Setenv("SYNC_INTERVAL", "30m")
	t.Setenv("DB_PATH", "/var/lib/sunshine/weather.db")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "custom-forecasts")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://andfun-weather.udacity.com/staticweather", cfg.ForecastBaseURL)
	assert.Equal(t, "London,UK", cfg.ForecastLocation)
	assert.Equal(t, 7, cfg.ForecastDays)
	assert.Equal(t, "imperial", cfg.ForecastUnits)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.InDelta(t, 2.5, cfg.FetchRateLimit, 1e-9)
	assert.Equal(t, 3, cfg.FetchRateBurst)
	assert.Equal(t, 30*time.Minute, cfg.SyncInterval)
	assert.Equal(t, "/var/lib/sunshine/weather.db", cfg.DBPath)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-forecasts", cfg.KafkaTopic)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		key, value string
	}{
		{"SHUTDOWN_TIMEOUT", "not-a-duration"},
		{"FETCH_TIMEOUT", "bad"},
		{"FETCH_TIMEOUT", "-1s"},
		{"SYNC_INTERVAL", "0s"},
		{"FORECAST_DAYS", "0"},
		{"FORECAST_DAYS", "17"},
		{"FORECAST_DAYS", "two"},
		{"FETCH_RATE_LIMIT", "0"},
		{"FETCH_RATE_LIMIT", "fast"},
		{"FETCH_RATE_BURST", "0"},
		{"FORECAST_UNITS", "kelvin"},
	}

	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}
