package kafka

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/sunshine-sync/internal/config"
	"github.com/couchcryptid/sunshine-sync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	syncedAt := time.Date(2026, time.October, 14, 15, 10, 0, 0, time.UTC)
	row := domain.ForecastRow{
		Date:        time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC).UnixMilli(),
		ConditionID: 800,
		MinTemp:     18,
		MaxTemp:     30,
		Humidity:    50,
		Pressure:    1012,
		WindSpeed:   3.5,
		WindDegrees: 180,
	}

	msg, err := serializeToMessage(row, syncedAt)
	require.NoError(t, err)

	assert.Equal(t, []byte("2026-10-15"), msg.Key)
	assert.JSONEq(t, `{"date":1792022400000,"weather_id":800,"min":18,"max":30,"humidity":50,"pressure":1012,"wind_speed":3.5,"degrees":180}`, string(msg.Value))
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "condition_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("800"), msg.Headers[0].Value)
	assert.Equal(t, "synced_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2026-10-14T15:10:00Z"), msg.Headers[1].Value)
}

func TestWriter_PublishEmptySnapshotSkipsBroker(t *testing.T) {
	// No broker is listening; an empty snapshot must not try to reach one.
	w := NewWriter(&config.Config{KafkaBrokers: []string{"127.0.0.1:1"}, KafkaTopic: "forecast-snapshots"},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = w.Close() })

	assert.NoError(t, w.Publish(context.Background(), domain.Snapshot{SyncedAt: time.Now()}))
}
