//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/sunshine-sync/internal/adapter/kafka"
	"github.com/couchcryptid/sunshine-sync/internal/adapter/openweather"
	"github.com/couchcryptid/sunshine-sync/internal/adapter/sqlite"
	"github.com/couchcryptid/sunshine-sync/internal/config"
	"github.com/couchcryptid/sunshine-sync/internal/domain"
	"github.com/couchcryptid/sunshine-sync/internal/observability"
	"github.com/couchcryptid/sunshine-sync/internal/pipeline"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testSnapshotTopic = "test-forecast-snapshots"

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("sunshine-test"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestSyncPublishesSnapshot runs a full cycle against a real broker and reads
// back one message per forecast day.
func TestSyncPublishesSnapshot(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSnapshotTopic)

	clock := clockwork.NewFakeClockAt(syncNow)
	up := newUpstream(t, loadFixture(t))

	store, err := sqlite.Open(ctx, t.TempDir()+"/weather.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cfg := &config.Config{
		KafkaBrokers: []string{broker},
		KafkaTopic:   testSnapshotTopic,
	}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	client := openweather.NewClient(up.URL(), "94043,USA", 14, 5*time.Second, metrics, discardLogger())
	p := pipeline.New(client, store, writer, discardLogger(), metrics, time.Hour, pipeline.WithClock(clock))

	res := p.SyncWeather(ctx)
	require.Equal(t, domain.StatusSynced, res.Status, "sync error: %v", res.Err)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSnapshotTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	keys := make([]string, 0, res.Rows)
	for range res.Rows {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read snapshot message")

		headers := make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		_, err = time.Parse(time.RFC3339, headers["synced_at"])
		assert.NoError(t, err, "synced_at should be valid RFC3339")
		assert.NotEmpty(t, headers["condition_id"])

		var row domain.ForecastRow
		require.NoError(t, json.Unmarshal(msg.Value, &row))
		assert.Equal(t, row.Day().Format("2006-01-02"), string(msg.Key))
		keys = append(keys, string(msg.Key))
	}

	assert.Equal(t, "2026-10-14", keys[0])
	assert.Equal(t, "2026-10-27", keys[len(keys)-1])
}
