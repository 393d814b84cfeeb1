package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/sunshine-sync/internal/config"
	"github.com/couchcryptid/sunshine-sync/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// dayKeyLayout formats a row's day as its message key.
const dayKeyLayout = "2006-01-02"

// Writer publishes forecast snapshots to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured snapshot topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish writes one message per row of the snapshot in a single
// WriteMessages call. Rows keep their day as key, so a compacted topic
// retains the latest forecast for each day.
func (w *Writer) Publish(ctx context.Context, snap domain.Snapshot) error {
	if len(snap.Rows) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(snap.Rows))
	for i := range snap.Rows {
		msg, err := serializeToMessage(snap.Rows[i], snap.SyncedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d forecast messages: %w", len(msgs), err)
	}
	w.logger.Debug("snapshot published", "topic", w.writer.Topic, "rows", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a ForecastRow into a Kafka message.
func serializeToMessage(row domain.ForecastRow, syncedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize forecast row: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(row.Day().Format(dayKeyLayout)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "condition_id", Value: []byte(strconv.Itoa(row.ConditionID))},
			{Key: "synced_at", Value: []byte(syncedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
