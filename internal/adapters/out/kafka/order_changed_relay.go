// Package kafka relays committed order snapshots to a Kafka topic so that
// other services (notifications, analytics) can follow order progress.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"foodorder/internal/core/ports"
)

// OrderChangedRelay publishes one message per committed order change.
// Messages are keyed by order ID so a partition preserves the per-order
// snapshot sequence. It implements ports.OrderStatusPublisher.
type OrderChangedRelay struct {
	writer *kafka.Writer
}

// NewOrderChangedRelay creates a relay writing to the given topic.
func NewOrderChangedRelay(brokers []string, topic string) *OrderChangedRelay {
	return &OrderChangedRelay{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           100 * time.Millisecond,
		},
	}
}

// Publish writes the snapshot as a JSON message keyed by order ID.
func (r *OrderChangedRelay) Publish(ctx context.Context, snapshot ports.OrderSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return r.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(snapshot.OrderID),
		Value: data,
		Time:  time.Now().UTC(),
	})
}

// Close flushes buffered messages and releases the writer.
func (r *OrderChangedRelay) Close() error {
	return r.writer.Close()
}
