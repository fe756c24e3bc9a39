// internal/infrastructure/messaging/publisher.go
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// Event types published on the order topic
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the message body for order events
type OrderEvent struct {
	Type       string       `json:"type"`
	OrderID    string       `json:"orderId"`
	OccurredAt time.Time    `json:"occurredAt"`
	Order      *order.Order `json:"order"`
}

// Publisher emits order events
type Publisher interface {
	PublishOrderEvent(ctx context.Context, eventType string, o *order.Order) error
	Close() error
}

// NewPublisher returns a Kafka publisher when brokers are configured and a
// logging no-op otherwise
func NewPublisher(cfg *config.Config, log logrus.FieldLogger) Publisher {
	if len(cfg.External.Kafka.Brokers) == 0 {
		return &NoopPublisher{log: log.WithField("component", "events")}
	}
	return NewKafkaPublisher(cfg.External.Kafka.Brokers, cfg.External.Kafka.OrderTopic, log)
}

// messageWriter is the part of kafka.Writer we use
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes order events to a Kafka topic
type KafkaPublisher struct {
	writer messageWriter
	log    logrus.FieldLogger
}

// NewKafkaPublisher creates a publisher for topic on brokers
func NewKafkaPublisher(brokers []string, topic string, log logrus.FieldLogger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
		log: log.WithField("component", "events"),
	}
}

// PublishOrderEvent serialises the order and writes it keyed by event type and order id
func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, eventType string, o *order.Order) error {
	msg, err := newMessage(eventType, o)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s for %s: %w", eventType, o.ID, err)
	}

	p.log.WithFields(logrus.Fields{"event": eventType, "order_id": o.ID}).Debug("order event published")
	return nil
}

// Close flushes and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func newMessage(eventType string, o *order.Order) (kafka.Message, error) {
	body, err := json.Marshal(OrderEvent{
		Type:       eventType,
		OrderID:    o.ID,
		OccurredAt: time.Now().UTC(),
		Order:      o,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}
	return kafka.Message{
		Key:   []byte(fmt.Sprintf("%s.%s", eventType, o.ID)),
		Value: body,
	}, nil
}

// NoopPublisher logs events instead of sending them
type NoopPublisher struct {
	log logrus.FieldLogger
}

// PublishOrderEvent logs the event
func (p *NoopPublisher) PublishOrderEvent(_ context.Context, eventType string, o *order.Order) error {
	p.log.WithFields(logrus.Fields{"event": eventType, "order_id": o.ID}).Debug("no brokers configured, event dropped")
	return nil
}

// Close is a no-op
func (p *NoopPublisher) Close() error { return nil }
