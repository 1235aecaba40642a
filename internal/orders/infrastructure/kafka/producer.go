package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/hfsdouglas/microsservicos-escalaveis/internal/orders/domain"
	"github.com/hfsdouglas/microsservicos-escalaveis/pkg/tracing"
)

// Publisher writes order-created events to the broker. RequireAll means a
// nil return from Publish implies the broker has durably accepted the
// message. Retrying is the caller's decision.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        domain.TopicOrderCreated,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, event domain.OrderCreated) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		// The order id doubles as the idempotency key on the consumer side.
		Key:     []byte(event.OrderID),
		Value:   payload,
		Headers: tracing.InjectKafkaHeaders(ctx, nil),
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
