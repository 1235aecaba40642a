package application

import (
	"context"

	"github.com/hfsdouglas/microsservicos-escalaveis/internal/orders/domain"
)

type OrderRepository interface {
	ClientExists(ctx context.Context, clientID string) (bool, error)
	// Insert persists the order and returns the row as stored, including the
	// server-assigned creation timestamp.
	Insert(ctx context.Context, o domain.Order) (domain.Order, error)
}

// EventPublisher submits an order-created event for durable delivery. A nil
// return means the broker accepted the message; the publisher itself never
// retries.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.OrderCreated) error
}
