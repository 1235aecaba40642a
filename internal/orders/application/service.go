package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hfsdouglas/microsservicos-escalaveis/internal/orders/domain"
	"github.com/hfsdouglas/microsservicos-escalaveis/pkg/metrics"
)

const (
	publishAttempts = 3
	publishTimeout  = 5 * time.Second
	publishBackoff  = 100 * time.Millisecond
)

type Service struct {
	log       *slog.Logger
	repo      OrderRepository
	publisher EventPublisher
	metrics   *metrics.Orders
}

func NewService(log *slog.Logger, repo OrderRepository, publisher EventPublisher, m *metrics.Orders) *Service {
	return &Service{log: log, repo: repo, publisher: publisher, metrics: m}
}

// CreateOrder validates that the client exists, inserts the order, and then
// publishes the order-created event built from the persisted row.
//
// The insert is the durability boundary: once it commits, the order exists
// regardless of what happens to the publish. Publishing is retried a small
// bounded number of times; if the broker still refuses the message, the
// failure is logged and counted for reconciliation and the order is reported
// as created anyway. There is no transaction spanning the store and the
// broker, deliberately.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrder) (domain.Order, error) {
	exists, err := s.repo.ClientExists(ctx, req.ClientID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("check client: %w", err)
	}
	if !exists {
		return domain.Order{}, domain.ErrClientNotFound
	}

	stored, err := s.repo.Insert(ctx, domain.NewOrder(req.ClientID, req.Amount))
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}
	s.metrics.OrdersCreated.Inc()

	event := domain.NewOrderCreated(stored)
	if err := s.publishWithRetry(ctx, event); err != nil {
		s.metrics.PublishFailures.Inc()
		s.log.Error("order-created publish failed, order committed without event",
			"order_id", stored.ID, "err", err)
	}

	return stored, nil
}

func (s *Service) publishWithRetry(ctx context.Context, event domain.OrderCreated) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	var lastErr error
	backoff := publishBackoff
	for attempt := 1; attempt <= publishAttempts; attempt++ {
		lastErr = s.publisher.Publish(ctx, event)
		if lastErr == nil {
			return nil
		}
		s.log.Warn("order-created publish attempt failed",
			"order_id", event.OrderID, "attempt", attempt, "err", lastErr)

		if attempt == publishAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return lastErr
		case <-time.After(backoff):
			backoff *= 2
		}
	}
	return lastErr
}
