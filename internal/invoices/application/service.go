package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	invoicedomain "github.com/hfsdouglas/microsservicos-escalaveis/internal/invoices/domain"
	orderdomain "github.com/hfsdouglas/microsservicos-escalaveis/internal/orders/domain"
	"github.com/hfsdouglas/microsservicos-escalaveis/pkg/metrics"
)

type Service struct {
	log     *slog.Logger
	repo    InvoiceRepository
	metrics *metrics.Invoices
}

func NewService(log *slog.Logger, repo InvoiceRepository, m *metrics.Invoices) *Service {
	return &Service{log: log, repo: repo, metrics: m}
}

// Process turns an order-created event into exactly one invoice. A redelivery
// of an already-processed order is absorbed silently and reported as handled
// so the consumer acknowledges it; any persistence error propagates so the
// message stays unacknowledged and the broker redelivers.
func (s *Service) Process(ctx context.Context, event orderdomain.OrderCreated) (created bool, err error) {
	inv := invoicedomain.NewInvoice(event.Client.ID, decimal.NewFromFloat(event.Amount))

	created, err = s.repo.CreateFromOrder(ctx, event.OrderID, inv)
	if err != nil {
		return false, fmt.Errorf("create invoice for order %s: %w", event.OrderID, err)
	}
	if !created {
		s.metrics.DuplicateDeliveries.Inc()
		s.log.Info("duplicate order-created delivery absorbed", "order_id", event.OrderID)
		return false, nil
	}

	s.metrics.InvoicesCreated.Inc()
	s.log.Info("invoice created", "order_id", event.OrderID, "invoice_id", inv.ID)
	return true, nil
}
