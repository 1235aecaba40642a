package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	invoicedomain "github.com/hfsdouglas/microsservicos-escalaveis/internal/invoices/domain"
	orderdomain "github.com/hfsdouglas/microsservicos-escalaveis/internal/orders/domain"
	"github.com/hfsdouglas/microsservicos-escalaveis/pkg/metrics"
)

// ledgerRepo mimics the transactional dedup behavior of the real store.
type ledgerRepo struct {
	invoices map[string]invoicedomain.Invoice // keyed by source order id
	err      error
}

func newLedgerRepo() *ledgerRepo {
	return &ledgerRepo{invoices: map[string]invoicedomain.Invoice{}}
}

func (r *ledgerRepo) CreateFromOrder(_ context.Context, orderID string, inv invoicedomain.Invoice) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	if _, ok := r.invoices[orderID]; ok {
		return false, nil
	}
	r.invoices[orderID] = inv
	return true, nil
}

func newTestService(repo InvoiceRepository) (*Service, *metrics.Invoices) {
	m := &metrics.Invoices{
		InvoicesCreated:     prometheus.NewCounter(prometheus.CounterOpts{Name: "test_invoices_created"}),
		DuplicateDeliveries: prometheus.NewCounter(prometheus.CounterOpts{Name: "test_duplicate_deliveries"}),
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(log, repo, m), m
}

func event(orderID string, amount float64) orderdomain.OrderCreated {
	return orderdomain.OrderCreated{
		OrderID: orderID,
		Amount:  amount,
		Client:  orderdomain.ClientRef{ID: "client-" + orderID},
	}
}

func TestProcessCreatesInvoice(t *testing.T) {
	repo := newLedgerRepo()
	svc, m := newTestService(repo)

	created, err := svc.Process(context.Background(), event("o1", 10.5))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !created {
		t.Fatal("expected invoice to be created")
	}

	inv := repo.invoices["o1"]
	if got := inv.Amount.StringFixed(2); got != "10.50" {
		t.Errorf("amount = %s, want 10.50", got)
	}
	if inv.Client != "client-o1" {
		t.Errorf("client = %s", inv.Client)
	}
	if got := testutil.ToFloat64(m.InvoicesCreated); got != 1 {
		t.Errorf("invoices created = %v, want 1", got)
	}
}

func TestProcessIsIdempotent(t *testing.T) {
	repo := newLedgerRepo()
	svc, m := newTestService(repo)

	ev := event("o1", 10.5)
	for i := 0; i < 5; i++ {
		if _, err := svc.Process(context.Background(), ev); err != nil {
			t.Fatalf("delivery %d: %v", i+1, err)
		}
	}

	if len(repo.invoices) != 1 {
		t.Fatalf("invoice rows = %d, want 1", len(repo.invoices))
	}
	if got := testutil.ToFloat64(m.DuplicateDeliveries); got != 4 {
		t.Errorf("duplicates absorbed = %v, want 4", got)
	}
}

func TestProcessPersistenceErrorPropagates(t *testing.T) {
	repo := newLedgerRepo()
	repo.err = errors.New("pg down")
	svc, _ := newTestService(repo)

	if _, err := svc.Process(context.Background(), event("o1", 10.5)); err == nil {
		t.Fatal("expected error so the message stays unacknowledged")
	}
}

func TestProcessKeepsOrdersIsolated(t *testing.T) {
	// Interleaved and duplicated deliveries for two orders must never
	// cross-contaminate invoice data.
	repo := newLedgerRepo()
	svc, _ := newTestService(repo)

	deliveries := []orderdomain.OrderCreated{
		event("a", 1.25),
		event("b", 99.99),
		event("a", 1.25),
		event("b", 99.99),
	}
	for _, ev := range deliveries {
		if _, err := svc.Process(context.Background(), ev); err != nil {
			t.Fatal(err)
		}
	}

	if len(repo.invoices) != 2 {
		t.Fatalf("invoice rows = %d, want 2", len(repo.invoices))
	}
	if got := repo.invoices["a"].Amount.StringFixed(2); got != "1.25" {
		t.Errorf("invoice for order a: amount = %s, want 1.25", got)
	}
	if got := repo.invoices["b"].Amount.StringFixed(2); got != "99.99" {
		t.Errorf("invoice for order b: amount = %s, want 99.99", got)
	}
	if repo.invoices["a"].Client != "client-a" || repo.invoices["b"].Client != "client-b" {
		t.Error("invoice client fields crossed between orders")
	}
}
