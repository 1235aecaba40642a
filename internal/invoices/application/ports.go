package application

import (
	"context"

	"github.com/hfsdouglas/microsservicos-escalaveis/internal/invoices/domain"
)

type InvoiceRepository interface {
	// CreateFromOrder writes the invoice and the dedup ledger entry for the
	// source order id in one transaction. It returns false with a nil error
	// when the order id was already processed, leaving the store untouched.
	CreateFromOrder(ctx context.Context, orderID string, inv domain.Invoice) (created bool, err error)
}
