package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is owned exclusively by the invoices store. Client is denormalized
// free text, not a foreign key: the invoices service never reads the orders
// database.
type Invoice struct {
	ID        string
	Client    string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

func NewInvoice(client string, amount decimal.Decimal) Invoice {
	return Invoice{
		ID:     uuid.NewString(),
		Client: client,
		Amount: amount.Round(2),
	}
}
