package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending  OrderStatus = "pending"
	StatusPaid     OrderStatus = "paid"
	StatusCanceled OrderStatus = "canceled"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrInvalidAmount   = errors.New("amount must be a non-negative number")
	ErrInvalidClientID = errors.New("clientId must be a valid uuid")
)

type Client struct {
	ID   string
	Name string
}

type Order struct {
	ID        string
	ClientID  string
	Amount    decimal.Decimal
	Status    OrderStatus
	CreatedAt time.Time
}

// NewOrder mints a pending order. The amount is normalized to two fractional
// digits here so the stored row and the published event always agree,
// whatever precision the request arrived with.
func NewOrder(clientID string, amount decimal.Decimal) Order {
	return Order{
		ID:       uuid.NewString(),
		ClientID: clientID,
		Amount:   amount.Round(2),
		Status:   StatusPending,
	}
}
