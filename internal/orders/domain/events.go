package domain

import (
	"encoding/json"
	"fmt"
)

// TopicOrderCreated is the broker topic carrying OrderCreated events.
const TopicOrderCreated = "order-created"

// ClientRef is the embedded client reference on the wire.
type ClientRef struct {
	ID string `json:"id"`
}

// OrderCreated is the contract between the orders and invoices services:
//
//	{ "orderId": "...", "amount": 10.5, "client": { "id": "..." } }
//
// It is built from the persisted order row, never from the raw request, so
// replays always carry the canonical stored amount.
type OrderCreated struct {
	OrderID string    `json:"orderId"`
	Amount  float64   `json:"amount"`
	Client  ClientRef `json:"client"`
}

// NewOrderCreated projects a committed order row onto the wire contract.
func NewOrderCreated(o Order) OrderCreated {
	return OrderCreated{
		OrderID: o.ID,
		Amount:  o.Amount.InexactFloat64(),
		Client:  ClientRef{ID: o.ClientID},
	}
}

// DecodeOrderCreated parses an event payload. Unknown fields are ignored for
// forward compatibility; a missing required field is a fatal decode error and
// the message must not be acknowledged.
func DecodeOrderCreated(payload []byte) (OrderCreated, error) {
	var raw struct {
		OrderID *string  `json:"orderId"`
		Amount  *float64 `json:"amount"`
		Client  *struct {
			ID *string `json:"id"`
		} `json:"client"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return OrderCreated{}, fmt.Errorf("decode order-created event: %w", err)
	}

	switch {
	case raw.OrderID == nil || *raw.OrderID == "":
		return OrderCreated{}, fmt.Errorf("decode order-created event: missing orderId")
	case raw.Amount == nil:
		return OrderCreated{}, fmt.Errorf("decode order-created event: missing amount")
	case *raw.Amount < 0:
		return OrderCreated{}, fmt.Errorf("decode order-created event: negative amount")
	case raw.Client == nil || raw.Client.ID == nil || *raw.Client.ID == "":
		return OrderCreated{}, fmt.Errorf("decode order-created event: missing client.id")
	}

	return OrderCreated{
		OrderID: *raw.OrderID,
		Amount:  *raw.Amount,
		Client:  ClientRef{ID: *raw.Client.ID},
	}, nil
}
