package application

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hfsdouglas/microsservicos-escalaveis/internal/orders/domain"
)

// CreateOrder is the validated form of a create-order request.
type CreateOrder struct {
	ClientID string
	Amount   decimal.Decimal
}

// ParseCreateOrder validates the raw request fields. The amount may arrive as
// a JSON number or a string ("10.5" and 10.5 are equivalent) and is
// normalized to two fractional digits; the client id must be a well-formed
// uuid. Pure: no I/O, no side effects.
func ParseCreateOrder(amount json.RawMessage, clientID string) (CreateOrder, error) {
	if len(amount) == 0 {
		return CreateOrder{}, domain.ErrInvalidAmount
	}

	var d decimal.Decimal
	if err := json.Unmarshal(amount, &d); err != nil {
		return CreateOrder{}, domain.ErrInvalidAmount
	}
	if d.IsNegative() {
		return CreateOrder{}, domain.ErrInvalidAmount
	}

	if _, err := uuid.Parse(clientID); err != nil {
		return CreateOrder{}, domain.ErrInvalidClientID
	}

	return CreateOrder{ClientID: clientID, Amount: d.Round(2)}, nil
}
