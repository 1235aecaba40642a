package application

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/hfsdouglas/microsservicos-escalaveis/internal/orders/domain"
)

const validClientID = "0b1f4bb2-55c1-4bd0-9a3d-1d5a8f9f7a10"

func TestParseCreateOrder(t *testing.T) {
	tests := []struct {
		name       string
		amount     string
		clientID   string
		wantAmount string
		wantErr    error
	}{
		{"number amount", `10.5`, validClientID, "10.50", nil},
		{"string amount", `"10.5"`, validClientID, "10.50", nil},
		{"rounds extra precision", `10.499`, validClientID, "10.50", nil},
		{"zero amount", `0`, validClientID, "0.00", nil},
		{"negative amount", `-1`, validClientID, "", domain.ErrInvalidAmount},
		{"non-numeric amount", `"abc"`, validClientID, "", domain.ErrInvalidAmount},
		{"missing amount", ``, validClientID, "", domain.ErrInvalidAmount},
		{"bad client id", `10.5`, "not-a-uuid", "", domain.ErrInvalidClientID},
		{"empty client id", `10.5`, "", "", domain.ErrInvalidClientID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseCreateOrder(json.RawMessage(tt.amount), tt.clientID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := req.Amount.StringFixed(2); got != tt.wantAmount {
				t.Errorf("amount = %s, want %s", got, tt.wantAmount)
			}
			if req.ClientID != tt.clientID {
				t.Errorf("clientID = %s", req.ClientID)
			}
		})
	}
}
