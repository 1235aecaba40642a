package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hfsdouglas/microsservicos-escalaveis/internal/orders/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) ClientExists(ctx context.Context, clientID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM clients WHERE id=$1)`, clientID).
		Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Insert stores the order and scans the row back, so callers build events
// from what the database holds rather than from the value they passed in.
func (r *Repository) Insert(ctx context.Context, o domain.Order) (domain.Order, error) {
	var stored domain.Order
	err := r.pool.QueryRow(ctx, `
		INSERT INTO orders (id, client_id, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, client_id, amount, status, created_at
	`, o.ID, o.ClientID, o.Amount, o.Status).
		Scan(&stored.ID, &stored.ClientID, &stored.Amount, &stored.Status, &stored.CreatedAt)
	if err != nil {
		return domain.Order{}, err
	}
	return stored, nil
}
