package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hfsdouglas/microsservicos-escalaveis/internal/invoices/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// CreateFromOrder claims the order id in the dedup ledger and writes the
// invoice in the same transaction. The ledger insert uses ON CONFLICT DO
// NOTHING: zero rows affected means another delivery already claimed the
// order, so the invoice insert is skipped entirely. Both rows are durable
// together before the caller acknowledges the message.
func (r *Repository) CreateFromOrder(ctx context.Context, orderID string, inv domain.Invoice) (bool, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	ct, err := tx.Exec(ctx, `
		INSERT INTO processed_orders (order_id, invoice_id)
		VALUES ($1, $2)
		ON CONFLICT (order_id) DO NOTHING
	`, orderID, inv.ID)
	if err != nil {
		return false, err
	}
	if ct.RowsAffected() == 0 {
		return false, tx.Commit(ctx)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO invoices (id, client, amount)
		VALUES ($1, $2, $3)
	`, inv.ID, inv.Client, inv.Amount)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
