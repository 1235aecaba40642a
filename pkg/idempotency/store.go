package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a fast-path cache of already-processed order ids in front of the
// durable dedup ledger. It is advisory only: a cache miss or a Redis error
// falls through to the ledger, and entries are written strictly after the
// invoice write has committed. Writing the key earlier would let a crash
// between the check and the commit drop the event.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) Key(orderID string) string {
	return fmt.Sprintf("invoices:processed:%s", orderID)
}

// Seen reports whether the order id is known to be processed. It never
// claims a key it has not stored.
func (s *Store) Seen(ctx context.Context, orderID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.Key(orderID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkProcessed records the order id after its invoice is durable.
func (s *Store) MarkProcessed(ctx context.Context, orderID string) error {
	return s.rdb.Set(ctx, s.Key(orderID), "1", s.ttl).Err()
}
