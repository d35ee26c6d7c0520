package shared

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettlementKeyStore persists processed settlement keys so a retried
// checkout cannot double-charge or double-delete cart items.
type SettlementKeyStore struct {
	pool *pgxpool.Pool
}

// NewSettlementKeyStore constructs the store.
func NewSettlementKeyStore(pool *pgxpool.Pool) *SettlementKeyStore {
	return &SettlementKeyStore{pool: pool}
}

// ErrSettlementReplay indicates the settlement key was already processed.
var ErrSettlementReplay = errors.New("settlement already processed")

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

// Claim inserts the key, failing with ErrSettlementReplay on a duplicate.
// Called inside the settlement transaction so an aborted settlement releases
// its key automatically.
func (s *SettlementKeyStore) Claim(ctx context.Context, q Execer, key, module string) error {
	if s == nil {
		return errors.New("settlement key store not initialised")
	}
	if key == "" {
		return errors.New("settlement key required")
	}
	if module == "" {
		return errors.New("settlement module required")
	}
	_, err := q.Exec(ctx, `INSERT INTO settlement_keys (key, module, created_at) VALUES ($1, $2, $3)`, key, module, time.Now())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrSettlementReplay
		}
		return err
	}
	return nil
}

// Cleanup removes entries older than retention.
func (s *SettlementKeyStore) Cleanup(ctx context.Context, olderThan time.Duration) error {
	if s == nil {
		return nil
	}
	cutoff := time.Now().Add(-olderThan)
	_, err := s.pool.Exec(ctx, `DELETE FROM settlement_keys WHERE created_at < $1`, cutoff)
	return err
}

// Execer is satisfied by pgx pools and transactions alike.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}
