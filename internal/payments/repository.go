package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haqueashraful/bistro-server/internal/platform/db"
	"github.com/haqueashraful/bistro-server/internal/platform/httpx"
	"github.com/haqueashraful/bistro-server/internal/shared"
)

// Repository provides PostgreSQL backed persistence for payments.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxStore exposes the operations the settlement transaction needs.
type TxStore interface {
	ClaimKey(ctx context.Context, key string) error
	InsertPayment(ctx context.Context, p Payment) (int64, error)
	DeleteCartItems(ctx context.Context, ids []int64, email string) (int64, error)
}

const paymentColumns = `id, settlement_id, email, price, transaction_id, cart_ids, menu_item_ids, status, created_at`

func scanPayment(row pgx.Row) (Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.SettlementID, &p.Email, &p.Price, &p.TransactionID, &p.CartIDs, &p.MenuItemIDs, &p.Status, &p.CreatedAt)
	return p, err
}

// ListByEmail returns payments owned by one email, newest first.
func (r *Repository) ListByEmail(ctx context.Context, email string) ([]Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE email = $1 ORDER BY created_at DESC`, email)
	if err != nil {
		return nil, fmt.Errorf("payments: list: %w", err)
	}
	defer rows.Close()
	var out []Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("payments: scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("payments: list rows: %w", err)
	}
	return out, nil
}

// GetBySettlementID returns the payment recorded for a settlement key.
func (r *Repository) GetBySettlementID(ctx context.Context, settlementID string) (*Payment, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE settlement_id = $1`, settlementID)
	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("payments: get by settlement id: %w", err)
	}
	return &p, nil
}

// WithTx runs fn against a transactional store; commit happens only when fn
// returns nil. The settlement key claim shares the transaction, so an
// aborted settlement releases its key automatically.
func (r *Repository) WithTx(ctx context.Context, keys *shared.SettlementKeyStore, fn func(TxStore) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&txStore{tx: tx, keys: keys})
	})
}

type txStore struct {
	tx   pgx.Tx
	keys *shared.SettlementKeyStore
}

func (s *txStore) ClaimKey(ctx context.Context, key string) error {
	return s.keys.Claim(ctx, s.tx, key, "payments")
}

func (s *txStore) InsertPayment(ctx context.Context, p Payment) (int64, error) {
	var id int64
	err := s.tx.QueryRow(ctx,
		`INSERT INTO payments (settlement_id, email, price, transaction_id, cart_ids, menu_item_ids, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW()) RETURNING id`,
		p.SettlementID, p.Email, p.Price, p.TransactionID, p.CartIDs, p.MenuItemIDs, p.Status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("payments: insert: %w", err)
	}
	return id, nil
}

// DeleteCartItems removes the purchased rows. The owner email is part of
// the predicate: a payment can only consume cart rows owned by its payer.
func (s *txStore) DeleteCartItems(ctx context.Context, ids []int64, email string) (int64, error) {
	tag, err := s.tx.Exec(ctx, `DELETE FROM cart_items WHERE id = ANY($1) AND email = $2`, ids, email)
	if err != nil {
		return 0, fmt.Errorf("payments: delete cart items: %w", err)
	}
	return tag.RowsAffected(), nil
}
