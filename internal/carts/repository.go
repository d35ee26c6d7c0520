package carts

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haqueashraful/bistro-server/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for cart items.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListByEmail returns the cart rows owned by one email.
func (r *Repository) ListByEmail(ctx context.Context, email string) ([]CartItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, email, menu_item_id, name, image, price, created_at
		 FROM cart_items WHERE email = $1 ORDER BY id`, email)
	if err != nil {
		return nil, fmt.Errorf("carts: list: %w", err)
	}
	defer rows.Close()
	var out []CartItem
	for rows.Next() {
		var it CartItem
		if err := rows.Scan(&it.ID, &it.Email, &it.MenuItemID, &it.Name, &it.Image, &it.Price, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("carts: scan: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("carts: list rows: %w", err)
	}
	return out, nil
}

// Add inserts a cart row and returns its id.
func (r *Repository) Add(ctx context.Context, req AddItemRequest) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO cart_items (email, menu_item_id, name, image, price, created_at)
		 VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id`,
		req.Email, req.MenuItemID, req.Name, req.Image, req.Price).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("carts: add: %w", err)
	}
	return id, nil
}

// Remove deletes one cart row, scoped to its owner. Deleting a row that
// does not exist (or belongs to someone else) reports not found.
func (r *Repository) Remove(ctx context.Context, id int64, email string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND email = $2`, id, email)
	if err != nil {
		return fmt.Errorf("carts: remove: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
