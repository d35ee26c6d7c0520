// Package reviews stores customer reviews. Deliberately thin: a repository
// and a handler, no intermediate service.
package reviews

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Review is one customer review.
type Review struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Details   string    `json:"details"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository provides PostgreSQL backed persistence for reviews.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all reviews, newest first.
func (r *Repository) List(ctx context.Context) ([]Review, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, email, name, details, rating, created_at FROM reviews ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("reviews: list: %w", err)
	}
	defer rows.Close()
	var out []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.Email, &rv.Name, &rv.Details, &rv.Rating, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("reviews: scan: %w", err)
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reviews: list rows: %w", err)
	}
	return out, nil
}

// Create inserts a review and returns its id.
func (r *Repository) Create(ctx context.Context, email, name, details string, rating float64) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO reviews (email, name, details, rating, created_at) VALUES ($1, $2, $3, $4, NOW()) RETURNING id`,
		email, name, details, rating).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("reviews: create: %w", err)
	}
	return id, nil
}
