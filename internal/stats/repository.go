package stats

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository runs the aggregate queries.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("stats: %w", err)
	}
	return n, nil
}

// CountUsers returns the number of registered accounts.
func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users`)
}

// CountMenuItems returns the catalogue size.
func (r *Repository) CountMenuItems(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM menu_items`)
}

// CountPayments returns the number of recorded checkouts.
func (r *Repository) CountPayments(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM payments`)
}

// SumRevenue totals the price across all payments. An empty store sums to
// zero rather than erroring.
func (r *Repository) SumRevenue(ctx context.Context) (float64, error) {
	var total float64
	if err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(price), 0) FROM payments`).Scan(&total); err != nil {
		return 0, fmt.Errorf("stats: revenue: %w", err)
	}
	return total, nil
}

// CountPaymentsByEmail returns checkout count for one email.
func (r *Repository) CountPaymentsByEmail(ctx context.Context, email string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM payments WHERE email = $1`, email)
}

// CountOrderedItemsByEmail totals the menu items across one email's
// checkouts.
func (r *Repository) CountOrderedItemsByEmail(ctx context.Context, email string) (int64, error) {
	return r.count(ctx, `SELECT COALESCE(SUM(CARDINALITY(menu_item_ids)), 0) FROM payments WHERE email = $1`, email)
}

// CountBookingsByEmail returns booking count for one email.
func (r *Repository) CountBookingsByEmail(ctx context.Context, email string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM bookings WHERE email = $1`, email)
}

// CountReviewsByEmail returns review count for one email.
func (r *Repository) CountReviewsByEmail(ctx context.Context, email string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM reviews WHERE email = $1`, email)
}
