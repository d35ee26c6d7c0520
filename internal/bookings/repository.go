package bookings

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haqueashraful/bistro-server/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for bookings.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const bookingColumns = `id, email, date, time, guests, phone, is_pending, created_at`

func scanBooking(row pgx.Row) (Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.Email, &b.Date, &b.Time, &b.Guests, &b.Phone, &b.IsPending, &b.CreatedAt)
	return b, err
}

func (r *Repository) collect(rows pgx.Rows) ([]Booking, error) {
	defer rows.Close()
	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("bookings: scan: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bookings: rows: %w", err)
	}
	return out, nil
}

// List returns every booking, newest first.
func (r *Repository) List(ctx context.Context) ([]Booking, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("bookings: list: %w", err)
	}
	return r.collect(rows)
}

// ListByEmail returns the bookings owned by one email.
func (r *Repository) ListByEmail(ctx context.Context, email string) ([]Booking, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE email = $1 ORDER BY created_at DESC`, email)
	if err != nil {
		return nil, fmt.Errorf("bookings: list by email: %w", err)
	}
	return r.collect(rows)
}

// Create inserts a pending booking and returns it.
func (r *Repository) Create(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO bookings (email, date, time, guests, phone, is_pending, created_at)
		 VALUES ($1, $2, $3, $4, $5, TRUE, NOW())
		 RETURNING `+bookingColumns,
		req.Email, req.Date, req.Time, req.Guests, req.Phone)
	b, err := scanBooking(row)
	if err != nil {
		return nil, fmt.Errorf("bookings: create: %w", err)
	}
	return &b, nil
}

// Confirm flips is_pending to false. Confirming an already confirmed
// booking is a no-op that still returns the row; confirming a missing id
// reports not found.
func (r *Repository) Confirm(ctx context.Context, id int64) (*Booking, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE bookings SET is_pending = FALSE WHERE id = $1 RETURNING `+bookingColumns, id)
	b, err := scanBooking(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("bookings: confirm: %w", err)
	}
	return &b, nil
}

// CountByEmail returns how many bookings an email owns.
func (r *Repository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE email = $1`, email).Scan(&n); err != nil {
		return 0, fmt.Errorf("bookings: count: %w", err)
	}
	return n, nil
}
