package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haqueashraful/bistro-server/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for menu items.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const itemColumns = `id, name, recipe, image, category, price, created_at, updated_at`

func scanItem(row pgx.Row) (Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.Name, &it.Recipe, &it.Image, &it.Category, &it.Price, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}

// List returns the full menu ordered by id.
func (r *Repository) List(ctx context.Context) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+itemColumns+` FROM menu_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("menu: list: %w", err)
	}
	defer rows.Close()
	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("menu: scan: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("menu: list rows: %w", err)
	}
	return out, nil
}

// Get returns one item by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Item, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM menu_items WHERE id = $1`, id)
	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("menu: get: %w", err)
	}
	return &it, nil
}

// Create inserts a new item and returns its id.
func (r *Repository) Create(ctx context.Context, req CreateItemRequest) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO menu_items (name, recipe, image, category, price, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW(), NOW()) RETURNING id`,
		req.Name, req.Recipe, req.Image, req.Category, req.Price).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("menu: create: %w", err)
	}
	return id, nil
}

// Update applies a partial update; absent fields stay untouched.
func (r *Repository) Update(ctx context.Context, id int64, req UpdateItemRequest) error {
	sets := []string{"updated_at = NOW()"}
	args := []any{}
	add := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Recipe != nil {
		add("recipe", *req.Recipe)
	}
	if req.Image != nil {
		add("image", *req.Image)
	}
	if req.Category != nil {
		add("category", *req.Category)
	}
	if req.Price != nil {
		add("price", *req.Price)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE menu_items SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("menu: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// Delete removes an item.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("menu: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
