// Package menu manages the restaurant menu catalogue. Reads are public and
// served through a Redis cache; writes are admin-only and invalidate it.
package menu

import "time"

// Item is one menu entry.
type Item struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Recipe    string    `json:"recipe"`
	Image     string    `json:"image"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateItemRequest carries the fields accepted on item creation.
type CreateItemRequest struct {
	Name     string  `json:"name" validate:"required"`
	Recipe   string  `json:"recipe"`
	Image    string  `json:"image"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
}

// UpdateItemRequest carries a partial update; nil fields stay untouched.
type UpdateItemRequest struct {
	Name     *string  `json:"name"`
	Recipe   *string  `json:"recipe"`
	Image    *string  `json:"image"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
}
