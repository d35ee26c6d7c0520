// Package carts manages per-user shopping carts. Cart rows are owned by an
// email; settlement removes them in bulk inside the payments transaction.
package carts

import "time"

// CartItem is one menu item placed in a user's cart.
type CartItem struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	MenuItemID int64     `json:"menuItemId"`
	Name       string    `json:"name"`
	Image      string    `json:"image"`
	Price      float64   `json:"price"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AddItemRequest carries the fields accepted when adding to a cart.
type AddItemRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	MenuItemID int64   `json:"menuItemId" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	Image      string  `json:"image"`
	Price      float64 `json:"price" validate:"gte=0"`
}
