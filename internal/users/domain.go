package users

import (
	"time"

	"github.com/haqueashraful/bistro-server/internal/rbac"
)

// User represents a registered account. Accounts are created on first
// sign-in and default to the user role.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      rbac.Role `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
