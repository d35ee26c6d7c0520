// Package rbac holds the closed role enumeration and the authorization
// guard that admin-only routes are mounted behind.
package rbac

import "fmt"

// Role is a closed enumeration. The stored role column carries exactly
// these values; anything else is rejected at the boundary.
type Role string

const (
	// RoleUser is the default role assigned on first sign-in.
	RoleUser Role = "user"
	// RoleAdmin unlocks menu writes, user management and admin stats.
	RoleAdmin Role = "admin"
)

// ParseRole validates a stored or submitted role value.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("rbac: unknown role %q", s)
	}
}

// Promote returns the role after an admin promotion.
func (r Role) Promote() Role {
	return RoleAdmin
}

// Demote returns the role after a demotion. No route exposes this; it
// exists so the transition set is closed in one place.
func (r Role) Demote() Role {
	return RoleUser
}

// IsAdmin reports whether the role grants admin access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
