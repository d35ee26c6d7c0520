package rbac

import "context"

// RoleFinder resolves the stored role for a principal email. The users
// repository satisfies this.
type RoleFinder interface {
	RoleByEmail(ctx context.Context, email string) (Role, error)
}

// Service answers authorization questions for the guard chain.
type Service struct {
	roles RoleFinder
}

// NewService constructs a new Service.
func NewService(roles RoleFinder) *Service {
	return &Service{roles: roles}
}

// IsAdmin looks up the principal's stored role. The lookup is uncached, so
// a role change takes effect on the very next request.
func (s *Service) IsAdmin(ctx context.Context, email string) (bool, error) {
	role, err := s.roles.RoleByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return role.IsAdmin(), nil
}
