package users

import (
	"context"
	"errors"
	"log/slog"

	"github.com/haqueashraful/bistro-server/internal/platform/httpx"
	"github.com/haqueashraful/bistro-server/internal/rbac"
	"github.com/haqueashraful/bistro-server/internal/shared"
)

// Store is the persistence surface the service needs.
type Store interface {
	List(ctx context.Context) ([]User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, email, name string) (bool, error)
	RoleByEmail(ctx context.Context, email string) (rbac.Role, error)
	UpdateRole(ctx context.Context, id int64, role rbac.Role) error
	Delete(ctx context.Context, id int64) error
}

// Service wraps account business rules.
type Service struct {
	store Store
	audit *shared.AuditLogger
	log   *slog.Logger
}

// NewService constructs a new Service.
func NewService(store Store, audit *shared.AuditLogger, log *slog.Logger) *Service {
	return &Service{store: store, audit: audit, log: log}
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.store.List(ctx)
}

// Get returns the account for an email.
func (s *Service) Get(ctx context.Context, email string) (*User, error) {
	return s.store.GetByEmail(ctx, email)
}

// Register creates the account on first sign-in. Repeated registration with
// the same email is a no-op; the second call succeeds without inserting.
func (s *Service) Register(ctx context.Context, email, name string) (bool, error) {
	return s.store.Create(ctx, email, name)
}

// IsAdmin reports whether the email belongs to an admin. An email without a
// stored account reads as non-admin rather than an error.
func (s *Service) IsAdmin(ctx context.Context, email string) (bool, error) {
	role, err := s.store.RoleByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return role.IsAdmin(), nil
}

// Promote transitions the account role to admin.
func (s *Service) Promote(ctx context.Context, id int64, actor string) (*User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next := user.Role.Promote()
	if err := s.store.UpdateRole(ctx, id, next); err != nil {
		return nil, err
	}
	user.Role = next
	s.recordAudit(ctx, actor, "users.promote", user.ID, map[string]any{"email": user.Email})
	return user, nil
}

// Remove deletes the account.
func (s *Service) Remove(ctx context.Context, id int64, actor string) error {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.recordAudit(ctx, actor, "users.delete", user.ID, map[string]any{"email": user.Email})
	return nil
}

func (s *Service) recordAudit(ctx context.Context, actor, action string, id int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorEmail: actor,
		Action:     action,
		Entity:     "user",
		EntityID:   itoa(id),
		Meta:       meta,
	})
	if err != nil && s.log != nil {
		s.log.Warn("audit record", slog.Any("error", err))
	}
}
