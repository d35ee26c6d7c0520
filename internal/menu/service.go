package menu

import (
	"context"
	"log/slog"

	"github.com/haqueashraful/bistro-server/internal/shared"
)

// Store is the persistence surface the service needs.
type Store interface {
	List(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id int64) (*Item, error)
	Create(ctx context.Context, req CreateItemRequest) (int64, error)
	Update(ctx context.Context, id int64, req UpdateItemRequest) error
	Delete(ctx context.Context, id int64) error
}

// Service wraps menu business rules: cached reads, audited writes.
type Service struct {
	store Store
	cache *Cache
	audit *shared.AuditLogger
	log   *slog.Logger
}

// NewService constructs a menu service.
func NewService(store Store, cache *Cache, audit *shared.AuditLogger, log *slog.Logger) *Service {
	return &Service{store: store, cache: cache, audit: audit, log: log}
}

// List returns the menu, preferring the cache.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.cache.FetchList(ctx, s.store.List)
}

// Get returns one item.
func (s *Service) Get(ctx context.Context, id int64) (*Item, error) {
	return s.store.Get(ctx, id)
}

// Create inserts a new item.
func (s *Service) Create(ctx context.Context, req CreateItemRequest, actor string) (*Item, error) {
	id, err := s.store.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.recordAudit(ctx, actor, "menu.create", id, map[string]any{"name": req.Name})
	return s.store.Get(ctx, id)
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id int64, req UpdateItemRequest, actor string) (*Item, error) {
	if err := s.store.Update(ctx, id, req); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.recordAudit(ctx, actor, "menu.update", id, nil)
	return s.store.Get(ctx, id)
}

// Delete removes an item.
func (s *Service) Delete(ctx context.Context, id int64, actor string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.recordAudit(ctx, actor, "menu.delete", id, nil)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil && s.log != nil {
		s.log.Warn("menu cache invalidate", slog.Any("error", err))
	}
}

func (s *Service) recordAudit(ctx context.Context, actor, action string, id int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorEmail: actor,
		Action:     action,
		Entity:     "menu_item",
		EntityID:   itoa(id),
		Meta:       meta,
	})
	if err != nil && s.log != nil {
		s.log.Warn("audit record", slog.Any("error", err))
	}
}
