package stats

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Store is the aggregate query surface the service needs.
type Store interface {
	CountUsers(ctx context.Context) (int64, error)
	CountMenuItems(ctx context.Context) (int64, error)
	CountPayments(ctx context.Context) (int64, error)
	SumRevenue(ctx context.Context) (float64, error)
	CountPaymentsByEmail(ctx context.Context, email string) (int64, error)
	CountOrderedItemsByEmail(ctx context.Context, email string) (int64, error)
	CountBookingsByEmail(ctx context.Context, email string) (int64, error)
	CountReviewsByEmail(ctx context.Context, email string) (int64, error)
}

// Service computes dashboard aggregates.
type Service struct {
	store Store
	cache *Cache
}

// NewService constructs a stats service.
func NewService(store Store, cache *Cache) *Service {
	return &Service{store: store, cache: cache}
}

// Admin returns the storefront-wide aggregate, cache first.
func (s *Service) Admin(ctx context.Context) (*AdminStats, error) {
	return s.cache.Fetch(ctx, s.loadAdmin)
}

// WarmAdmin recomputes the cached aggregate; the worker cron calls this.
func (s *Service) WarmAdmin(ctx context.Context) (*AdminStats, error) {
	return s.cache.Refresh(ctx, s.loadAdmin)
}

// loadAdmin fans the four aggregates out concurrently.
func (s *Service) loadAdmin(ctx context.Context) (*AdminStats, error) {
	var out AdminStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Users, err = s.store.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Products, err = s.store.CountMenuItems(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Orders, err = s.store.CountPayments(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Revenue, err = s.store.SumRevenue(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// User returns the aggregate scoped to one email. Never cached; it is
// cheap and must reflect the user's own latest activity.
func (s *Service) User(ctx context.Context, email string) (*UserStats, error) {
	var out UserStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Payments, err = s.store.CountPaymentsByEmail(gctx, email)
		return err
	})
	g.Go(func() (err error) {
		out.Orders, err = s.store.CountOrderedItemsByEmail(gctx, email)
		return err
	})
	g.Go(func() (err error) {
		out.Bookings, err = s.store.CountBookingsByEmail(gctx, email)
		return err
	})
	g.Go(func() (err error) {
		out.Reviews, err = s.store.CountReviewsByEmail(gctx, email)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
