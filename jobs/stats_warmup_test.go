package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haqueashraful/bistro-server/internal/stats"
)

type stubStatsStore struct{}

func (stubStatsStore) CountUsers(ctx context.Context) (int64, error)     { return 5, nil }
func (stubStatsStore) CountMenuItems(ctx context.Context) (int64, error) { return 20, nil }
func (stubStatsStore) CountPayments(ctx context.Context) (int64, error)  { return 3, nil }
func (stubStatsStore) SumRevenue(ctx context.Context) (float64, error)   { return 99.5, nil }
func (stubStatsStore) CountPaymentsByEmail(ctx context.Context, email string) (int64, error) {
	return 0, nil
}
func (stubStatsStore) CountOrderedItemsByEmail(ctx context.Context, email string) (int64, error) {
	return 0, nil
}
func (stubStatsStore) CountBookingsByEmail(ctx context.Context, email string) (int64, error) {
	return 0, nil
}
func (stubStatsStore) CountReviewsByEmail(ctx context.Context, email string) (int64, error) {
	return 0, nil
}

func TestStatsWarmupHandle(t *testing.T) {
	svc := stats.NewService(stubStatsStore{}, nil)
	job := NewStatsWarmupJob(svc, nil)

	err := job.Handle(context.Background(), NewStatsWarmupTask())
	assert.NoError(t, err)
}

func TestStatsWarmupUnconfigured(t *testing.T) {
	job := &StatsWarmupJob{}
	assert.Error(t, job.Handle(context.Background(), NewStatsWarmupTask()))
}
