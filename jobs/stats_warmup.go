package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/haqueashraful/bistro-server/internal/stats"
)

// StatsWarmupJob refreshes the cached dashboard aggregate ahead of reads.
type StatsWarmupJob struct {
	Stats  *stats.Service
	Logger *slog.Logger
}

// NewStatsWarmupJob wires dependencies for the warmup handler.
func NewStatsWarmupJob(statsSvc *stats.Service, logger *slog.Logger) *StatsWarmupJob {
	return &StatsWarmupJob{Stats: statsSvc, Logger: logger}
}

// Handle processes TaskTypeStatsWarmup tasks.
func (j *StatsWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Stats == nil {
		return errors.New("stats warmup: handler not configured")
	}

	warmCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	started := time.Now()
	snapshot, err := j.Stats.WarmAdmin(warmCtx)
	if err != nil {
		j.logger().Error("warm dashboard cache", slog.Any("error", err))
		return err
	}
	j.logger().Info("completed dashboard warmup",
		slog.Int64("users", snapshot.Users),
		slog.Int64("orders", snapshot.Orders),
		slog.Duration("duration", time.Since(started)))
	return nil
}

func (j *StatsWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskTypeStatsWarmup))
	}
	return slog.Default().With(slog.String("job", TaskTypeStatsWarmup))
}
