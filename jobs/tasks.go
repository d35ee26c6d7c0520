package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/haqueashraful/bistro-server/internal/payments"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendReceipt is the task type for mailing payment receipts.
	TaskTypeSendReceipt = "receipt:send"
	// TaskTypeStatsWarmup is the task type for refreshing the dashboard cache.
	TaskTypeStatsWarmup = "stats:warmup"
)

// NewSendReceiptTask constructs an Asynq task carrying the receipt payload.
func NewSendReceiptTask(receipt payments.Receipt) (*asynq.Task, error) {
	data, err := json.Marshal(receipt)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendReceipt, data), nil
}

// NewStatsWarmupTask constructs a dashboard warmup task.
func NewStatsWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskTypeStatsWarmup, nil)
}
