package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/haqueashraful/bistro-server/internal/payments"
)

// ReceiptMailerJob formats and dispatches payment receipts.
type ReceiptMailerJob struct {
	Logger  *slog.Logger
	printer *message.Printer
}

// NewReceiptMailerJob wires dependencies for the receipt handler.
func NewReceiptMailerJob(logger *slog.Logger) *ReceiptMailerJob {
	return &ReceiptMailerJob{
		Logger:  logger,
		printer: message.NewPrinter(language.English),
	}
}

// Handle processes TaskTypeSendReceipt tasks.
func (j *ReceiptMailerJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("receipt mailer: handler not configured")
	}
	var receipt payments.Receipt
	if err := json.Unmarshal(t.Payload(), &receipt); err != nil {
		return asynq.SkipRetry
	}
	if receipt.Email == "" {
		return asynq.SkipRetry
	}

	amount := j.printer.Sprintf("%v", currency.Symbol(currency.USD.Amount(receipt.Amount)))

	// Placeholder: swap for the SMTP sender once mail credentials land.
	j.logger().Info("sending payment receipt",
		slog.String("email", receipt.Email),
		slog.String("amount", amount),
		slog.String("settlement_id", receipt.SettlementID))
	return nil
}

func (j *ReceiptMailerJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskTypeSendReceipt))
	}
	return slog.Default().With(slog.String("job", TaskTypeSendReceipt))
}
