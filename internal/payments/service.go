package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/haqueashraful/bistro-server/internal/shared"
)

// Store is the persistence surface the service needs.
type Store interface {
	ListByEmail(ctx context.Context, email string) ([]Payment, error)
	GetBySettlementID(ctx context.Context, settlementID string) (*Payment, error)
	WithTx(ctx context.Context, keys *shared.SettlementKeyStore, fn func(TxStore) error) error
}

// IntentCreator creates payment intents with the external payment API.
type IntentCreator interface {
	CreateIntent(price float64) (string, error)
}

// ReceiptEnqueuer hands receipts to the background worker.
type ReceiptEnqueuer interface {
	EnqueueReceipt(ctx context.Context, receipt Receipt) error
}

// Service runs the settlement sequence.
type Service struct {
	store    Store
	keys     *shared.SettlementKeyStore
	intents  IntentCreator
	receipts ReceiptEnqueuer
	log      *slog.Logger
}

// NewService constructs a payments service. The receipt enqueuer may be nil
// when no worker is deployed.
func NewService(store Store, keys *shared.SettlementKeyStore, intents IntentCreator, receipts ReceiptEnqueuer, log *slog.Logger) *Service {
	return &Service{store: store, keys: keys, intents: intents, receipts: receipts, log: log}
}

// Settle records the payment and removes the purchased cart rows in one
// transaction. Replaying a settlement id returns the previously recorded
// payment without touching the cart again.
func (s *Service) Settle(ctx context.Context, req SettleRequest) (*SettleResult, error) {
	key := req.SettlementID
	if key == "" {
		key = uuid.NewString()
	}

	payment := Payment{
		SettlementID:  key,
		Email:         req.Email,
		Price:         req.Price,
		TransactionID: req.TransactionID,
		CartIDs:       req.CartIDs,
		MenuItemIDs:   req.MenuItemIDs,
		Status:        StatusPaid,
	}

	var deleted int64
	err := s.store.WithTx(ctx, s.keys, func(tx TxStore) error {
		if err := tx.ClaimKey(ctx, key); err != nil {
			return err
		}
		id, err := tx.InsertPayment(ctx, payment)
		if err != nil {
			return err
		}
		payment.ID = id
		deleted, err = tx.DeleteCartItems(ctx, req.CartIDs, req.Email)
		return err
	})
	if err != nil {
		if errors.Is(err, shared.ErrSettlementReplay) {
			return s.replay(ctx, key)
		}
		return nil, fmt.Errorf("settle: %w", err)
	}

	recorded, err := s.store.GetBySettlementID(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("settle: reread: %w", err)
	}

	s.enqueueReceipt(ctx, Receipt{Email: recorded.Email, Amount: recorded.Price, SettlementID: key})

	return &SettleResult{Payment: *recorded, DeletedCartItems: deleted}, nil
}

// replay serves a retried settlement from the recorded payment.
func (s *Service) replay(ctx context.Context, key string) (*SettleResult, error) {
	recorded, err := s.store.GetBySettlementID(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("settle: replay lookup: %w", err)
	}
	return &SettleResult{Payment: *recorded, Replayed: true}, nil
}

// History returns the payments recorded for one email.
func (s *Service) History(ctx context.Context, email string) ([]Payment, error) {
	return s.store.ListByEmail(ctx, email)
}

// CreateIntent delegates to the external payment-intent API.
func (s *Service) CreateIntent(ctx context.Context, price float64) (string, error) {
	return s.intents.CreateIntent(price)
}

func (s *Service) enqueueReceipt(ctx context.Context, receipt Receipt) {
	if s.receipts == nil {
		return
	}
	if err := s.receipts.EnqueueReceipt(ctx, receipt); err != nil && s.log != nil {
		// Receipts are best effort; the settlement already committed.
		s.log.Warn("enqueue receipt", slog.Any("error", err))
	}
}
