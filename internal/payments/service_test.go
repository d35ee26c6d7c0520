package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haqueashraful/bistro-server/internal/platform/httpx"
	"github.com/haqueashraful/bistro-server/internal/shared"
)

type mockTxStore struct {
	store *mockPaymentStore
}

func (m *mockTxStore) ClaimKey(ctx context.Context, key string) error {
	if _, taken := m.store.bySettlement[key]; taken {
		return shared.ErrSettlementReplay
	}
	m.store.claimed = append(m.store.claimed, key)
	return nil
}

func (m *mockTxStore) InsertPayment(ctx context.Context, p Payment) (int64, error) {
	if m.store.insertErr != nil {
		return 0, m.store.insertErr
	}
	p.ID = m.store.nextID
	m.store.nextID++
	m.store.pending = &p
	return p.ID, nil
}

func (m *mockTxStore) DeleteCartItems(ctx context.Context, ids []int64, email string) (int64, error) {
	if m.store.deleteErr != nil {
		return 0, m.store.deleteErr
	}
	m.store.pendingDeletes = ids
	return int64(len(ids)), nil
}

type mockPaymentStore struct {
	bySettlement map[string]*Payment
	nextID       int64
	claimed      []string
	deletedCarts []int64

	pending        *Payment
	pendingDeletes []int64

	insertErr error
	deleteErr error
}

func newMockPaymentStore() *mockPaymentStore {
	return &mockPaymentStore{bySettlement: make(map[string]*Payment), nextID: 1}
}

func (m *mockPaymentStore) ListByEmail(ctx context.Context, email string) ([]Payment, error) {
	var out []Payment
	for _, p := range m.bySettlement {
		if p.Email == email {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPaymentStore) GetBySettlementID(ctx context.Context, settlementID string) (*Payment, error) {
	p, ok := m.bySettlement[settlementID]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

// WithTx mimics transactional behaviour: writes land only when fn succeeds.
func (m *mockPaymentStore) WithTx(ctx context.Context, keys *shared.SettlementKeyStore, fn func(TxStore) error) error {
	m.pending = nil
	m.pendingDeletes = nil
	if err := fn(&mockTxStore{store: m}); err != nil {
		return err
	}
	if m.pending != nil {
		m.bySettlement[m.pending.SettlementID] = m.pending
	}
	m.deletedCarts = append(m.deletedCarts, m.pendingDeletes...)
	return nil
}

type mockEnqueuer struct {
	receipts []Receipt
	err      error
}

func (m *mockEnqueuer) EnqueueReceipt(ctx context.Context, receipt Receipt) error {
	if m.err != nil {
		return m.err
	}
	m.receipts = append(m.receipts, receipt)
	return nil
}

type mockIntents struct {
	secret string
	err    error
	price  float64
}

func (m *mockIntents) CreateIntent(price float64) (string, error) {
	m.price = price
	return m.secret, m.err
}

func settleRequest() SettleRequest {
	return SettleRequest{
		SettlementID:  "set-1",
		Email:         "guest@bistro.local",
		Price:         24.99,
		TransactionID: "pi_123",
		CartIDs:       []int64{10, 11},
		MenuItemIDs:   []int64{1, 2},
	}
}

func TestSettleRecordsPaymentAndClearsCart(t *testing.T) {
	store := newMockPaymentStore()
	enqueuer := &mockEnqueuer{}
	svc := NewService(store, nil, nil, enqueuer, nil)

	result, err := svc.Settle(context.Background(), settleRequest())
	require.NoError(t, err)

	assert.False(t, result.Replayed)
	assert.Equal(t, int64(2), result.DeletedCartItems)
	assert.Equal(t, StatusPaid, result.Payment.Status)
	assert.Equal(t, "set-1", result.Payment.SettlementID)
	assert.Equal(t, []int64{10, 11}, store.deletedCarts)

	require.Len(t, enqueuer.receipts, 1)
	assert.Equal(t, "guest@bistro.local", enqueuer.receipts[0].Email)
	assert.Equal(t, 24.99, enqueuer.receipts[0].Amount)
}

func TestSettleReplayReturnsRecordedPayment(t *testing.T) {
	store := newMockPaymentStore()
	enqueuer := &mockEnqueuer{}
	svc := NewService(store, nil, nil, enqueuer, nil)

	first, err := svc.Settle(context.Background(), settleRequest())
	require.NoError(t, err)

	second, err := svc.Settle(context.Background(), settleRequest())
	require.NoError(t, err)

	assert.True(t, second.Replayed)
	assert.Equal(t, first.Payment.ID, second.Payment.ID)
	assert.Equal(t, []int64{10, 11}, store.deletedCarts, "replay must not delete cart rows again")
	assert.Len(t, enqueuer.receipts, 1, "replay must not enqueue a second receipt")
}

func TestSettleGeneratesKeyWhenOmitted(t *testing.T) {
	store := newMockPaymentStore()
	svc := NewService(store, nil, nil, nil, nil)

	req := settleRequest()
	req.SettlementID = ""
	result, err := svc.Settle(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Payment.SettlementID)
}

func TestSettleRollsBackOnInsertFailure(t *testing.T) {
	store := newMockPaymentStore()
	store.insertErr = errors.New("constraint violation")
	svc := NewService(store, nil, nil, nil, nil)

	_, err := svc.Settle(context.Background(), settleRequest())
	require.Error(t, err)
	assert.Empty(t, store.bySettlement)
	assert.Empty(t, store.deletedCarts)
}

func TestSettleRollsBackOnDeleteFailure(t *testing.T) {
	store := newMockPaymentStore()
	store.deleteErr = errors.New("connection reset")
	svc := NewService(store, nil, nil, nil, nil)

	_, err := svc.Settle(context.Background(), settleRequest())
	require.Error(t, err)
	assert.Empty(t, store.bySettlement, "failed delete must abort the payment insert too")
}

func TestSettleSucceedsWhenReceiptEnqueueFails(t *testing.T) {
	store := newMockPaymentStore()
	enqueuer := &mockEnqueuer{err: errors.New("queue down")}
	svc := NewService(store, nil, nil, enqueuer, nil)

	result, err := svc.Settle(context.Background(), settleRequest())
	require.NoError(t, err)
	assert.Equal(t, "set-1", result.Payment.SettlementID)
}

func TestCreateIntent(t *testing.T) {
	intents := &mockIntents{secret: "pi_secret_abc"}
	svc := NewService(newMockPaymentStore(), nil, intents, nil, nil)

	secret, err := svc.CreateIntent(context.Background(), 19.5)
	require.NoError(t, err)
	assert.Equal(t, "pi_secret_abc", secret)
	assert.Equal(t, 19.5, intents.price)
}
