// Package payments records checkout settlements. A settlement inserts the
// payment and removes the purchased cart rows in one transaction, keyed by
// a settlement id so retries can never double-charge or double-delete.
package payments

import "time"

// Payment is one recorded checkout. Immutable after insert.
type Payment struct {
	ID            int64     `json:"id"`
	SettlementID  string    `json:"settlementId"`
	Email         string    `json:"email"`
	Price         float64   `json:"price"`
	TransactionID string    `json:"transactionId"`
	CartIDs       []int64   `json:"cartIds"`
	MenuItemIDs   []int64   `json:"menuItemIds"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// StatusPaid is the only status the settlement path writes.
const StatusPaid = "paid"

// SettleRequest is the checkout submission. SettlementID is optional; when
// the client omits it the server generates one, at the cost of losing retry
// deduplication for that request.
type SettleRequest struct {
	SettlementID  string  `json:"settlementId"`
	Email         string  `json:"email" validate:"required,email"`
	Price         float64 `json:"price" validate:"gte=0"`
	TransactionID string  `json:"transactionId" validate:"required"`
	CartIDs       []int64 `json:"cartIds" validate:"required,min=1"`
	MenuItemIDs   []int64 `json:"menuItemIds"`
}

// SettleResult reports what the settlement did.
type SettleResult struct {
	Payment          Payment `json:"payment"`
	DeletedCartItems int64   `json:"deletedCartItems"`
	Replayed         bool    `json:"replayed"`
}

// Receipt is the payload handed to the background receipt mailer.
type Receipt struct {
	Email        string  `json:"email"`
	Amount       float64 `json:"amount"`
	SettlementID string  `json:"settlementId"`
}
