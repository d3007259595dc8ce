package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/sheikh-saqib/payments-engine/internal/models"
	"github.com/shopspring/decimal"
)

// TransactionRejected is emitted for every transaction the ledger refused.
type TransactionRejected struct {
	EventID       string                 `json:"event_id"`
	RunID         string                 `json:"run_id"`
	TransactionID models.TxID            `json:"transaction_id"`
	ClientID      models.ClientID        `json:"client_id"`
	Type          models.TransactionType `json:"type"`
	Amount        *decimal.Decimal       `json:"amount,omitempty"`
	Reason        string                 `json:"reason"`
	OccurredAt    time.Time              `json:"occurred_at"`
}

func NewTransactionRejected(runID string, tx models.Transaction, reason error) TransactionRejected {
	ev := TransactionRejected{
		EventID:       uuid.New().String(),
		RunID:         runID,
		TransactionID: tx.ID,
		ClientID:      tx.ClientID,
		Type:          tx.Type,
		Reason:        reason.Error(),
		OccurredAt:    time.Now().UTC(),
	}
	if tx.Type.HasAmount() {
		amount := tx.Amount
		ev.Amount = &amount
	}
	return ev
}
