package interfaces

import (
	"errors"

	"github.com/sheikh-saqib/payments-engine/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrRecordExists      = errors.New("store: disputable record already exists")
	ErrRecordNotFound    = errors.New("store: disputable record not found")
	ErrIllegalTransition = errors.New("store: illegal dispute transition")
)

// AccountBook owns every account, every disputable deposit and the
// liabilities counter. Implementations are driven by one goroutine at a time.
type AccountBook interface {
	// GetOrCreateAccount returns the client's account, creating an empty one
	// if none exists yet.
	GetOrCreateAccount(client models.ClientID) models.Account
	LookupAccount(client models.ClientID) (models.Account, bool)
	PutAccount(account models.Account)

	LookupDisputable(tx models.TxID) (models.DisputableRecord, bool)
	// RecordDisputable stores a new record in state Clean.
	RecordDisputable(tx models.TxID, client models.ClientID, amount decimal.Decimal) error
	// TransitionDispute moves the record to `to` only if its current state is
	// one of `from`.
	TransitionDispute(tx models.TxID, from []models.DisputeState, to models.DisputeState) error

	AdjustLiabilities(delta decimal.Decimal)
	Liabilities() decimal.Decimal

	// Accounts returns copies of all accounts ordered by client id.
	Accounts() []models.Account
}
