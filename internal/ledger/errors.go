package ledger

import (
	"errors"
	"fmt"

	"github.com/sheikh-saqib/payments-engine/internal/models"
)

// Rejection reasons. Every one of them leaves the account book untouched.
var (
	ErrInvalidAmount        = errors.New("ledger: amount must be positive")
	ErrUnknownClient        = errors.New("ledger: unknown client")
	ErrAccountLocked        = errors.New("ledger: account locked")
	ErrInsufficientFunds    = errors.New("ledger: insufficient funds")
	ErrUnknownTransaction   = errors.New("ledger: unknown transaction")
	ErrClientMismatch       = errors.New("ledger: transaction belongs to another client")
	ErrInvalidDisputeState  = errors.New("ledger: invalid dispute state")
	ErrDuplicateTransaction = errors.New("ledger: duplicate transaction")
	ErrUnsupportedType      = errors.New("ledger: unsupported transaction type")
)

// Invariant violations. These indicate a defect in a rule, never bad input.
var (
	ErrUnbalanced   = errors.New("ledger: accounts and liabilities do not sum to zero")
	ErrNegativeHeld = errors.New("ledger: negative held balance")
)

// RejectionError ties a rejection reason to the transaction that caused it.
type RejectionError struct {
	Tx     models.Transaction
	Reason error
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s rejected: %v", e.Tx, e.Reason)
}

func (e *RejectionError) Unwrap() error {
	return e.Reason
}

// IsRejection returns true if err is a per-transaction rejection rather than
// an infrastructure failure.
func IsRejection(err error) bool {
	var rej *RejectionError
	return errors.As(err, &rej)
}
