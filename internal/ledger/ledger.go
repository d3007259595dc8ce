package ledger

import (
	"errors"
	"slices"

	interfaces "github.com/sheikh-saqib/payments-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-engine/internal/models"
	"github.com/shopspring/decimal"
)

var (
	disputableStates = []models.DisputeState{models.Clean, models.Resolved}
	openStates       = []models.DisputeState{models.Disputed}
)

// Ledger applies transactions to an account book. It keeps no state of its
// own: everything lives in the book, so the same book can be handed to the
// output side once the stream is drained.
//
// Ledger is not safe for concurrent use; transactions must be applied one at
// a time in arrival order.
type Ledger struct {
	book interfaces.AccountBook
}

// NewLedger creates a Ledger on top of the given account book.
func NewLedger(book interfaces.AccountBook) *Ledger {
	return &Ledger{book: book}
}

// Apply dispatches tx to the rule for its type. A non-nil error is always a
// *RejectionError and means the book was not modified.
func (l *Ledger) Apply(tx models.Transaction) error {
	var err error
	switch tx.Type {
	case models.Deposit:
		err = l.Deposit(tx.ID, tx.ClientID, tx.Amount)
	case models.Withdrawal:
		err = l.Withdraw(tx.ID, tx.ClientID, tx.Amount)
	case models.Dispute:
		err = l.Dispute(tx.ID, tx.ClientID)
	case models.Resolve:
		err = l.Resolve(tx.ID, tx.ClientID)
	case models.Chargeback:
		err = l.Chargeback(tx.ID, tx.ClientID)
	default:
		err = ErrUnsupportedType
	}
	if err != nil {
		return &RejectionError{Tx: tx, Reason: err}
	}
	return nil
}

// Deposit credits the client's available balance, creating the account on
// first use, and remembers the deposit so it can be disputed later.
func (l *Ledger) Deposit(id models.TxID, client models.ClientID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if _, exists := l.book.LookupDisputable(id); exists {
		return ErrDuplicateTransaction
	}

	// The record is written first: it is the only step that can fail.
	if err := l.book.RecordDisputable(id, client, amount); err != nil {
		return storeErr(err)
	}
	acc := l.book.GetOrCreateAccount(client)
	acc.Available = acc.Available.Add(amount)
	l.book.PutAccount(acc)
	l.book.AdjustLiabilities(amount.Neg())
	return nil
}

// Withdraw debits the client's available balance. Withdrawals are never
// recorded as disputable.
func (l *Ledger) Withdraw(id models.TxID, client models.ClientID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	acc, exists := l.book.LookupAccount(client)
	if !exists {
		return ErrUnknownClient
	}
	if acc.Locked {
		return ErrAccountLocked
	}
	if acc.Available.LessThan(amount) {
		return ErrInsufficientFunds
	}

	acc.Available = acc.Available.Sub(amount)
	l.book.PutAccount(acc)
	l.book.AdjustLiabilities(amount)
	return nil
}

// Dispute moves the deposit's amount from available to held. Available may
// go negative if the funds were withdrawn in the meantime.
func (l *Ledger) Dispute(id models.TxID, client models.ClientID) error {
	rec, acc, err := l.disputeTarget(id, client, disputableStates)
	if err != nil {
		return err
	}
	if err := l.book.TransitionDispute(id, disputableStates, models.Disputed); err != nil {
		return storeErr(err)
	}

	acc.Available = acc.Available.Sub(rec.Amount)
	acc.Held = acc.Held.Add(rec.Amount)
	l.book.PutAccount(acc)
	return nil
}

// Resolve releases held funds of an open dispute back to available. The
// deposit may be disputed again afterwards.
func (l *Ledger) Resolve(id models.TxID, client models.ClientID) error {
	rec, acc, err := l.disputeTarget(id, client, openStates)
	if err != nil {
		return err
	}
	if err := l.book.TransitionDispute(id, openStates, models.Resolved); err != nil {
		return storeErr(err)
	}

	acc.Held = acc.Held.Sub(rec.Amount)
	acc.Available = acc.Available.Add(rec.Amount)
	l.book.PutAccount(acc)
	return nil
}

// Chargeback removes the held funds of an open dispute from the client
// entirely and locks the account. ChargedBack is terminal.
func (l *Ledger) Chargeback(id models.TxID, client models.ClientID) error {
	rec, acc, err := l.disputeTarget(id, client, openStates)
	if err != nil {
		return err
	}
	if err := l.book.TransitionDispute(id, openStates, models.ChargedBack); err != nil {
		return storeErr(err)
	}

	acc.Held = acc.Held.Sub(rec.Amount)
	acc.Locked = true
	l.book.PutAccount(acc)
	l.book.AdjustLiabilities(rec.Amount)
	return nil
}

// disputeTarget runs the checks shared by dispute, resolve and chargeback.
func (l *Ledger) disputeTarget(id models.TxID, client models.ClientID, allowed []models.DisputeState) (models.DisputableRecord, models.Account, error) {
	rec, exists := l.book.LookupDisputable(id)
	if !exists {
		return models.DisputableRecord{}, models.Account{}, ErrUnknownTransaction
	}
	if rec.ClientID != client {
		return models.DisputableRecord{}, models.Account{}, ErrClientMismatch
	}
	if !slices.Contains(allowed, rec.State) {
		return models.DisputableRecord{}, models.Account{}, ErrInvalidDisputeState
	}
	acc, exists := l.book.LookupAccount(client)
	if !exists {
		// a record always has an account behind it
		return models.DisputableRecord{}, models.Account{}, ErrUnknownClient
	}
	return rec, acc, nil
}

// Accounts returns every account ordered by client id.
func (l *Ledger) Accounts() []models.Account {
	return l.book.Accounts()
}

// Snapshots returns the display view of every account ordered by client id.
func (l *Ledger) Snapshots() []models.AccountSnapshot {
	accounts := l.book.Accounts()
	snapshots := make([]models.AccountSnapshot, 0, len(accounts))
	for _, acc := range accounts {
		snapshots = append(snapshots, acc.Snapshot())
	}
	return snapshots
}

func (l *Ledger) Liabilities() decimal.Decimal {
	return l.book.Liabilities()
}

func storeErr(err error) error {
	switch {
	case errors.Is(err, interfaces.ErrRecordExists):
		return ErrDuplicateTransaction
	case errors.Is(err, interfaces.ErrRecordNotFound):
		return ErrUnknownTransaction
	case errors.Is(err, interfaces.ErrIllegalTransition):
		return ErrInvalidDisputeState
	default:
		return err
	}
}
