package ledger

import (
	"fmt"

	interfaces "github.com/sheikh-saqib/payments-engine/internal/interfaces"
	"github.com/shopspring/decimal"
)

// VerifyBalanced checks the double-entry invariant of the book: the totals of
// all accounts plus liabilities sum to exactly zero, and no held balance is
// negative.
func VerifyBalanced(book interfaces.AccountBook) error {
	sum := book.Liabilities()
	for _, acc := range book.Accounts() {
		if acc.Held.IsNegative() {
			return fmt.Errorf("%w: client %d held %s", ErrNegativeHeld, acc.ClientID, acc.Held)
		}
		sum = sum.Add(acc.Total())
	}
	if !sum.Equal(decimal.Zero) {
		return fmt.Errorf("%w: off by %s", ErrUnbalanced, sum)
	}
	return nil
}
