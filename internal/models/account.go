package models

import "github.com/shopspring/decimal"

// DisplayPlaces is the number of fractional digits used when accounts leave
// the ledger. Balances are never rounded internally.
const DisplayPlaces = 4

// Account is the balance state of one client.
type Account struct {
	ClientID  ClientID
	Available decimal.Decimal // funds free to withdraw
	Held      decimal.Decimal // funds frozen by open disputes
	Locked    bool            // set once any deposit of the client is charged back
}

// NewAccount returns an empty, unlocked account.
func NewAccount(client ClientID) Account {
	return Account{
		ClientID:  client,
		Available: decimal.Zero,
		Held:      decimal.Zero,
	}
}

// Total is available plus held.
func (a Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

// AccountSnapshot is the externally visible view of an account.
type AccountSnapshot struct {
	ClientID  ClientID        `json:"client"`
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Total     decimal.Decimal `json:"total"`
	Locked    bool            `json:"locked"`
}

// Snapshot rounds the account to DisplayPlaces. Total is computed before
// rounding so that it reflects the exact balance.
func (a Account) Snapshot() AccountSnapshot {
	return AccountSnapshot{
		ClientID:  a.ClientID,
		Available: a.Available.Round(DisplayPlaces),
		Held:      a.Held.Round(DisplayPlaces),
		Total:     a.Total().Round(DisplayPlaces),
		Locked:    a.Locked,
	}
}
