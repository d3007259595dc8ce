package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ClientID identifies a client account.
type ClientID uint16

// TxID identifies a transaction. Unique across all clients.
type TxID uint32

// TransactionType tags which of the five transaction kinds a Transaction is.
type TransactionType string

const (
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
	Dispute    TransactionType = "dispute"
	Resolve    TransactionType = "resolve"
	Chargeback TransactionType = "chargeback"
)

// ParseTransactionType matches s case-insensitively against the known kinds.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToLower(strings.TrimSpace(s))); t {
	case Deposit, Withdrawal, Dispute, Resolve, Chargeback:
		return t, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// HasAmount reports whether transactions of this kind carry an amount.
func (t TransactionType) HasAmount() bool {
	return t == Deposit || t == Withdrawal
}

// Transaction is a single record of the input stream.
// Amount is only meaningful for deposits and withdrawals; dispute, resolve
// and chargeback take their amount from the referenced deposit.
type Transaction struct {
	Type     TransactionType
	ID       TxID
	ClientID ClientID
	Amount   decimal.Decimal
}

func NewDeposit(id TxID, client ClientID, amount decimal.Decimal) Transaction {
	return Transaction{Type: Deposit, ID: id, ClientID: client, Amount: amount}
}

func NewWithdrawal(id TxID, client ClientID, amount decimal.Decimal) Transaction {
	return Transaction{Type: Withdrawal, ID: id, ClientID: client, Amount: amount}
}

func NewDispute(id TxID, client ClientID) Transaction {
	return Transaction{Type: Dispute, ID: id, ClientID: client}
}

func NewResolve(id TxID, client ClientID) Transaction {
	return Transaction{Type: Resolve, ID: id, ClientID: client}
}

func NewChargeback(id TxID, client ClientID) Transaction {
	return Transaction{Type: Chargeback, ID: id, ClientID: client}
}

func (t Transaction) String() string {
	if t.Type.HasAmount() {
		return fmt.Sprintf("%s(tx=%d, client=%d, amount=%s)", t.Type, t.ID, t.ClientID, t.Amount)
	}
	return fmt.Sprintf("%s(tx=%d, client=%d)", t.Type, t.ID, t.ClientID)
}
