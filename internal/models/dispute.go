package models

import "github.com/shopspring/decimal"

// DisputeState is the dispute life-cycle position of a deposit.
type DisputeState int

const (
	Clean DisputeState = iota
	Disputed
	Resolved
	ChargedBack
)

func (s DisputeState) String() string {
	switch s {
	case Clean:
		return "clean"
	case Disputed:
		return "disputed"
	case Resolved:
		return "resolved"
	case ChargedBack:
		return "charged_back"
	default:
		return "unknown"
	}
}

// DisputableRecord remembers an applied deposit so that it can later be
// disputed. Amount never changes after the deposit is recorded.
type DisputableRecord struct {
	TxID     TxID
	ClientID ClientID
	Amount   decimal.Decimal
	State    DisputeState
}
