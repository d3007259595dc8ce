package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionType(t *testing.T) {
	cases := []struct {
		in   string
		want TransactionType
	}{
		{"deposit", Deposit},
		{" Withdrawal ", Withdrawal},
		{"DISPUTE", Dispute},
		{"resolve", Resolve},
		{"chargeback", Chargeback},
	}
	for _, c := range cases {
		got, err := ParseTransactionType(c.in)
		require.NoError(t, err, c.in)
		require.Equal(t, c.want, got)
	}

	_, err := ParseTransactionType("transfer")
	require.Error(t, err)
	_, err = ParseTransactionType("")
	require.Error(t, err)
}

func TestTransactionString(t *testing.T) {
	require.Equal(t, "deposit(tx=1, client=2, amount=1.5)",
		NewDeposit(1, 2, decimal.RequireFromString("1.5")).String())
	require.Equal(t, "chargeback(tx=7, client=3)", NewChargeback(7, 3).String())
	require.True(t, Withdrawal.HasAmount())
	require.False(t, Resolve.HasAmount())
}
