package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAccountSnapshot(t *testing.T) {
	acc := NewAccount(4)
	require.True(t, acc.Total().IsZero())
	require.False(t, acc.Locked)

	acc.Available = decimal.RequireFromString("1.23456")
	acc.Held = decimal.RequireFromString("0.00004")
	acc.Locked = true

	require.Equal(t, "1.2346", acc.Total().String())

	snap := acc.Snapshot()
	require.EqualValues(t, 4, snap.ClientID)
	require.Equal(t, "1.2346", snap.Available.StringFixed(DisplayPlaces))
	require.Equal(t, "0.0000", snap.Held.StringFixed(DisplayPlaces))
	require.Equal(t, "1.2346", snap.Total.StringFixed(DisplayPlaces))
	require.True(t, snap.Locked)
}

func TestDisputeStateString(t *testing.T) {
	require.Equal(t, "clean", Clean.String())
	require.Equal(t, "disputed", Disputed.String())
	require.Equal(t, "resolved", Resolved.String())
	require.Equal(t, "charged_back", ChargedBack.String())
	require.Equal(t, "unknown", DisputeState(42).String())
}
