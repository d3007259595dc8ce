package csvio

import (
	"bytes"
	"context"
	"testing"

	"github.com/sheikh-saqib/payments-engine/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestWriteSnapshots(t *testing.T) {
	var buf bytes.Buffer
	snaps := []models.AccountSnapshot{
		{
			ClientID:  1,
			Available: decimal.RequireFromString("1.5"),
			Held:      decimal.Zero,
			Total:     decimal.RequireFromString("1.5"),
		},
		{
			ClientID:  2,
			Available: decimal.RequireFromString("-0.12345"),
			Held:      decimal.RequireFromString("3"),
			Total:     decimal.RequireFromString("2.87655"),
			Locked:    true,
		},
	}
	require.NoError(t, NewWriter(&buf).WriteSnapshots(context.Background(), snaps))
	require.Equal(t,
		"client,available,held,total,locked\n"+
			"1,1.5000,0.0000,1.5000,false\n"+
			"2,-0.1235,3.0000,2.8766,true\n",
		buf.String())
}

func TestWriteNoSnapshots(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteSnapshots(context.Background(), nil))
	require.Zero(t, buf.Len())
}
