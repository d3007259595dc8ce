package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sheikh-saqib/payments-engine/internal/config"
	"github.com/sheikh-saqib/payments-engine/internal/csvio"
	interfaces "github.com/sheikh-saqib/payments-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-engine/internal/models/events"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type capturePublisher struct {
	topics []string
	events []any
}

func (c *capturePublisher) Publish(_ context.Context, topic string, event any) error {
	c.topics = append(c.topics, topic)
	c.events = append(c.events, event)
	return nil
}

func testConfig() config.AppConfig {
	return config.AppConfig{
		QueueDepth:      8,
		LogLevel:        zapcore.DebugLevel,
		RejectionsTopic: "transaction_rejected",
	}
}

func TestProcess(t *testing.T) {
	input := `type, client, tx, amount
deposit, 1, 1, 1.0
deposit, 2, 2, 2.0
deposit, 1, 3, 2.0
withdrawal, 1, 4, 1.5
withdrawal, 2, 5, 3.0
deposit, 3, 6,
`
	core, logs := observer.New(zapcore.DebugLevel)
	pub := &capturePublisher{}
	var out bytes.Buffer

	err := process(context.Background(), strings.NewReader(input), "run-1", testConfig(), zap.New(core),
		pub, []interfaces.SnapshotWriter{csvio.NewWriter(&out)})
	require.NoError(t, err)

	require.Equal(t,
		"client,available,held,total,locked\n"+
			"1,1.5000,0.0000,1.5000,false\n"+
			"2,2.0000,0.0000,2.0000,false\n",
		out.String())

	require.Equal(t, []string{"transaction_rejected"}, pub.topics)
	ev, ok := pub.events[0].(events.TransactionRejected)
	require.True(t, ok)
	require.EqualValues(t, 5, ev.TransactionID)
	require.Equal(t, "run-1", ev.RunID)
	require.Equal(t, "ledger: insufficient funds", ev.Reason)

	require.Equal(t, 1, logs.FilterMessage("dropped malformed record").Len())
	require.Equal(t, 0, logs.FilterMessage("ledger invariant violated").Len())

	processed := logs.FilterMessage("stream processed").All()
	require.Len(t, processed, 1)
	fields := processed[0].ContextMap()
	require.EqualValues(t, 5, fields["received"])
	require.EqualValues(t, 4, fields["applied"])
	require.EqualValues(t, 1, fields["rejected"])
	require.Equal(t, "-3.5", fields["liabilities"])
}

func TestProcessEmptyInput(t *testing.T) {
	var out bytes.Buffer
	err := process(context.Background(), strings.NewReader("type,client,tx,amount\n"), "run-2", testConfig(),
		zap.NewNop(), &capturePublisher{}, []interfaces.SnapshotWriter{csvio.NewWriter(&out)})
	require.NoError(t, err)
	require.Empty(t, out.String())
}

func TestRunMissingFile(t *testing.T) {
	err := run(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), "run-3", testConfig(),
		zap.NewNop(), &capturePublisher{}, nil)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tx.csv")
	require.NoError(t, os.WriteFile(path, []byte("deposit,1,1,100\ndispute,1,1,\nchargeback,1,1,\nwithdrawal,1,2,1\n"), 0o600))

	pub := &capturePublisher{}
	var out bytes.Buffer
	err := run(context.Background(), path, "run-4", testConfig(), zap.NewNop(), pub,
		[]interfaces.SnapshotWriter{csvio.NewWriter(&out)})
	require.NoError(t, err)
	require.Equal(t, "client,available,held,total,locked\n1,0.0000,0.0000,0.0000,true\n", out.String())

	require.Len(t, pub.events, 1)
	require.Equal(t, "ledger: account locked", pub.events[0].(events.TransactionRejected).Reason)
}
