package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/sheikh-saqib/payments-engine/internal/config"
	"github.com/sheikh-saqib/payments-engine/internal/csvio"
	"github.com/sheikh-saqib/payments-engine/internal/events/kafka"
	"github.com/sheikh-saqib/payments-engine/internal/events/logpub"
	interfaces "github.com/sheikh-saqib/payments-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-engine/internal/ledger"
	"github.com/sheikh-saqib/payments-engine/internal/models"
	"github.com/sheikh-saqib/payments-engine/internal/models/events"
	"github.com/sheikh-saqib/payments-engine/internal/pipeline"
	"github.com/sheikh-saqib/payments-engine/internal/storage/memory"
	"github.com/sheikh-saqib/payments-engine/internal/storage/postgres"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <input_file_path>\n", os.Args[0])
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger, err := zcfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))

	var publisher interfaces.EventPublisher = logpub.NewPublisher(logger)
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers)
		defer kp.Close()
		publisher = kp
	}

	sinks := []interfaces.SnapshotWriter{csvio.NewWriter(os.Stdout)}
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer db.Close()

		store := postgres.NewSnapshotStore(db, runID)
		if err := store.Migrate(ctx); err != nil {
			logger.Fatal("failed to migrate postgres", zap.Error(err))
		}
		sinks = append(sinks, store)
	}

	if err := run(ctx, os.Args[1], runID, cfg, logger, publisher, sinks); err != nil {
		logger.Fatal("payments engine failed", zap.Error(err))
	}
}

// run processes one input file and hands the final snapshots to every sink.
func run(ctx context.Context, path, runID string, cfg config.AppConfig, logger *zap.Logger,
	publisher interfaces.EventPublisher, sinks []interfaces.SnapshotWriter) error {

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return process(ctx, f, runID, cfg, logger, publisher, sinks)
}

func process(ctx context.Context, in io.Reader, runID string, cfg config.AppConfig, logger *zap.Logger,
	publisher interfaces.EventPublisher, sinks []interfaces.SnapshotWriter) error {

	src := csvio.NewReader(in, csvio.WithMalformedHandler(func(line int, err error) {
		logger.Warn("dropped malformed record", zap.Int("line", line), zap.Error(err))
	}))

	book := memory.NewMemoryAccountBook()
	l := ledger.NewLedger(book)

	onReject := func(tx models.Transaction, reason error) {
		var rej *ledger.RejectionError
		if errors.As(reason, &rej) {
			reason = rej.Reason
		}
		ev := events.NewTransactionRejected(runID, tx, reason)
		if err := publisher.Publish(ctx, cfg.RejectionsTopic, ev); err != nil {
			logger.Error("failed to publish rejection", zap.Stringer("tx", tx), zap.Error(err))
		}
	}

	stats, err := pipeline.Run(ctx, src, l,
		pipeline.WithQueueDepth(cfg.QueueDepth),
		pipeline.WithRejectionHandler(onReject),
	)
	if err != nil {
		return err
	}
	logger.Info("stream processed",
		zap.Int("received", stats.Received),
		zap.Int("applied", stats.Applied),
		zap.Int("rejected", stats.Rejected),
		zap.Stringer("liabilities", l.Liabilities()),
	)

	if err := ledger.VerifyBalanced(book); err != nil {
		logger.Error("ledger invariant violated", zap.Error(err))
	}

	snapshots := l.Snapshots()
	for _, sink := range sinks {
		if err := sink.WriteSnapshots(ctx, snapshots); err != nil {
			return fmt.Errorf("write snapshots: %w", err)
		}
	}
	return nil
}
