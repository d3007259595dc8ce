// Package pipeline feeds decoded transactions into a ledger through a
// bounded, order-preserving queue.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sheikh-saqib/payments-engine/internal/models"
	"golang.org/x/sync/errgroup"
)

const DefaultQueueDepth = 4096

var ErrInvalidQueueDepth = errors.New("pipeline: queue depth must be positive")

// Source yields transactions in arrival order and io.EOF at the end.
type Source interface {
	Read() (models.Transaction, error)
}

// Applier is the consumer side, normally a *ledger.Ledger.
type Applier interface {
	Apply(tx models.Transaction) error
}

// RejectionHandler receives each transaction the applier refused together
// with the reason.
type RejectionHandler func(tx models.Transaction, err error)

type Stats struct {
	Received int
	Applied  int
	Rejected int
}

type config struct {
	queueDepth int
	onReject   RejectionHandler
}

type Option func(*config)

func WithQueueDepth(n int) Option {
	return func(c *config) {
		c.queueDepth = n
	}
}

func WithRejectionHandler(h RejectionHandler) Option {
	return func(c *config) {
		c.onReject = h
	}
}

// Run decodes src on a producer goroutine and applies every transaction on
// the calling side of the queue, one at a time, until src is exhausted. The
// producer blocks while the queue is full.
func Run(ctx context.Context, src Source, dst Applier, opts ...Option) (Stats, error) {
	cfg := config{
		queueDepth: DefaultQueueDepth,
		onReject:   func(models.Transaction, error) {},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.queueDepth <= 0 {
		return Stats{}, ErrInvalidQueueDepth
	}

	queue := make(chan models.Transaction, cfg.queueDepth)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(queue)
		for {
			if err := gctx.Err(); err != nil {
				return err
			}
			tx, err := src.Read()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("pipeline: source: %w", err)
			}
			select {
			case queue <- tx:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	var stats Stats
	g.Go(func() error {
		// drain fully even if the producer failed so that everything that
		// was accepted into the queue is applied
		for tx := range queue {
			stats.Received++
			if err := dst.Apply(tx); err != nil {
				stats.Rejected++
				cfg.onReject(tx, err)
				continue
			}
			stats.Applied++
		}
		return nil
	})

	err := g.Wait()
	return stats, err
}
