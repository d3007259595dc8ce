// Package logpub publishes events to the structured log. It is used when no
// broker is configured.
package logpub

import (
	"context"

	interfaces "github.com/sheikh-saqib/payments-engine/internal/interfaces"
	"go.uber.org/zap"
)

type Publisher struct {
	logger *zap.Logger
}

func NewPublisher(logger *zap.Logger) *Publisher {
	return &Publisher{logger: logger}
}

func (p *Publisher) Publish(_ context.Context, topic string, event any) error {
	p.logger.Warn("event", zap.String("topic", topic), zap.Any("event", event))
	return nil
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
