package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/account-ledger/internal/config"
	"github.com/segmentio/kafka-go"
)

// LedgerEventProducer publishes applied ledger records. Messages are keyed by
// customer ID so one account's events share a partition. Concurrent operations
// on one account can publish out of order; consumers order by record.sequence.
type LedgerEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

// NewLedgerEventProducer provisions the ledger event topic and opens a writer on it
func NewLedgerEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*LedgerEventProducer, error) {
	if cfg.LedgerEventTopic == "" {
		return nil, fmt.Errorf("kafka ledger event topic is not configured")
	}
	if err := dialAndEnsureTopic(cfg, cfg.LedgerEventTopic, logger); err != nil {
		return nil, fmt.Errorf("failed to ensure ledger event topic %s: %w", cfg.LedgerEventTopic, err)
	}

	return &LedgerEventProducer{
		logger: logger,
		writer: newWriter(cfg, cfg.LedgerEventTopic, kafka.RequireOne, logger),
		topic:  cfg.LedgerEventTopic,
	}, nil
}

func (p *LedgerEventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish ledger event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published ledger event", "topic", p.topic, "key", key)
	return nil
}

func (p *LedgerEventProducer) Close() error {
	p.logger.Info("Closing ledger event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close ledger event writer for topic %s: %w", p.topic, err)
	}
	return nil
}
