// Package audit publishes structured audit events to Kafka. Event content is
// minimal by design; downstream consumers own formatting and retention.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Publisher emits audit events to a Kafka topic. A nil Publisher is valid and
// drops events, so audit stays optional in wiring.
type Publisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewPublisher connects to the given brokers. EnsureTopic should be called
// once before the first Emit.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("connect kafka: %w", err)
	}
	return &Publisher{client: client, topic: topic, logger: logger}, nil
}

// EnsureTopic creates the audit topic when it does not exist yet.
func (p *Publisher) EnsureTopic(ctx context.Context, partitions int32, replicationFactor int16) error {
	if p == nil {
		return nil
	}
	adm := kadm.NewClient(p.client)
	_, err := adm.CreateTopic(ctx, partitions, replicationFactor, nil, p.topic)
	if err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create audit topic: %w", err)
	}
	return nil
}

// Emit publishes one event, assigning ID and timestamp when unset. Publish
// failures are logged and swallowed; audit must never fail a status request.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if p == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	raw, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "encode audit event", "error", err)
		return
	}
	record := &kgo.Record{
		Key:   []byte(event.IdentityDN),
		Value: raw,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		p.logger.ErrorContext(ctx, "publish audit event",
			"type", string(event.Type), "error", err)
	}
}

// Close flushes and releases the Kafka client.
func (p *Publisher) Close() {
	if p != nil {
		p.client.Close()
	}
}
