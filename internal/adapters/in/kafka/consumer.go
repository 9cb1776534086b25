// Package kafka consumes order lifecycle events and feeds them into the
// tracking use cases. A courier assignment starts a tracking; subsequent
// order status changes advance it.
package kafka

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads messages from a topic and hands them to a handler.
// Offsets are committed only after the handler succeeds, so a failed
// message is redelivered.
type Consumer struct {
	r messageReader
}

// NewConsumer creates a consumer for the given brokers and topic.
// An empty groupID reads without consumer-group coordination.
func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	cfg := kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	}
	if groupID != "" {
		cfg.GroupTopics = []string{topic}
	} else {
		cfg.Topic = topic
	}
	return &Consumer{
		r: kafka.NewReader(cfg),
	}
}

func newConsumerWithReader(r messageReader) *Consumer {
	return &Consumer{r: r}
}

// Close releases the underlying reader.
func (c *Consumer) Close() error {
	return c.r.Close()
}

// Consume fetches messages until the context is cancelled or an error
// occurs, invoking handler for each. A handler error stops consumption
// before the offset is committed.
func (c *Consumer) Consume(ctx context.Context, handler func(key, value []byte) error) error {
	for {
		msg, err := c.r.FetchMessage(ctx)
		if err != nil {
			return errors.Wrap(err, "fetch message")
		}
		if err := handler(msg.Key, msg.Value); err != nil {
			return err
		}
		if err := c.r.CommitMessages(ctx, msg); err != nil {
			return errors.Wrap(err, "commit message")
		}
	}
}
