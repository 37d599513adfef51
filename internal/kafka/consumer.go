package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// OrderEventHandler processes one decoded order event.
type OrderEventHandler func(ctx context.Context, event OrderEvent) error

type Consumer struct {
	reader *kafka.Reader
	log    *zap.Logger
}

func NewConsumer(brokers []string, groupID, topic string, log *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		log: log,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume reads until ctx is cancelled. Undecodable messages are logged and
// skipped; a handler error stops consumption.
func (c *Consumer) Consume(ctx context.Context, handler OrderEventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		if err := dispatch(ctx, msg, handler, c.log); err != nil {
			return err
		}
	}
}

func dispatch(ctx context.Context, msg kafka.Message, handler OrderEventHandler, log *zap.Logger) error {
	event, err := DecodeOrderEvent(msg.Value)
	if err != nil {
		log.Warn("skipping malformed message",
			zap.String("topic", msg.Topic),
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return nil
	}
	return handler(ctx, event)
}
