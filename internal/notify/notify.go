package notify

import (
	"context"

	"github.com/Domenick1991/airservice/internal/kafka"
	"go.uber.org/zap"
)

// Sender delivers order notifications to customers. The current transport
// is the structured log.
type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.Info("order notification",
		zap.String("event_id", event.EventID.String()),
		zap.String("type", event.Type),
		zap.Int64("order_id", event.OrderID),
		zap.Int64("user_id", event.UserID),
		zap.Int("tickets", len(event.Tickets)),
	)
	return nil
}
