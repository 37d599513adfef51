package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderCreated = "order_created"
	EventOrderDeleted = "order_deleted"
)

type TicketPayload struct {
	FlightID   int64 `json:"flight_id"`
	SeatRow    int   `json:"seat_row"`
	SeatNumber int   `json:"seat_number"`
}

type OrderEvent struct {
	EventID    uuid.UUID       `json:"event_id"`
	Type       string          `json:"type"`
	OrderID    int64           `json:"order_id"`
	UserID     int64           `json:"user_id"`
	Tickets    []TicketPayload `json:"tickets,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func NewOrderEvent(eventType string, orderID, userID int64, tickets []TicketPayload) OrderEvent {
	return OrderEvent{
		EventID:    uuid.New(),
		Type:       eventType,
		OrderID:    orderID,
		UserID:     userID,
		Tickets:    tickets,
		OccurredAt: time.Now().UTC(),
	}
}

// Key partitions events by order so one order's events stay ordered.
func (e OrderEvent) Key() string {
	return fmt.Sprintf("order-%d", e.OrderID)
}

func DecodeOrderEvent(data []byte) (OrderEvent, error) {
	var e OrderEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return OrderEvent{}, fmt.Errorf("decode order event: %w", err)
	}
	if e.Type == "" {
		return OrderEvent{}, fmt.Errorf("decode order event: missing type")
	}
	return e, nil
}
