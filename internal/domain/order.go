package domain

import "time"

type Order struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
	Tickets   []Ticket
}

type Ticket struct {
	ID         int64
	OrderID    int64
	FlightID   int64
	SeatRow    int
	SeatNumber int
	// Flight is populated on reads that join the flight summary.
	Flight *FlightSummary
}

// TicketRequest is one requested seat within an order submission.
type TicketRequest struct {
	FlightID   int64 `json:"flight_id" validate:"required,gt=0"`
	SeatRow    int   `json:"seat_row"`
	SeatNumber int   `json:"seat_number"`
}

type OrderFilter struct {
	CreatedDate *time.Time
	Source      string
	Destination string
	Page        int
	PageSize    int
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Normalize clamps pagination to sane bounds.
func (f *OrderFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
}

func (f OrderFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}
