// Package tickets assigns seats on flights.
//
// The allocator never checks availability before writing. The ticket
// store is expected to reject a second ticket for the same flight and seat
// number atomically (a unique constraint in PostgreSQL), and that rejection
// is the only signal that a seat is taken.
package tickets

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/metrics"
)

// SeatMapReader resolves the seat grid of the airplane assigned to a flight.
// It returns domain.ErrNotFound for an unknown flight.
type SeatMapReader interface {
	SeatMap(ctx context.Context, flightID int64) (domain.SeatMap, error)
}

// TicketWriter persists a ticket and returns domain.ErrSeatAlreadyTaken when
// the flight already has a ticket with the same seat number.
type TicketWriter interface {
	Insert(ctx context.Context, ticket *domain.Ticket) error
}

type Allocator struct {
	seats   SeatMapReader
	tickets TicketWriter
}

func NewAllocator(seats SeatMapReader, tickets TicketWriter) *Allocator {
	return &Allocator{seats: seats, tickets: tickets}
}

// Allocate validates the requested seat against the flight's seat map and
// writes the ticket for orderID. Validation failures are returned unchanged
// and nothing is written.
func (a *Allocator) Allocate(ctx context.Context, orderID int64, req domain.TicketRequest) (*domain.Ticket, error) {
	seatMap, err := a.seats.SeatMap(ctx, req.FlightID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.IncAllocationFailure(metrics.ReasonUnknownFlight)
			return nil, domain.NewValidationError("flight_id", fmt.Sprintf("flight %d does not exist", req.FlightID))
		}
		metrics.IncAllocationFailure(metrics.ReasonError)
		return nil, fmt.Errorf("load seat map for flight %d: %w", req.FlightID, err)
	}

	if err := domain.ValidateSeat(req.SeatNumber, seatMap.TotalSeats(), req.SeatRow, seatMap.Rows); err != nil {
		metrics.IncAllocationFailure(metrics.ReasonSeatOutOfRange)
		return nil, err
	}

	ticket := &domain.Ticket{
		OrderID:    orderID,
		FlightID:   req.FlightID,
		SeatRow:    req.SeatRow,
		SeatNumber: req.SeatNumber,
	}
	if err := a.tickets.Insert(ctx, ticket); err != nil {
		if errors.Is(err, domain.ErrSeatAlreadyTaken) {
			metrics.IncAllocationFailure(metrics.ReasonSeatTaken)
			return nil, domain.ErrSeatAlreadyTaken
		}
		metrics.IncAllocationFailure(metrics.ReasonError)
		return nil, fmt.Errorf("insert ticket: %w", err)
	}

	metrics.IncTicketsAllocated()
	return ticket, nil
}
