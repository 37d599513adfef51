package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airservice/internal/domain"
	sq "github.com/Masterminds/squirrel"
)

const ticketSeatConstraint = "tickets_flight_seat_number_key"

type TicketRepository interface {
	Insert(ctx context.Context, ticket *domain.Ticket) error
	ListByOrders(ctx context.Context, orderIDs []int64) ([]domain.Ticket, error)
}

type PGTicketRepository struct {
	db DBTX
}

func NewTicketRepository(db DBTX) TicketRepository {
	return &PGTicketRepository{db: db}
}

// Insert relies on the (flight_id, seat_number) unique constraint: a second
// writer for the same seat blocks on the index until the first commits and
// then fails with domain.ErrSeatAlreadyTaken.
func (r *PGTicketRepository) Insert(ctx context.Context, ticket *domain.Ticket) error {
	err := r.db.QueryRow(ctx, `INSERT INTO tickets (seat_row, seat_number, flight_id, order_id)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		ticket.SeatRow, ticket.SeatNumber, ticket.FlightID, ticket.OrderID).Scan(&ticket.ID)
	if err != nil {
		return translateTicketError(err)
	}
	return nil
}

func translateTicketError(err error) error {
	code, constraint := pgErrorCode(err)
	switch {
	case code == codeUniqueViolation && (constraint == ticketSeatConstraint || constraint == ""):
		return domain.ErrSeatAlreadyTaken
	case code == codeForeignKeyViolation:
		return domain.ErrInvalidReference
	}
	return fmt.Errorf("insert ticket: %w", err)
}

func (r *PGTicketRepository) ListByOrders(ctx context.Context, orderIDs []int64) ([]domain.Ticket, error) {
	if len(orderIDs) == 0 {
		return []domain.Ticket{}, nil
	}

	sqlStr, args, err := psql.
		Select(
			"t.id", "t.order_id", "t.flight_id", "t.seat_row", "t.seat_number",
			"src.name", "dst.name", "f.departure", "f.arrival", "a.name",
		).
		From("tickets t").
		Join("flights f ON f.id = t.flight_id").
		Join("routes r ON r.id = f.route_id").
		Join("airports src ON src.id = r.source_id").
		Join("airports dst ON dst.id = r.destination_id").
		Join("airplanes a ON a.id = f.airplane_id").
		Where(sq.Eq{"t.order_id": orderIDs}).
		OrderBy("t.order_id", "t.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list tickets sql: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		var (
			t        domain.Ticket
			fs       domain.FlightSummary
			src, dst string
		)
		if err := rows.Scan(&t.ID, &t.OrderID, &t.FlightID, &t.SeatRow, &t.SeatNumber,
			&src, &dst, &fs.Departure, &fs.Arrival, &fs.AirplaneName); err != nil {
			return nil, err
		}
		fs.ID = t.FlightID
		fs.Route = src + " - " + dst
		t.Flight = &fs
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

var _ TicketRepository = (*PGTicketRepository)(nil)
