package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/airservice/internal/domain"
	sq "github.com/Masterminds/squirrel"
)

type FlightRepository interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight domain.NewFlight) (int64, error)
	Delete(ctx context.Context, id int64) error
	SeatMap(ctx context.Context, flightID int64) (domain.SeatMap, error)
}

type PGFlightRepository struct {
	db DBTX
}

func NewFlightRepository(db DBTX) FlightRepository {
	return &PGFlightRepository{db: db}
}

func buildFlightListQuery(filter domain.FlightFilter) sq.SelectBuilder {
	q := psql.
		Select(
			"f.id",
			"src.name",
			"dst.name",
			"f.departure",
			"f.arrival",
			"a.name",
			"a.rows * a.seats_in_row - COUNT(t.id)",
		).
		From("flights f").
		Join("routes r ON r.id = f.route_id").
		Join("airports src ON src.id = r.source_id").
		Join("airports dst ON dst.id = r.destination_id").
		Join("airplanes a ON a.id = f.airplane_id").
		LeftJoin("tickets t ON t.flight_id = f.id").
		GroupBy("f.id", "src.name", "dst.name", "a.name", "a.rows", "a.seats_in_row").
		OrderBy("f.departure", "f.id")

	if filter.Source != "" {
		q = q.Where(ilike("src.name", filter.Source))
	}
	if filter.Destination != "" {
		q = q.Where(ilike("dst.name", filter.Destination))
	}
	if filter.DepartureDate != nil {
		day := filter.DepartureDate.UTC().Truncate(24 * time.Hour)
		q = q.Where(sq.GtOrEq{"f.departure": day}).Where(sq.Lt{"f.departure": day.Add(24 * time.Hour)})
	}
	return q
}

func (r *PGFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, error) {
	sqlStr, args, err := buildFlightListQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list flights sql: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	defer rows.Close()

	flights := make([]domain.FlightSummary, 0)
	for rows.Next() {
		var (
			f        domain.FlightSummary
			src, dst string
		)
		if err := rows.Scan(&f.ID, &src, &dst, &f.Departure, &f.Arrival, &f.AirplaneName, &f.TicketsAvailable); err != nil {
			return nil, err
		}
		f.Route = src + " - " + dst
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

const flightDetailSQL = `
SELECT f.id, f.departure, f.arrival,
       r.id, r.distance,
       src.id, src.name, sc.name, sco.name,
       dst.id, dst.name, dc.name, dco.name,
       a.id, a.name, a.rows, a.seats_in_row, at.id, at.name
FROM flights f
JOIN routes r ON r.id = f.route_id
JOIN airports src ON src.id = r.source_id
JOIN cities sc ON sc.id = src.city_id
JOIN countries sco ON sco.id = sc.country_id
JOIN airports dst ON dst.id = r.destination_id
JOIN cities dc ON dc.id = dst.city_id
JOIN countries dco ON dco.id = dc.country_id
JOIN airplanes a ON a.id = f.airplane_id
JOIN airplane_types at ON at.id = a.airplane_type_id
WHERE f.id = $1`

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	var (
		f  domain.Flight
		rt domain.Route
		ap domain.Airplane
	)
	err := r.db.QueryRow(ctx, flightDetailSQL, id).Scan(
		&f.ID, &f.Departure, &f.Arrival,
		&rt.ID, &rt.Distance,
		&rt.Source.ID, &rt.Source.Name, &rt.Source.CityName, &rt.Source.CountryName,
		&rt.Destination.ID, &rt.Destination.Name, &rt.Destination.CityName, &rt.Destination.CountryName,
		&ap.ID, &ap.Name, &ap.Rows, &ap.SeatsInRow, &ap.Type.ID, &ap.Type.Name,
	)
	if err != nil {
		return nil, notFound(err)
	}
	f.RouteID = rt.ID
	f.Route = &rt
	f.Airplane = &ap

	if f.Crew, err = r.crew(ctx, id); err != nil {
		return nil, err
	}
	if f.TakenSeats, err = r.takenSeats(ctx, id); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) crew(ctx context.Context, flightID int64) ([]domain.Crew, error) {
	rows, err := r.db.Query(ctx, `SELECT c.id, c.first_name, c.last_name FROM crews c
		JOIN flight_crews fc ON fc.crew_id = c.id
		WHERE fc.flight_id = $1 ORDER BY c.last_name, c.first_name`, flightID)
	if err != nil {
		return nil, fmt.Errorf("list flight crew: %w", err)
	}
	defer rows.Close()

	crew := make([]domain.Crew, 0)
	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		crew = append(crew, c)
	}
	return crew, rows.Err()
}

func (r *PGFlightRepository) takenSeats(ctx context.Context, flightID int64) ([]domain.SeatRef, error) {
	rows, err := r.db.Query(ctx, `SELECT seat_row, seat_number FROM tickets WHERE flight_id = $1 ORDER BY seat_number`, flightID)
	if err != nil {
		return nil, fmt.Errorf("list taken seats: %w", err)
	}
	defer rows.Close()

	seats := make([]domain.SeatRef, 0)
	for rows.Next() {
		var s domain.SeatRef
		if err := rows.Scan(&s.Row, &s.Seat); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

func (r *PGFlightRepository) Create(ctx context.Context, flight domain.NewFlight) (int64, error) {
	var id int64
	err := withSavepoint(ctx, r.db, func(q DBTX) error {
		if err := q.QueryRow(ctx, `INSERT INTO flights (route_id, airplane_id, departure, arrival)
			VALUES ($1, $2, $3, $4) RETURNING id`,
			flight.RouteID, flight.AirplaneID, flight.Departure, flight.Arrival).Scan(&id); err != nil {
			return err
		}
		if len(flight.CrewIDs) == 0 {
			return nil
		}
		_, err := q.Exec(ctx, `INSERT INTO flight_crews (flight_id, crew_id)
			SELECT $1, unnest($2::bigint[]) ON CONFLICT DO NOTHING`, id, flight.CrewIDs)
		return err
	})
	if err != nil {
		code, _ := pgErrorCode(err)
		switch code {
		case codeForeignKeyViolation:
			return 0, domain.ErrInvalidReference
		case codeCheckViolation:
			return 0, domain.ErrInvalidFlightWindow
		}
		return 0, fmt.Errorf("create flight: %w", err)
	}
	return id, nil
}

// Delete removes the flight; its tickets and crew links go with it through
// ON DELETE CASCADE.
func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete flight: %w", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SeatMap takes a share lock on the airplane row so a concurrent layout
// change waits for the allocating transaction to finish.
func (r *PGFlightRepository) SeatMap(ctx context.Context, flightID int64) (domain.SeatMap, error) {
	var m domain.SeatMap
	err := r.db.QueryRow(ctx, `SELECT f.id, a.id, a.rows, a.seats_in_row
		FROM flights f JOIN airplanes a ON a.id = f.airplane_id
		WHERE f.id = $1
		FOR SHARE OF a`, flightID).Scan(&m.FlightID, &m.AirplaneID, &m.Rows, &m.SeatsInRow)
	if err != nil {
		return domain.SeatMap{}, notFound(err)
	}
	return m, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
