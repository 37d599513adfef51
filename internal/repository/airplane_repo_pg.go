package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airservice/internal/domain"
)

type AirplaneRepository interface {
	List(ctx context.Context, filter domain.AirplaneFilter) ([]domain.Airplane, error)
	Create(ctx context.Context, name string, rows, seatsInRow int, airplaneType domain.AirplaneType) (*domain.Airplane, error)
	// LockByID takes a row lock on the airplane for the rest of the transaction.
	LockByID(ctx context.Context, id int64) (*domain.Airplane, error)
	HasSoldTickets(ctx context.Context, id int64) (bool, error)
	UpdateLayout(ctx context.Context, id int64, layout domain.AirplaneLayout) error
}

type PGAirplaneRepository struct {
	db DBTX
}

func NewAirplaneRepository(db DBTX) AirplaneRepository {
	return &PGAirplaneRepository{db: db}
}

func (r *PGAirplaneRepository) List(ctx context.Context, filter domain.AirplaneFilter) ([]domain.Airplane, error) {
	q := psql.
		Select("a.id", "a.name", "a.rows", "a.seats_in_row", "t.id", "t.name").
		From("airplanes a").
		Join("airplane_types t ON t.id = a.airplane_type_id").
		OrderBy("a.name")
	if filter.Name != "" {
		q = q.Where(ilike("a.name", filter.Name))
	}
	if filter.Type != "" {
		q = q.Where(ilike("t.name", filter.Type))
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list airplanes sql: %w", err)
	}
	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list airplanes: %w", err)
	}
	defer rows.Close()

	airplanes := make([]domain.Airplane, 0)
	for rows.Next() {
		var a domain.Airplane
		if err := rows.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.Type.ID, &a.Type.Name); err != nil {
			return nil, err
		}
		airplanes = append(airplanes, a)
	}
	return airplanes, rows.Err()
}

func (r *PGAirplaneRepository) Create(ctx context.Context, name string, rows, seatsInRow int, airplaneType domain.AirplaneType) (*domain.Airplane, error) {
	a := domain.Airplane{Name: name, Rows: rows, SeatsInRow: seatsInRow, Type: airplaneType}
	err := r.db.QueryRow(ctx,
		`INSERT INTO airplanes (name, rows, seats_in_row, airplane_type_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		name, rows, seatsInRow, airplaneType.ID,
	).Scan(&a.ID)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return nil, domain.ErrInvalidReference
		}
		return nil, fmt.Errorf("create airplane: %w", err)
	}
	return &a, nil
}

func (r *PGAirplaneRepository) LockByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	var a domain.Airplane
	err := r.db.QueryRow(ctx, `
		SELECT a.id, a.name, a.rows, a.seats_in_row, t.id, t.name
		FROM airplanes a
		JOIN airplane_types t ON t.id = a.airplane_type_id
		WHERE a.id = $1
		FOR UPDATE OF a`, id,
	).Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.Type.ID, &a.Type.Name)
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *PGAirplaneRepository) HasSoldTickets(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM tickets t
			JOIN flights f ON f.id = t.flight_id
			WHERE f.airplane_id = $1
		)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check sold tickets: %w", err)
	}
	return exists, nil
}

func (r *PGAirplaneRepository) UpdateLayout(ctx context.Context, id int64, layout domain.AirplaneLayout) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE airplanes SET rows = $1, seats_in_row = $2 WHERE id = $3`,
		layout.Rows, layout.SeatsInRow, id,
	)
	if err != nil {
		return fmt.Errorf("update airplane layout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ AirplaneRepository = (*PGAirplaneRepository)(nil)
