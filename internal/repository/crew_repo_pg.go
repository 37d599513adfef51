package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airservice/internal/domain"
)

type CrewRepository interface {
	List(ctx context.Context, filter domain.CrewFilter) ([]domain.Crew, error)
	Create(ctx context.Context, crew domain.NewCrew) (*domain.Crew, error)
}

type PGCrewRepository struct {
	db DBTX
}

func NewCrewRepository(db DBTX) CrewRepository {
	return &PGCrewRepository{db: db}
}

func (r *PGCrewRepository) List(ctx context.Context, filter domain.CrewFilter) ([]domain.Crew, error) {
	q := psql.
		Select("id", "first_name", "last_name").
		From("crews").
		OrderBy("last_name", "first_name")
	if filter.FirstName != "" {
		q = q.Where(ilike("first_name", filter.FirstName))
	}
	if filter.LastName != "" {
		q = q.Where(ilike("last_name", filter.LastName))
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list crews sql: %w", err)
	}
	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list crews: %w", err)
	}
	defer rows.Close()

	crews := make([]domain.Crew, 0)
	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		crews = append(crews, c)
	}
	return crews, rows.Err()
}

func (r *PGCrewRepository) Create(ctx context.Context, crew domain.NewCrew) (*domain.Crew, error) {
	c := domain.Crew{FirstName: crew.FirstName, LastName: crew.LastName}
	if err := r.db.QueryRow(ctx,
		`INSERT INTO crews (first_name, last_name) VALUES ($1, $2) RETURNING id`,
		crew.FirstName, crew.LastName,
	).Scan(&c.ID); err != nil {
		return nil, fmt.Errorf("create crew: %w", err)
	}
	return &c, nil
}

var _ CrewRepository = (*PGCrewRepository)(nil)
