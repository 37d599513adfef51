package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airservice/internal/domain"
)

type CityRepository interface {
	List(ctx context.Context, filter domain.CityFilter) ([]domain.City, error)
	Create(ctx context.Context, name string, country domain.Country) (*domain.City, error)
}

type PGCityRepository struct {
	db DBTX
}

func NewCityRepository(db DBTX) CityRepository {
	return &PGCityRepository{db: db}
}

func (r *PGCityRepository) List(ctx context.Context, filter domain.CityFilter) ([]domain.City, error) {
	q := psql.
		Select("c.id", "c.name", "co.id", "co.name").
		From("cities c").
		Join("countries co ON co.id = c.country_id").
		OrderBy("c.name", "c.id")
	if filter.Country != "" {
		q = q.Where(ilike("co.name", filter.Country))
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list cities sql: %w", err)
	}
	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()

	cities := make([]domain.City, 0)
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.Name, &c.Country.ID, &c.Country.Name); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

func (r *PGCityRepository) Create(ctx context.Context, name string, country domain.Country) (*domain.City, error) {
	c := domain.City{Name: name, Country: country}
	if err := r.db.QueryRow(ctx, `INSERT INTO cities (name, country_id) VALUES ($1, $2) RETURNING id`, name, country.ID).
		Scan(&c.ID); err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrInvalidReference
		}
		return nil, fmt.Errorf("create city: %w", err)
	}
	return &c, nil
}

var _ CityRepository = (*PGCityRepository)(nil)
