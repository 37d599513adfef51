package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airservice/internal/domain"
)

type AirportRepository interface {
	List(ctx context.Context, filter domain.AirportFilter) ([]domain.Airport, error)
	Create(ctx context.Context, airport domain.NewAirport) (*domain.Airport, error)
}

type PGAirportRepository struct {
	db DBTX
}

func NewAirportRepository(db DBTX) AirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) List(ctx context.Context, filter domain.AirportFilter) ([]domain.Airport, error) {
	q := psql.
		Select("ap.id", "ap.name", "c.name", "co.name").
		From("airports ap").
		Join("cities c ON c.id = ap.city_id").
		Join("countries co ON co.id = c.country_id").
		OrderBy("ap.name")
	if filter.City != "" {
		q = q.Where(ilike("c.name", filter.City))
	}
	if filter.Country != "" {
		q = q.Where(ilike("co.name", filter.Country))
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list airports sql: %w", err)
	}
	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list airports: %w", err)
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.ID, &a.Name, &a.CityName, &a.CountryName); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

func (r *PGAirportRepository) Create(ctx context.Context, airport domain.NewAirport) (*domain.Airport, error) {
	a := domain.Airport{Name: airport.Name}
	err := r.db.QueryRow(ctx, `WITH ins AS (
			INSERT INTO airports (name, city_id) VALUES ($1, $2) RETURNING id, city_id
		)
		SELECT ins.id, c.name, co.name FROM ins
		JOIN cities c ON c.id = ins.city_id
		JOIN countries co ON co.id = c.country_id`, airport.Name, airport.CityID).
		Scan(&a.ID, &a.CityName, &a.CountryName)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return nil, domain.ErrInvalidReference
		}
		return nil, fmt.Errorf("create airport: %w", err)
	}
	return &a, nil
}

var _ AirportRepository = (*PGAirportRepository)(nil)
