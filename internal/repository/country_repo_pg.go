package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airservice/internal/domain"
)

// NamedRepository is implemented by lookup tables with a unique name column.
// Create returns domain.ErrDuplicate when the name already exists.
type NamedRepository[T any] interface {
	FindByName(ctx context.Context, name string) (*T, error)
	Create(ctx context.Context, name string) (*T, error)
}

type CountryRepository interface {
	NamedRepository[domain.Country]
	List(ctx context.Context) ([]domain.Country, error)
}

type AirplaneTypeRepository interface {
	NamedRepository[domain.AirplaneType]
}

type PGCountryRepository struct {
	db DBTX
}

func NewCountryRepository(db DBTX) CountryRepository {
	return &PGCountryRepository{db: db}
}

func (r *PGCountryRepository) List(ctx context.Context) ([]domain.Country, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM countries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	countries := make([]domain.Country, 0)
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

func (r *PGCountryRepository) FindByName(ctx context.Context, name string) (*domain.Country, error) {
	var c domain.Country
	if err := r.db.QueryRow(ctx, `SELECT id, name FROM countries WHERE name = $1`, name).Scan(&c.ID, &c.Name); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *PGCountryRepository) Create(ctx context.Context, name string) (*domain.Country, error) {
	c := domain.Country{Name: name}
	err := withSavepoint(ctx, r.db, func(q DBTX) error {
		return q.QueryRow(ctx, `INSERT INTO countries (name) VALUES ($1) RETURNING id`, name).Scan(&c.ID)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("create country: %w", err)
	}
	return &c, nil
}

type PGAirplaneTypeRepository struct {
	db DBTX
}

func NewAirplaneTypeRepository(db DBTX) AirplaneTypeRepository {
	return &PGAirplaneTypeRepository{db: db}
}

func (r *PGAirplaneTypeRepository) FindByName(ctx context.Context, name string) (*domain.AirplaneType, error) {
	var t domain.AirplaneType
	if err := r.db.QueryRow(ctx, `SELECT id, name FROM airplane_types WHERE name = $1`, name).Scan(&t.ID, &t.Name); err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *PGAirplaneTypeRepository) Create(ctx context.Context, name string) (*domain.AirplaneType, error) {
	t := domain.AirplaneType{Name: name}
	err := withSavepoint(ctx, r.db, func(q DBTX) error {
		return q.QueryRow(ctx, `INSERT INTO airplane_types (name) VALUES ($1) RETURNING id`, name).Scan(&t.ID)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("create airplane type: %w", err)
	}
	return &t, nil
}

var (
	_ CountryRepository      = (*PGCountryRepository)(nil)
	_ AirplaneTypeRepository = (*PGAirplaneTypeRepository)(nil)
)
