package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airservice/internal/domain"
	sq "github.com/Masterminds/squirrel"
)

type RouteRepository interface {
	List(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, error)
	Create(ctx context.Context, route domain.NewRoute) (*domain.Route, error)
}

type PGRouteRepository struct {
	db DBTX
}

func NewRouteRepository(db DBTX) RouteRepository {
	return &PGRouteRepository{db: db}
}

func buildRouteListQuery(filter domain.RouteFilter) sq.SelectBuilder {
	q := psql.
		Select(
			"r.id", "r.distance",
			"src.id", "src.name", "sc.name", "sco.name",
			"dst.id", "dst.name", "dc.name", "dco.name",
		).
		From("routes r").
		Join("airports src ON src.id = r.source_id").
		Join("cities sc ON sc.id = src.city_id").
		Join("countries sco ON sco.id = sc.country_id").
		Join("airports dst ON dst.id = r.destination_id").
		Join("cities dc ON dc.id = dst.city_id").
		Join("countries dco ON dco.id = dc.country_id").
		OrderBy("r.id")

	if filter.Source != "" {
		q = q.Where(ilike("src.name", filter.Source))
	}
	if filter.Destination != "" {
		q = q.Where(ilike("dst.name", filter.Destination))
	}
	if filter.DistanceMin != nil {
		q = q.Where(sq.GtOrEq{"r.distance": *filter.DistanceMin})
	}
	if filter.DistanceMax != nil {
		q = q.Where(sq.LtOrEq{"r.distance": *filter.DistanceMax})
	}
	return q
}

func (r *PGRouteRepository) List(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, error) {
	sqlStr, args, err := buildRouteListQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list routes sql: %w", err)
	}
	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		var rt domain.Route
		if err := rows.Scan(
			&rt.ID, &rt.Distance,
			&rt.Source.ID, &rt.Source.Name, &rt.Source.CityName, &rt.Source.CountryName,
			&rt.Destination.ID, &rt.Destination.Name, &rt.Destination.CityName, &rt.Destination.CountryName,
		); err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, rows.Err()
}

func (r *PGRouteRepository) Create(ctx context.Context, route domain.NewRoute) (*domain.Route, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO routes (source_id, destination_id, distance) VALUES ($1, $2, $3) RETURNING id`,
		route.SourceID, route.DestinationID, route.Distance,
	).Scan(&id)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, domain.ErrRouteAlreadyExists
		case isForeignKeyViolation(err):
			return nil, domain.ErrUnknownAirport
		}
		return nil, fmt.Errorf("create route: %w", err)
	}

	return r.getByID(ctx, id)
}

func (r *PGRouteRepository) getByID(ctx context.Context, id int64) (*domain.Route, error) {
	sqlStr, args, err := buildRouteListQuery(domain.RouteFilter{}).Where(sq.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get route sql: %w", err)
	}
	var rt domain.Route
	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(
		&rt.ID, &rt.Distance,
		&rt.Source.ID, &rt.Source.Name, &rt.Source.CityName, &rt.Source.CountryName,
		&rt.Destination.ID, &rt.Destination.Name, &rt.Destination.CityName, &rt.Destination.CountryName,
	); err != nil {
		return nil, notFound(err)
	}
	return &rt, nil
}

var _ RouteRepository = (*PGRouteRepository)(nil)
