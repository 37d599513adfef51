// Package reference manages the catalog data flights are built from:
// countries, cities, airports, airplanes, routes and crews.
package reference

import (
	"context"
	"errors"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/repository"
	"github.com/Domenick1991/airservice/internal/validation"
	"go.uber.org/zap"
)

type ReferenceUseCase interface {
	ListCountries(ctx context.Context) ([]domain.Country, error)

	ListCities(ctx context.Context, filter domain.CityFilter) ([]domain.City, error)
	CreateCity(ctx context.Context, city domain.NewCity) (*domain.City, error)

	ListAirports(ctx context.Context, filter domain.AirportFilter) ([]domain.Airport, error)
	CreateAirport(ctx context.Context, airport domain.NewAirport) (*domain.Airport, error)

	ListAirplanes(ctx context.Context, filter domain.AirplaneFilter) ([]domain.Airplane, error)
	CreateAirplane(ctx context.Context, airplane domain.NewAirplane) (*domain.Airplane, error)
	UpdateAirplaneLayout(ctx context.Context, id int64, layout domain.AirplaneLayout) (*domain.Airplane, error)

	ListRoutes(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, error)
	CreateRoute(ctx context.Context, route domain.NewRoute) (*domain.Route, error)

	ListCrews(ctx context.Context, filter domain.CrewFilter) ([]domain.Crew, error)
	CreateCrew(ctx context.Context, crew domain.NewCrew) (*domain.Crew, error)
}

type FlightsCache interface {
	InvalidateFlights(ctx context.Context) error
}

type ReferenceService struct {
	tx    repository.Transactor
	repos repository.Repositories
	cache FlightsCache
	log   *zap.Logger
}

type ReferenceServiceOption func(*ReferenceService)

func WithCache(cache FlightsCache) ReferenceServiceOption {
	return func(s *ReferenceService) {
		s.cache = cache
	}
}

func WithLogger(log *zap.Logger) ReferenceServiceOption {
	return func(s *ReferenceService) {
		s.log = log
	}
}

func NewReferenceService(tx repository.Transactor, repos repository.Repositories, opts ...ReferenceServiceOption) *ReferenceService {
	s := &ReferenceService{tx: tx, repos: repos, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// resolveOrCreate returns the row with the given name, creating it when
// missing. A concurrent creator winning the race is resolved by reading
// the row it wrote.
func resolveOrCreate[T any](ctx context.Context, repo repository.NamedRepository[T], name string) (*T, error) {
	found, err := repo.FindByName(ctx, name)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	created, err := repo.Create(ctx, name)
	if err == nil {
		return created, nil
	}
	if errors.Is(err, domain.ErrDuplicate) {
		return repo.FindByName(ctx, name)
	}
	return nil, err
}

func (s *ReferenceService) ListCountries(ctx context.Context) ([]domain.Country, error) {
	return s.repos.Countries().List(ctx)
}

func (s *ReferenceService) ListCities(ctx context.Context, filter domain.CityFilter) ([]domain.City, error) {
	return s.repos.Cities().List(ctx, filter)
}

func (s *ReferenceService) CreateCity(ctx context.Context, city domain.NewCity) (*domain.City, error) {
	if err := validation.Struct(city); err != nil {
		return nil, err
	}

	var created *domain.City
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		country, err := resolveOrCreate[domain.Country](ctx, repos.Countries(), city.CountryName)
		if err != nil {
			return err
		}
		created, err = repos.Cities().Create(ctx, city.Name, *country)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *ReferenceService) ListAirports(ctx context.Context, filter domain.AirportFilter) ([]domain.Airport, error) {
	return s.repos.Airports().List(ctx, filter)
}

func (s *ReferenceService) CreateAirport(ctx context.Context, airport domain.NewAirport) (*domain.Airport, error) {
	if err := validation.Struct(airport); err != nil {
		return nil, err
	}
	return s.repos.Airports().Create(ctx, airport)
}

func (s *ReferenceService) ListAirplanes(ctx context.Context, filter domain.AirplaneFilter) ([]domain.Airplane, error) {
	return s.repos.Airplanes().List(ctx, filter)
}

func (s *ReferenceService) CreateAirplane(ctx context.Context, airplane domain.NewAirplane) (*domain.Airplane, error) {
	if err := validation.Struct(airplane); err != nil {
		return nil, err
	}

	var created *domain.Airplane
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		airplaneType, err := resolveOrCreate[domain.AirplaneType](ctx, repos.AirplaneTypes(), airplane.TypeName)
		if err != nil {
			return err
		}
		created, err = repos.Airplanes().Create(ctx, airplane.Name, airplane.Rows, airplane.SeatsInRow, *airplaneType)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateAirplaneLayout changes the seat grid of an airplane. The airplane
// row stays locked until commit, so no ticket can be validated against the
// old grid while it changes; a plane with sold tickets is rejected with
// domain.ErrAirplaneInUse.
func (s *ReferenceService) UpdateAirplaneLayout(ctx context.Context, id int64, layout domain.AirplaneLayout) (*domain.Airplane, error) {
	if err := validation.Struct(layout); err != nil {
		return nil, err
	}

	var updated *domain.Airplane
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		airplane, err := repos.Airplanes().LockByID(ctx, id)
		if err != nil {
			return err
		}
		sold, err := repos.Airplanes().HasSoldTickets(ctx, id)
		if err != nil {
			return err
		}
		if sold {
			return domain.ErrAirplaneInUse
		}
		if err := repos.Airplanes().UpdateLayout(ctx, id, layout); err != nil {
			return err
		}
		airplane.Rows = layout.Rows
		airplane.SeatsInRow = layout.SeatsInRow
		updated = airplane
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			s.log.Warn("flights cache invalidation failed", zap.Error(err))
		}
	}
	s.log.Info("airplane layout updated",
		zap.Int64("airplane_id", id),
		zap.Int("rows", layout.Rows),
		zap.Int("seats_in_row", layout.SeatsInRow),
	)
	return updated, nil
}

func (s *ReferenceService) ListRoutes(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, error) {
	return s.repos.Routes().List(ctx, filter)
}

func (s *ReferenceService) CreateRoute(ctx context.Context, route domain.NewRoute) (*domain.Route, error) {
	if err := validation.Struct(route); err != nil {
		return nil, err
	}
	return s.repos.Routes().Create(ctx, route)
}

func (s *ReferenceService) ListCrews(ctx context.Context, filter domain.CrewFilter) ([]domain.Crew, error) {
	return s.repos.Crews().List(ctx, filter)
}

func (s *ReferenceService) CreateCrew(ctx context.Context, crew domain.NewCrew) (*domain.Crew, error) {
	if err := validation.Struct(crew); err != nil {
		return nil, err
	}
	return s.repos.Crews().Create(ctx, crew)
}

var _ ReferenceUseCase = (*ReferenceService)(nil)
