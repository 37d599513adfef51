package reference

import (
	"context"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/repository"
	"github.com/stretchr/testify/mock"
)

// fakeTx runs fn directly against repos and records whether it committed.
type fakeTx struct {
	repos     repository.Repositories
	committed int
	rolled    int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	if err := fn(ctx, f.repos); err != nil {
		f.rolled++
		return err
	}
	f.committed++
	return nil
}

type fakeRepos struct {
	repository.Repositories
	countries *MockCountryRepository
	types     *MockAirplaneTypeRepository
	cities    *MockCityRepository
	airplanes *MockAirplaneRepository
	routes    *MockRouteRepository
}

func newFakeRepos() *fakeRepos {
	return &fakeRepos{
		countries: &MockCountryRepository{},
		types:     &MockAirplaneTypeRepository{},
		cities:    &MockCityRepository{},
		airplanes: &MockAirplaneRepository{},
		routes:    &MockRouteRepository{},
	}
}

func (r *fakeRepos) Countries() repository.CountryRepository { return r.countries }
func (r *fakeRepos) AirplaneTypes() repository.AirplaneTypeRepository { return r.types }
func (r *fakeRepos) Cities() repository.CityRepository { return r.cities }
func (r *fakeRepos) Airplanes() repository.AirplaneRepository { return r.airplanes }
func (r *fakeRepos) Routes() repository.RouteRepository { return r.routes }

type MockCountryRepository struct {
	mock.Mock
}

func (m *MockCountryRepository) List(ctx context.Context) ([]domain.Country, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Country), args.Error(1)
}

func (m *MockCountryRepository) FindByName(ctx context.Context, name string) (*domain.Country, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Country), args.Error(1)
}

func (m *MockCountryRepository) Create(ctx context.Context, name string) (*domain.Country, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Country), args.Error(1)
}

type MockAirplaneTypeRepository struct {
	mock.Mock
}

func (m *MockAirplaneTypeRepository) FindByName(ctx context.Context, name string) (*domain.AirplaneType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AirplaneType), args.Error(1)
}

func (m *MockAirplaneTypeRepository) Create(ctx context.Context, name string) (*domain.AirplaneType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AirplaneType), args.Error(1)
}

type MockCityRepository struct {
	mock.Mock
}

func (m *MockCityRepository) List(ctx context.Context, filter domain.CityFilter) ([]domain.City, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.City), args.Error(1)
}

func (m *MockCityRepository) Create(ctx context.Context, name string, country domain.Country) (*domain.City, error) {
	args := m.Called(ctx, name, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

type MockAirplaneRepository struct {
	mock.Mock
}

func (m *MockAirplaneRepository) List(ctx context.Context, filter domain.AirplaneFilter) ([]domain.Airplane, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Airplane), args.Error(1)
}

func (m *MockAirplaneRepository) Create(ctx context.Context, name string, rows, seatsInRow int, airplaneType domain.AirplaneType) (*domain.Airplane, error) {
	args := m.Called(ctx, name, rows, seatsInRow, airplaneType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func (m *MockAirplaneRepository) LockByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func (m *MockAirplaneRepository) HasSoldTickets(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAirplaneRepository) UpdateLayout(ctx context.Context, id int64, layout domain.AirplaneLayout) error {
	args := m.Called(ctx, id, layout)
	return args.Error(0)
}

type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) List(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockRouteRepository) Create(ctx context.Context, route domain.NewRoute) (*domain.Route, error) {
	args := m.Called(ctx, route)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
