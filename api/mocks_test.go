package api

import (
	"context"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockOrderUseCase struct {
	mock.Mock
}

func (m *MockOrderUseCase) CreateOrder(ctx context.Context, userID int64, reqs []domain.TicketRequest) (*domain.Order, error) {
	args := m.Called(ctx, userID, reqs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderUseCase) ListOrders(ctx context.Context, userID int64, filter domain.OrderFilter) ([]domain.Order, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderUseCase) GetOrder(ctx context.Context, userID, id int64) (*domain.Order, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderUseCase) DeleteOrder(ctx context.Context, userID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.FlightSummary), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Create(ctx context.Context, flight domain.NewFlight) (*domain.Flight, error) {
	args := m.Called(ctx, flight)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	args := m.Called(ctx, creds)
	return args.String(0), args.Error(1)
}

func (m *MockAuthUseCase) ParseToken(token string) (domain.Principal, error) {
	args := m.Called(token)
	return args.Get(0).(domain.Principal), args.Error(1)
}

func (m *MockAuthUseCase) Me(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockReferenceUseCase struct {
	mock.Mock
}

func (m *MockReferenceUseCase) ListCountries(ctx context.Context) ([]domain.Country, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Country), args.Error(1)
}

func (m *MockReferenceUseCase) ListCities(ctx context.Context, filter domain.CityFilter) ([]domain.City, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.City), args.Error(1)
}

func (m *MockReferenceUseCase) CreateCity(ctx context.Context, city domain.NewCity) (*domain.City, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

func (m *MockReferenceUseCase) ListAirports(ctx context.Context, filter domain.AirportFilter) ([]domain.Airport, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockReferenceUseCase) CreateAirport(ctx context.Context, airport domain.NewAirport) (*domain.Airport, error) {
	args := m.Called(ctx, airport)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockReferenceUseCase) ListAirplanes(ctx context.Context, filter domain.AirplaneFilter) ([]domain.Airplane, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Airplane), args.Error(1)
}

func (m *MockReferenceUseCase) CreateAirplane(ctx context.Context, airplane domain.NewAirplane) (*domain.Airplane, error) {
	args := m.Called(ctx, airplane)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func (m *MockReferenceUseCase) UpdateAirplaneLayout(ctx context.Context, id int64, layout domain.AirplaneLayout) (*domain.Airplane, error) {
	args := m.Called(ctx, id, layout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func (m *MockReferenceUseCase) ListRoutes(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockReferenceUseCase) CreateRoute(ctx context.Context, route domain.NewRoute) (*domain.Route, error) {
	args := m.Called(ctx, route)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockReferenceUseCase) ListCrews(ctx context.Context, filter domain.CrewFilter) ([]domain.Crew, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Crew), args.Error(1)
}

func (m *MockReferenceUseCase) CreateCrew(ctx context.Context, crew domain.NewCrew) (*domain.Crew, error) {
	args := m.Called(ctx, crew)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Crew), args.Error(1)
}
