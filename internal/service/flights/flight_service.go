package flights

import (
	"context"

	"github.com/Domenick1991/airservice/internal/cache"
	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/metrics"
	"github.com/Domenick1991/airservice/internal/repository"
	"github.com/Domenick1991/airservice/internal/validation"
	"go.uber.org/zap"
)

type FlightUseCase interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight domain.NewFlight) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

// FlightCache stores flight listings per filter key.
type FlightCache interface {
	GetFlights(ctx context.Context, key string) ([]domain.FlightSummary, error)
	SetFlights(ctx context.Context, key string, flights []domain.FlightSummary) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
	log   *zap.Logger
}

func NewFlightService(repo repository.FlightRepository, cache FlightCache, log *zap.Logger) *FlightService {
	if log == nil {
		log = zap.NewNop()
	}
	return &FlightService{repo: repo, cache: cache, log: log}
}

// List serves from the cache when possible. Cache errors degrade to a
// database read.
func (s *FlightService) List(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, error) {
	key := cache.FlightsKey(filter)
	if s.cache != nil {
		cached, err := s.cache.GetFlights(ctx, key)
		switch {
		case err != nil:
			s.log.Warn("flights cache read failed", zap.String("key", key), zap.Error(err))
		case cached != nil:
			metrics.IncFlightsCache(true)
			return cached, nil
		}
		metrics.IncFlightsCache(false)
	}

	flights, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	// An order committed between the read above and this write can leave a
	// stale tickets_available in the cache. The entry TTL bounds that window.
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, key, flights); err != nil {
			s.log.Warn("flights cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, nf domain.NewFlight) (*domain.Flight, error) {
	if err := validation.Struct(nf); err != nil {
		return nil, err
	}
	window := domain.Flight{Departure: nf.Departure, Arrival: nf.Arrival}
	if err := window.ValidateWindow(); err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, nf)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.Info("flight created", zap.Int64("flight_id", id))
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.Info("flight deleted", zap.Int64("flight_id", id))
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.Warn("flights cache invalidation failed", zap.Error(err))
	}
}

var _ FlightUseCase = (*FlightService)(nil)
