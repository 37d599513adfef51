package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories groups every repository bound to one DBTX.
type Repositories interface {
	Users() UserRepository
	Countries() CountryRepository
	Cities() CityRepository
	Airports() AirportRepository
	AirplaneTypes() AirplaneTypeRepository
	Airplanes() AirplaneRepository
	Routes() RouteRepository
	Crews() CrewRepository
	Flights() FlightRepository
	Orders() OrderRepository
	Tickets() TicketRepository
}

// Transactor runs fn inside a single database transaction. The transaction
// commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

type repos struct {
	db DBTX
}

func newRepos(db DBTX) *repos { return &repos{db: db} }

func (r *repos) Users() UserRepository { return NewUserRepository(r.db) }
func (r *repos) Countries() CountryRepository { return NewCountryRepository(r.db) }
func (r *repos) Cities() CityRepository { return NewCityRepository(r.db) }
func (r *repos) Airports() AirportRepository { return NewAirportRepository(r.db) }
func (r *repos) AirplaneTypes() AirplaneTypeRepository { return NewAirplaneTypeRepository(r.db) }
func (r *repos) Airplanes() AirplaneRepository { return NewAirplaneRepository(r.db) }
func (r *repos) Routes() RouteRepository { return NewRouteRepository(r.db) }
func (r *repos) Crews() CrewRepository { return NewCrewRepository(r.db) }
func (r *repos) Flights() FlightRepository { return NewFlightRepository(r.db) }
func (r *repos) Orders() OrderRepository { return NewOrderRepository(r.db) }
func (r *repos) Tickets() TicketRepository { return NewTicketRepository(r.db) }

// Store hands out pool-bound repositories and runs transactions.
type Store struct {
	*repos
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{repos: newRepos(pool), pool: pool}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, newRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

var (
	_ Repositories = (*Store)(nil)
	_ Transactor   = (*Store)(nil)
)
