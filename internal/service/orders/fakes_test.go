package orders

import (
	"context"
	"sort"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/repository"
	"github.com/stretchr/testify/mock"
)

// memStore keeps committed state and restores it when a transaction fails.
type memStore struct {
	nextOrder  int64
	nextTicket int64
	orders     map[int64]domain.Order
	tickets    []domain.Ticket
	seatMaps   map[int64]domain.SeatMap
}

func newMemStore(seatMaps ...domain.SeatMap) *memStore {
	s := &memStore{
		orders:   make(map[int64]domain.Order),
		seatMaps: make(map[int64]domain.SeatMap),
	}
	for _, m := range seatMaps {
		s.seatMaps[m.FlightID] = m
	}
	return s
}

type snapshot struct {
	nextOrder  int64
	nextTicket int64
	orders     map[int64]domain.Order
	tickets    []domain.Ticket
}

func (s *memStore) snapshot() snapshot {
	orders := make(map[int64]domain.Order, len(s.orders))
	for k, v := range s.orders {
		orders[k] = v
	}
	return snapshot{
		nextOrder:  s.nextOrder,
		nextTicket: s.nextTicket,
		orders:     orders,
		tickets:    append([]domain.Ticket(nil), s.tickets...),
	}
}

func (s *memStore) restore(snap snapshot) {
	s.nextOrder = snap.nextOrder
	s.nextTicket = snap.nextTicket
	s.orders = snap.orders
	s.tickets = snap.tickets
}

func (s *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	snap := s.snapshot()
	if err := fn(ctx, s.repos()); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *memStore) repos() repository.Repositories {
	return &memRepos{store: s}
}

// memRepos implements only the accessors the order service touches.
type memRepos struct {
	repository.Repositories
	store *memStore
}

func (r *memRepos) Orders() repository.OrderRepository { return &memOrders{store: r.store} }
func (r *memRepos) Tickets() repository.TicketRepository { return &memTickets{store: r.store} }
func (r *memRepos) Flights() repository.FlightRepository { return &memFlights{store: r.store} }

type memOrders struct {
	store *memStore
}

func (m *memOrders) Create(_ context.Context, o *domain.Order) error {
	m.store.nextOrder++
	o.ID = m.store.nextOrder
	m.store.orders[o.ID] = domain.Order{ID: o.ID, UserID: o.UserID}
	return nil
}

func (m *memOrders) ListByUser(_ context.Context, userID int64, _ domain.OrderFilter) ([]domain.Order, error) {
	out := make([]domain.Order, 0)
	for _, o := range m.store.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memOrders) GetByID(_ context.Context, userID, id int64) (*domain.Order, error) {
	o, ok := m.store.orders[id]
	if !ok || o.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (m *memOrders) Delete(_ context.Context, userID, id int64) error {
	o, ok := m.store.orders[id]
	if !ok || o.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.store.orders, id)
	kept := m.store.tickets[:0]
	for _, t := range m.store.tickets {
		if t.OrderID != id {
			kept = append(kept, t)
		}
	}
	m.store.tickets = kept
	return nil
}

type memTickets struct {
	store *memStore
}

func (m *memTickets) Insert(_ context.Context, t *domain.Ticket) error {
	for _, existing := range m.store.tickets {
		if existing.FlightID == t.FlightID && existing.SeatNumber == t.SeatNumber {
			return domain.ErrSeatAlreadyTaken
		}
	}
	m.store.nextTicket++
	t.ID = m.store.nextTicket
	m.store.tickets = append(m.store.tickets, *t)
	return nil
}

func (m *memTickets) ListByOrders(_ context.Context, orderIDs []int64) ([]domain.Ticket, error) {
	want := make(map[int64]bool, len(orderIDs))
	for _, id := range orderIDs {
		want[id] = true
	}
	out := make([]domain.Ticket, 0)
	for _, t := range m.store.tickets {
		if want[t.OrderID] {
			out = append(out, t)
		}
	}
	return out, nil
}

type memFlights struct {
	repository.FlightRepository
	store *memStore
}

func (m *memFlights) SeatMap(_ context.Context, flightID int64) (domain.SeatMap, error) {
	sm, ok := m.store.seatMaps[flightID]
	if !ok {
		return domain.SeatMap{}, domain.ErrNotFound
	}
	return sm, nil
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) PublishWithRetry(ctx context.Context, topic, key string, value any, maxRetries int) error {
	args := m.Called(ctx, topic, key, value, maxRetries)
	return args.Error(0)
}

// Delete removes the flight together with its tickets.
func (m *memFlights) Delete(_ context.Context, id int64) error {
	if _, ok := m.store.seatMaps[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store.seatMaps, id)
	kept := m.store.tickets[:0]
	for _, t := range m.store.tickets {
		if t.FlightID != id {
			kept = append(kept, t)
		}
	}
	m.store.tickets = kept
	return nil
}
