package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const topic = "order-events"

// flight 1: 20 rows x 6 seats, flight 2: 2 rows x 2 seats.
var (
	flight1 = domain.SeatMap{FlightID: 1, AirplaneID: 1, Rows: 20, SeatsInRow: 6}
	flight2 = domain.SeatMap{FlightID: 2, AirplaneID: 2, Rows: 2, SeatsInRow: 2}
)

func newService(store *memStore, cache *MockCache, producer *MockProducer) *OrderService {
	return NewOrderService(store, store.repos(), WithCache(cache), WithProducer(producer, topic))
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	store := newMemStore(flight1, flight2)
	cache := &MockCache{}
	producer := &MockProducer{}
	svc := newService(store, cache, producer)
	ctx := context.Background()

	cache.On("InvalidateFlights", ctx).Return(nil).Once()
	producer.On("PublishWithRetry", ctx, topic, "order-1", mock.MatchedBy(func(e kafka.OrderEvent) bool {
		return e.Type == kafka.EventOrderCreated && e.UserID == 5 && len(e.Tickets) == 2
	}), publishAttempts).Return(nil).Once()

	order, err := svc.CreateOrder(ctx, 5, []domain.TicketRequest{
		{FlightID: 1, SeatRow: 1, SeatNumber: 1},
		{FlightID: 2, SeatRow: 2, SeatNumber: 4},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), order.ID)
	require.Len(t, order.Tickets, 2)
	assert.Equal(t, order.ID, order.Tickets[0].OrderID)
	assert.Len(t, store.tickets, 2)
	cache.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestOrderService_CreateOrder_InvalidTicketRollsBackWholeOrder(t *testing.T) {
	store := newMemStore(flight1)
	cache := &MockCache{}
	producer := &MockProducer{}
	svc := newService(store, cache, producer)

	_, err := svc.CreateOrder(context.Background(), 5, []domain.TicketRequest{
		{FlightID: 1, SeatRow: 1, SeatNumber: 1},
		{FlightID: 1, SeatRow: 1, SeatNumber: 2},
		{FlightID: 1, SeatRow: 21, SeatNumber: 3},
		{FlightID: 1, SeatRow: 1, SeatNumber: 4},
	})

	var te *domain.TicketError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 2, te.Index)

	var rangeErr *domain.SeatOutOfRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, domain.RowField, rangeErr.Field)
	assert.Equal(t, 20, rangeErr.Max)

	assert.Empty(t, store.orders)
	assert.Empty(t, store.tickets)
	cache.AssertNotCalled(t, "InvalidateFlights", mock.Anything)
	producer.AssertNotCalled(t, "PublishWithRetry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_SeatTakenByEarlierOrder(t *testing.T) {
	store := newMemStore(flight1)
	cache := &MockCache{}
	cache.On("InvalidateFlights", mock.Anything).Return(nil)
	producer := &MockProducer{}
	producer.On("PublishWithRetry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, publishAttempts).Return(nil)
	svc := newService(store, cache, producer)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, 5, []domain.TicketRequest{{FlightID: 1, SeatRow: 1, SeatNumber: 7}})
	require.NoError(t, err)

	_, err = svc.CreateOrder(ctx, 6, []domain.TicketRequest{
		{FlightID: 1, SeatRow: 3, SeatNumber: 8},
		{FlightID: 1, SeatRow: 2, SeatNumber: 7},
	})

	assert.ErrorIs(t, err, domain.ErrSeatAlreadyTaken)
	var te *domain.TicketError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 1, te.Index)
	assert.Len(t, store.orders, 1)
	assert.Len(t, store.tickets, 1)
}

func TestOrderService_CreateOrder_DuplicateSeatWithinOrder(t *testing.T) {
	store := newMemStore(flight1)
	svc := newService(store, &MockCache{}, &MockProducer{})

	_, err := svc.CreateOrder(context.Background(), 5, []domain.TicketRequest{
		{FlightID: 1, SeatRow: 1, SeatNumber: 9},
		{FlightID: 1, SeatRow: 1, SeatNumber: 9},
	})

	assert.ErrorIs(t, err, domain.ErrSeatAlreadyTaken)
	assert.Empty(t, store.orders)
	assert.Empty(t, store.tickets)
}

func TestOrderService_CreateOrder_UnknownFlight(t *testing.T) {
	store := newMemStore(flight1)
	svc := newService(store, &MockCache{}, &MockProducer{})

	_, err := svc.CreateOrder(context.Background(), 5, []domain.TicketRequest{{FlightID: 42, SeatRow: 1, SeatNumber: 1}})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "flight_id")
	assert.Empty(t, store.orders)
}

func TestOrderService_CreateOrder_RequestValidation(t *testing.T) {
	store := newMemStore(flight1)
	svc := newService(store, &MockCache{}, &MockProducer{})

	_, err := svc.CreateOrder(context.Background(), 5, nil)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "tickets")

	_, err = svc.CreateOrder(context.Background(), 5, []domain.TicketRequest{
		{FlightID: 1, SeatRow: 1, SeatNumber: 1},
		{FlightID: 0, SeatRow: 1, SeatNumber: 1},
	})
	var te *domain.TicketError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 1, te.Index)
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "flight_id")
	assert.Empty(t, store.orders)
}

func TestOrderService_CreateOrder_PublishFailureKeepsOrder(t *testing.T) {
	store := newMemStore(flight1)
	cache := &MockCache{}
	cache.On("InvalidateFlights", mock.Anything).Return(errors.New("redis down")).Once()
	producer := &MockProducer{}
	producer.On("PublishWithRetry", mock.Anything, topic, mock.Anything, mock.Anything, publishAttempts).Return(errors.New("kafka down")).Once()
	svc := newService(store, cache, producer)

	order, err := svc.CreateOrder(context.Background(), 5, []domain.TicketRequest{{FlightID: 1, SeatRow: 1, SeatNumber: 1}})

	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Len(t, store.orders, 1)
}

func TestOrderService_ListAndGet(t *testing.T) {
	store := newMemStore(flight1)
	cache := &MockCache{}
	cache.On("InvalidateFlights", mock.Anything).Return(nil)
	producer := &MockProducer{}
	producer.On("PublishWithRetry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, publishAttempts).Return(nil)
	svc := newService(store, cache, producer)
	ctx := context.Background()

	first, err := svc.CreateOrder(ctx, 5, []domain.TicketRequest{
		{FlightID: 1, SeatRow: 1, SeatNumber: 1},
		{FlightID: 1, SeatRow: 1, SeatNumber: 2},
	})
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, 5, []domain.TicketRequest{{FlightID: 1, SeatRow: 2, SeatNumber: 7}})
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, 6, []domain.TicketRequest{{FlightID: 1, SeatRow: 2, SeatNumber: 8}})
	require.NoError(t, err)

	orders, err := svc.ListOrders(ctx, 5, domain.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Len(t, orders[0].Tickets, 1)
	assert.Len(t, orders[1].Tickets, 2)

	got, err := svc.GetOrder(ctx, 5, first.ID)
	require.NoError(t, err)
	assert.Len(t, got.Tickets, 2)

	_, err = svc.GetOrder(ctx, 6, first.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	empty, err := svc.ListOrders(ctx, 99, domain.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestOrderService_DeleteOrder_FreesSeat(t *testing.T) {
	store := newMemStore(flight1)
	cache := &MockCache{}
	cache.On("InvalidateFlights", mock.Anything).Return(nil)
	producer := &MockProducer{}
	producer.On("PublishWithRetry", mock.Anything, topic, mock.Anything, mock.MatchedBy(func(e kafka.OrderEvent) bool {
		return e.Type == kafka.EventOrderCreated
	}), publishAttempts).Return(nil)
	producer.On("PublishWithRetry", mock.Anything, topic, "order-1", mock.MatchedBy(func(e kafka.OrderEvent) bool {
		return e.Type == kafka.EventOrderDeleted && len(e.Tickets) == 1
	}), publishAttempts).Return(nil).Once()
	svc := newService(store, cache, producer)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, 5, []domain.TicketRequest{{FlightID: 1, SeatRow: 1, SeatNumber: 3}})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteOrder(ctx, 6, order.ID), domain.ErrNotFound)
	require.NoError(t, svc.DeleteOrder(ctx, 5, order.ID))
	assert.Empty(t, store.tickets)

	_, err = svc.CreateOrder(ctx, 6, []domain.TicketRequest{{FlightID: 1, SeatRow: 1, SeatNumber: 3}})
	assert.NoError(t, err)
	producer.AssertExpectations(t)
}

func TestOrderService_FlightDeleteCascadesToTickets(t *testing.T) {
	store := newMemStore(flight1, flight2)
	cache := &MockCache{}
	cache.On("InvalidateFlights", mock.Anything).Return(nil)
	producer := &MockProducer{}
	producer.On("PublishWithRetry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, publishAttempts).Return(nil)
	svc := newService(store, cache, producer)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, 5, []domain.TicketRequest{
		{FlightID: 1, SeatRow: 1, SeatNumber: 1},
		{FlightID: 2, SeatRow: 1, SeatNumber: 1},
	})
	require.NoError(t, err)

	require.NoError(t, store.repos().Flights().Delete(ctx, 1))

	got, err := svc.GetOrder(ctx, 5, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Tickets, 1)
	assert.Equal(t, int64(2), got.Tickets[0].FlightID)

	// A flight recreated under the same id starts with every seat free.
	store.seatMaps[1] = flight1
	_, err = svc.CreateOrder(ctx, 6, []domain.TicketRequest{{FlightID: 1, SeatRow: 1, SeatNumber: 1}})
	require.NoError(t, err)

	_, err = svc.CreateOrder(ctx, 7, []domain.TicketRequest{{FlightID: 2, SeatRow: 1, SeatNumber: 1}})
	var terr *domain.TicketError
	require.ErrorAs(t, err, &terr)
	assert.ErrorIs(t, err, domain.ErrSeatAlreadyTaken)
}
