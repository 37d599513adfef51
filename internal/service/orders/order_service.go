package orders

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/kafka"
	"github.com/Domenick1991/airservice/internal/metrics"
	"github.com/Domenick1991/airservice/internal/repository"
	"github.com/Domenick1991/airservice/internal/service/tickets"
	"github.com/Domenick1991/airservice/internal/validation"
	"go.uber.org/zap"
)

type OrderUseCase interface {
	CreateOrder(ctx context.Context, userID int64, reqs []domain.TicketRequest) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int64, filter domain.OrderFilter) ([]domain.Order, error)
	GetOrder(ctx context.Context, userID, id int64) (*domain.Order, error)
	DeleteOrder(ctx context.Context, userID, id int64) error
}

type EventProducer interface {
	PublishWithRetry(ctx context.Context, topic, key string, value any, maxRetries int) error
}

const publishAttempts = 3

// FlightsCache drops cached flight listings whose availability changed.
type FlightsCache interface {
	InvalidateFlights(ctx context.Context) error
}

type OrderService struct {
	tx       repository.Transactor
	repos    repository.Repositories
	cache    FlightsCache
	producer EventProducer
	topic    string
	// notificationsTopic receives a copy of every order event for the worker.
	notificationsTopic string
	log                *zap.Logger
}

type OrderServiceOption func(*OrderService)

func WithCache(cache FlightsCache) OrderServiceOption {
	return func(s *OrderService) {
		s.cache = cache
	}
}

func WithProducer(producer EventProducer, topic string) OrderServiceOption {
	return func(s *OrderService) {
		s.producer = producer
		s.topic = topic
	}
}

func WithNotificationsTopic(topic string) OrderServiceOption {
	return func(s *OrderService) {
		s.notificationsTopic = topic
	}
}

func WithLogger(log *zap.Logger) OrderServiceOption {
	return func(s *OrderService) {
		s.log = log
	}
}

func NewOrderService(tx repository.Transactor, repos repository.Repositories, opts ...OrderServiceOption) *OrderService {
	s := &OrderService{tx: tx, repos: repos, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrder creates the order and allocates every requested ticket in one
// transaction. Any failing ticket rolls back the whole order; the error is a
// *domain.TicketError carrying the ticket's position.
func (s *OrderService) CreateOrder(ctx context.Context, userID int64, reqs []domain.TicketRequest) (*domain.Order, error) {
	if len(reqs) == 0 {
		return nil, domain.NewValidationError("tickets", "at least one ticket is required")
	}
	for i, req := range reqs {
		if err := validation.Struct(req); err != nil {
			return nil, &domain.TicketError{Index: i, Err: err}
		}
	}

	var order *domain.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		o := &domain.Order{UserID: userID}
		if err := repos.Orders().Create(ctx, o); err != nil {
			return err
		}

		alloc := tickets.NewAllocator(repos.Flights(), repos.Tickets())
		o.Tickets = make([]domain.Ticket, 0, len(reqs))
		for i, req := range reqs {
			t, err := alloc.Allocate(ctx, o.ID, req)
			if err != nil {
				return &domain.TicketError{Index: i, Err: err}
			}
			o.Tickets = append(o.Tickets, *t)
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncOrdersCreated()
	s.log.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", userID),
		zap.Int("tickets", len(order.Tickets)),
	)
	s.afterChange(ctx, kafka.EventOrderCreated, order)
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID int64, filter domain.OrderFilter) ([]domain.Order, error) {
	orders, err := s.repos.Orders().ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]int64, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}
	ts, err := s.repos.Tickets().ListByOrders(ctx, ids)
	if err != nil {
		return nil, err
	}

	byOrder := make(map[int64][]domain.Ticket, len(orders))
	for _, t := range ts {
		byOrder[t.OrderID] = append(byOrder[t.OrderID], t)
	}
	for i := range orders {
		orders[i].Tickets = byOrder[orders[i].ID]
		if orders[i].Tickets == nil {
			orders[i].Tickets = []domain.Ticket{}
		}
	}
	return orders, nil
}

// GetOrder returns domain.ErrNotFound for orders owned by someone else.
func (s *OrderService) GetOrder(ctx context.Context, userID, id int64) (*domain.Order, error) {
	order, err := s.repos.Orders().GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	ts, err := s.repos.Tickets().ListByOrders(ctx, []int64{order.ID})
	if err != nil {
		return nil, err
	}
	order.Tickets = ts
	return order, nil
}

// DeleteOrder removes the order and, through the cascade, its tickets, which
// frees their seats.
func (s *OrderService) DeleteOrder(ctx context.Context, userID, id int64) error {
	order, err := s.GetOrder(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repos.Orders().Delete(ctx, userID, id); err != nil {
		return err
	}

	s.log.Info("order deleted", zap.Int64("order_id", id), zap.Int64("user_id", userID))
	s.afterChange(ctx, kafka.EventOrderDeleted, order)
	return nil
}

// afterChange runs the post-commit side effects. Their failures are logged
// and never undo the committed change.
func (s *OrderService) afterChange(ctx context.Context, eventType string, order *domain.Order) {
	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			s.log.Warn("failed to invalidate flights cache", zap.Error(err))
		}
	}
	if err := s.publish(ctx, eventType, order); err != nil {
		s.log.Warn("failed to publish order event",
			zap.String("type", eventType),
			zap.Int64("order_id", order.ID),
			zap.Error(err),
		)
	}
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *domain.Order) error {
	if s.producer == nil || s.topic == "" {
		return nil
	}
	payload := make([]kafka.TicketPayload, 0, len(order.Tickets))
	for _, t := range order.Tickets {
		payload = append(payload, kafka.TicketPayload{FlightID: t.FlightID, SeatRow: t.SeatRow, SeatNumber: t.SeatNumber})
	}
	event := kafka.NewOrderEvent(eventType, order.ID, order.UserID, payload)
	if err := s.producer.PublishWithRetry(ctx, s.topic, event.Key(), event, publishAttempts); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.PublishWithRetry(ctx, s.notificationsTopic, event.Key(), event, publishAttempts); err != nil {
			return fmt.Errorf("publish %s notification: %w", eventType, err)
		}
	}
	return nil
}

var _ OrderUseCase = (*OrderService)(nil)
