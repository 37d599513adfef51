package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/airservice/internal/domain"
	sq "github.com/Masterminds/squirrel"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	ListByUser(ctx context.Context, userID int64, filter domain.OrderFilter) ([]domain.Order, error)
	GetByID(ctx context.Context, userID, id int64) (*domain.Order, error)
	Delete(ctx context.Context, userID, id int64) error
}

type PGOrderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) OrderRepository {
	return &PGOrderRepository{db: db}
}

// Create inserts the order row; created_at is assigned by the database.
func (r *PGOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if err := r.db.QueryRow(ctx, `INSERT INTO orders (user_id) VALUES ($1) RETURNING id, created_at`, order.UserID).
		Scan(&order.ID, &order.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

const orderRouteExists = `EXISTS (SELECT 1 FROM tickets t
	JOIN flights f ON f.id = t.flight_id
	JOIN routes r ON r.id = f.route_id
	JOIN airports ap ON ap.id = r.%s
	WHERE t.order_id = o.id AND ap.name ILIKE ?)`

func buildOrderListQuery(userID int64, filter domain.OrderFilter) sq.SelectBuilder {
	filter.Normalize()

	q := psql.
		Select("o.id", "o.user_id", "o.created_at").
		From("orders o").
		Where(sq.Eq{"o.user_id": userID}).
		OrderBy("o.created_at DESC", "o.id DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(filter.Offset()))

	if filter.CreatedDate != nil {
		day := filter.CreatedDate.UTC().Truncate(24 * time.Hour)
		q = q.Where(sq.GtOrEq{"o.created_at": day}).Where(sq.Lt{"o.created_at": day.Add(24 * time.Hour)})
	}
	if filter.Source != "" {
		q = q.Where(sq.Expr(fmt.Sprintf(orderRouteExists, "source_id"), "%"+filter.Source+"%"))
	}
	if filter.Destination != "" {
		q = q.Where(sq.Expr(fmt.Sprintf(orderRouteExists, "destination_id"), "%"+filter.Destination+"%"))
	}
	return q
}

func (r *PGOrderRepository) ListByUser(ctx context.Context, userID int64, filter domain.OrderFilter) ([]domain.Order, error) {
	sqlStr, args, err := buildOrderListQuery(userID, filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list orders sql: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *PGOrderRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.QueryRow(ctx, `SELECT id, user_id, created_at FROM orders WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&o.ID, &o.UserID, &o.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

// Delete removes one of the user's orders. Tickets are removed by
// ON DELETE CASCADE.
func (r *PGOrderRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ OrderRepository = (*PGOrderRepository)(nil)
