package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"movie-basket/internal/data/entity"
	"movie-basket/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByOwner(ctx context.Context, userID uuid.UUID, email string, limit, offset int) ([]*entity.Order, error)
	CountByOwner(ctx context.Context, userID uuid.UUID, email string) (int64, error)
	UpdateUserEmail(ctx context.Context, userID uuid.UUID, email string) error
	FindAll(ctx context.Context, limit, offset int, status *entity.OrderStatus) ([]*entity.Order, error)
	CountAll(ctx context.Context, status *entity.OrderStatus) (int64, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderColumns = `id, order_number, user_id, user_email, date, items, total_amount, status,
	payment_method, customer_name, customer_email, customer_phone, delivery_address, notes,
	updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		order entity.Order
		items []byte
	)
	err := row.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.UserID,
		&order.UserEmail,
		&order.Date,
		&items,
		&order.TotalAmount,
		&order.Status,
		&order.PaymentMethod,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerPhone,
		&order.DeliveryAddress,
		&order.Notes,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("decode items of order %s: %w", order.ID, err)
	}
	return &order, nil
}

func (r *orderRepository) scanAll(rows pgx.Rows) ([]*entity.Order, error) {
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encode items of order %s: %w", order.OrderNumber, err)
	}

	query := `
		INSERT INTO orders (id, order_number, user_id, user_email, date, items, total_amount,
		                    status, payment_method, customer_name, customer_email,
		                    customer_phone, delivery_address, notes, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err = r.db.Exec(ctx, query,
		order.ID,
		order.OrderNumber,
		order.UserID,
		order.UserEmail,
		order.Date,
		items,
		order.TotalAmount,
		order.Status,
		order.PaymentMethod,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.DeliveryAddress,
		order.Notes,
		order.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("order number %s: %w", order.OrderNumber, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("order_number", order.OrderNumber),
			zap.String("user_id", order.UserID.String()),
		)
		return fmt.Errorf("create order %s: %w", order.OrderNumber, err)
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID", zap.Error(err), zap.String("order_id", id.String()))
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}

	return order, nil
}

// FindByOwner lists the orders placed by userID under email, newest first.
func (r *orderRepository) FindByOwner(ctx context.Context, userID uuid.UUID, email string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE user_id = $1 AND LOWER(user_email) = LOWER($2)
		ORDER BY date DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, userID, email, limit, offset)
	if err != nil {
		r.log.Error("Failed to find orders of user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find orders of %s: %w", userID, err)
	}

	return r.scanAll(rows)
}

func (r *orderRepository) CountByOwner(ctx context.Context, userID uuid.UUID, email string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id = $1 AND LOWER(user_email) = LOWER($2)`,
		userID, email,
	).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count orders of user", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("count orders of %s: %w", userID, err)
	}
	return count, nil
}

// UpdateUserEmail moves every order of userID to its new account email.
func (r *orderRepository) UpdateUserEmail(ctx context.Context, userID uuid.UUID, email string) error {
	if _, err := r.db.Exec(ctx, `UPDATE orders SET user_email = $2 WHERE user_id = $1`, userID, email); err != nil {
		r.log.Error("Failed to update order emails", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("update order emails of %s: %w", userID, err)
	}
	return nil
}

func (r *orderRepository) FindAll(ctx context.Context, limit, offset int, status *entity.OrderStatus) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY date DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, statusArg(status), limit, offset)
	if err != nil {
		r.log.Error("Failed to list orders", zap.Error(err))
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return r.scanAll(rows)
}

func (r *orderRepository) CountAll(ctx context.Context, status *entity.OrderStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE ($1::text IS NULL OR status = $1)`, statusArg(status)).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count orders", zap.Error(err))
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

func statusArg(status *entity.OrderStatus) *string {
	if status == nil {
		return nil
	}
	s := string(*status)
	return &s
}

// Update rewrites the mutable order fields. Items, totals and the order number are
// fixed at checkout and never change.
func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	query := `
		UPDATE orders
		SET status = $2, payment_method = $3, customer_name = $4, customer_email = $5,
		    customer_phone = $6, delivery_address = $7, notes = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		order.ID,
		order.Status,
		order.PaymentMethod,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.DeliveryAddress,
		order.Notes,
		order.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update order", zap.Error(err), zap.String("order_id", order.ID.String()))
		return fmt.Errorf("update order %s: %w", order.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", order.ID, ErrNotFound)
	}

	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete order", zap.Error(err), zap.String("order_id", id.String()))
		return fmt.Errorf("delete order %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}

	r.log.Info("Order deleted", zap.String("order_id", id.String()))
	return nil
}
