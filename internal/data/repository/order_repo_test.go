package repository

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"movie-basket/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var orderRowColumns = []string{
	"id", "order_number", "user_id", "user_email", "date", "items", "total_amount", "status",
	"payment_method", "customer_name", "customer_email", "customer_phone", "delivery_address",
	"notes", "updated_at",
}

func orderFixture() *entity.Order {
	at := time.Date(2024, 12, 20, 18, 0, 0, 0, time.UTC)
	item := basketFixture(uuid.New())[0]
	return &entity.Order{
		ID:            uuid.New(),
		OrderNumber:   "ORD-20241220-180000-0042",
		UserID:        item.UserID,
		UserEmail:     "anna@example.com",
		Date:          at,
		Items:         entity.SnapshotItems([]*entity.BasketItem{item}),
		TotalAmount:   decimal.NewFromInt(700),
		Status:        entity.OrderStatusPending,
		PaymentMethod: entity.PaymentMethodCard,
		CustomerName:  "Anna Petrova",
		CustomerEmail: "anna@example.com",
		CustomerPhone: "+79161234567",
		UpdatedAt:     at,
	}
}

func orderRow(t *testing.T, rows *pgxmock.Rows, o *entity.Order) *pgxmock.Rows {
	t.Helper()
	items, err := json.Marshal(o.Items)
	require.NoError(t, err)
	return rows.AddRow(o.ID, o.OrderNumber, o.UserID, o.UserEmail, o.Date, items, o.TotalAmount,
		o.Status, o.PaymentMethod, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		o.DeliveryAddress, o.Notes, o.UpdatedAt)
}

func TestOrderRepository_CreateStoresItemsAsJSON(t *testing.T) {
	mock := newPgMock(t)
	repo := NewOrderRepository(mock, zap.NewNop())
	order := orderFixture()

	items, err := json.Marshal(order.Items)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO orders`)).
		WithArgs(order.ID, order.OrderNumber, order.UserID, order.UserEmail, order.Date, items,
			order.TotalAmount, order.Status, order.PaymentMethod, order.CustomerName,
			order.CustomerEmail, order.CustomerPhone, order.DeliveryAddress, order.Notes,
			order.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), order))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_CreateDuplicateNumber(t *testing.T) {
	mock := newPgMock(t)
	repo := NewOrderRepository(mock, zap.NewNop())

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO orders`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "orders_order_number_key"})

	err := repo.Create(context.Background(), orderFixture())
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestOrderRepository_FindByIDDecodesItems(t *testing.T) {
	mock := newPgMock(t)
	repo := NewOrderRepository(mock, zap.NewNop())
	want := orderFixture()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE id = $1`)).
		WithArgs(want.ID).
		WillReturnRows(orderRow(t, pgxmock.NewRows(orderRowColumns), want))

	got, err := repo.FindByID(context.Background(), want.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, want.Items[0].ID, got.Items[0].ID)
	assert.Equal(t, []string{"A5", "A6"}, got.Items[0].SeatNumbers)
	assert.True(t, want.Items[0].TotalPrice.Equal(got.Items[0].TotalPrice))
	assert.True(t, want.Items[0].ShowTime.Equal(got.Items[0].ShowTime))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_FindAllStatusFilter(t *testing.T) {
	filterSQL := regexp.QuoteMeta(`WHERE ($1::text IS NULL OR status = $1)`)
	pending := entity.OrderStatusPending
	pendingArg := string(pending)

	t.Run("with status", func(t *testing.T) {
		mock := newPgMock(t)
		repo := NewOrderRepository(mock, zap.NewNop())
		order := orderFixture()

		mock.ExpectQuery(filterSQL).
			WithArgs(&pendingArg, 10, 0).
			WillReturnRows(orderRow(t, pgxmock.NewRows(orderRowColumns), order))

		orders, err := repo.FindAll(context.Background(), 10, 0, &pending)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, entity.OrderStatusPending, orders[0].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("without status", func(t *testing.T) {
		mock := newPgMock(t)
		repo := NewOrderRepository(mock, zap.NewNop())

		mock.ExpectQuery(filterSQL).
			WithArgs((*string)(nil), 10, 20).
			WillReturnRows(pgxmock.NewRows(orderRowColumns))

		orders, err := repo.FindAll(context.Background(), 10, 20, nil)
		require.NoError(t, err)
		assert.Empty(t, orders)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_FindByOwnerMatchesIDAndEmail(t *testing.T) {
	mock := newPgMock(t)
	repo := NewOrderRepository(mock, zap.NewNop())
	order := orderFixture()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE user_id = $1 AND LOWER(user_email) = LOWER($2)`)).
		WithArgs(order.UserID, "Anna@Example.com", 10, 0).
		WillReturnRows(orderRow(t, pgxmock.NewRows(orderRowColumns), order))

	orders, err := repo.FindByOwner(context.Background(), order.UserID, "Anna@Example.com", 10, 0)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateUserEmail(t *testing.T) {
	mock := newPgMock(t)
	repo := NewOrderRepository(mock, zap.NewNop())
	userID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders SET user_email = $2 WHERE user_id = $1`)).
		WithArgs(userID, "anna.i@example.com").
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	require.NoError(t, repo.UpdateUserEmail(context.Background(), userID, "anna.i@example.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateAndDeleteMissing(t *testing.T) {
	mock := newPgMock(t)
	repo := NewOrderRepository(mock, zap.NewNop())
	order := orderFixture()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders`)).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM orders WHERE id = $1`)).
		WithArgs(order.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Update(context.Background(), order), ErrNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), order.ID), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
