package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	deleteBasketSQL = regexp.QuoteMeta(`DELETE FROM basket_items WHERE user_id = $1`)
	insertBasketSQL = regexp.QuoteMeta(`INSERT INTO basket_items`)
	selectBasketSQL = regexp.QuoteMeta(`FROM basket_items`)
)

func newPgMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestBasketRepository_SaveReplacesInOneTransaction(t *testing.T) {
	mock := newPgMock(t)
	repo := NewBasketRepository(mock, zap.NewNop())
	userID := uuid.New()
	items := basketFixture(userID)
	item := items[0]

	mock.ExpectBegin()
	mock.ExpectExec(deleteBasketSQL).WithArgs(userID).WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec(insertBasketSQL).
		WithArgs(item.ID, userID, item.MovieID, item.Title, item.Quantity, item.Price,
			item.ShowTime, item.SeatNumbers, item.TotalPrice, item.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), userID, items))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBasketRepository_SaveEmptyOnlyDeletes(t *testing.T) {
	mock := newPgMock(t)
	repo := NewBasketRepository(mock, zap.NewNop())
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(deleteBasketSQL).WithArgs(userID).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), userID, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBasketRepository_SaveRollsBackOnInsertError(t *testing.T) {
	mock := newPgMock(t)
	repo := NewBasketRepository(mock, zap.NewNop())
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(deleteBasketSQL).WithArgs(userID).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(insertBasketSQL).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), userID, basketFixture(userID))
	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBasketRepository_Get(t *testing.T) {
	mock := newPgMock(t)
	repo := NewBasketRepository(mock, zap.NewNop())
	userID := uuid.New()
	itemID, movieID := uuid.New(), uuid.New()
	show := time.Date(2024, 12, 20, 18, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{
		"id", "user_id", "movie_id", "title", "quantity", "price", "show_time",
		"seat_numbers", "total_price", "created_at",
	}).AddRow(itemID, userID, movieID, "Inception", 2, decimal.NewFromInt(350), show,
		[]string{"A5", "A6"}, decimal.NewFromInt(700), show.Add(-time.Hour))
	mock.ExpectQuery(selectBasketSQL).WithArgs(userID).WillReturnRows(rows)

	items, err := repo.Get(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, itemID, items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, []string{"A5", "A6"}, items[0].SeatNumbers)
	assert.True(t, decimal.NewFromInt(700).Equal(items[0].TotalPrice))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBasketRepository_GetEmpty(t *testing.T) {
	mock := newPgMock(t)
	repo := NewBasketRepository(mock, zap.NewNop())
	userID := uuid.New()

	mock.ExpectQuery(selectBasketSQL).WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	items, err := repo.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
