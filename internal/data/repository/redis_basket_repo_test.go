package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"movie-basket/internal/data/entity"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func basketFixture(userID uuid.UUID) []*entity.BasketItem {
	item := &entity.BasketItem{
		ID:          uuid.New(),
		UserID:      userID,
		MovieID:     uuid.New(),
		Title:       "Inception",
		Quantity:    2,
		Price:       decimal.NewFromInt(350),
		ShowTime:    time.Date(2024, 12, 20, 18, 0, 0, 0, time.UTC),
		SeatNumbers: []string{"A5", "A6"},
		CreatedAt:   time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC),
	}
	item.Recalculate()
	return []*entity.BasketItem{item}
}

func TestRedisBasketRepository_GetMissingKey(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisBasketRepository(client, time.Hour, zap.NewNop())
	userID := uuid.New()

	mock.ExpectGet(basketKey(userID)).RedisNil()

	items, err := repo.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisBasketRepository_GetStoredBasket(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisBasketRepository(client, time.Hour, zap.NewNop())
	userID := uuid.New()
	want := basketFixture(userID)

	data, err := json.Marshal(want)
	require.NoError(t, err)
	mock.ExpectGet(basketKey(userID)).SetVal(string(data))

	items, err := repo.Get(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	got := items[0]
	assert.Equal(t, want[0].ID, got.ID)
	assert.Equal(t, want[0].MovieID, got.MovieID)
	assert.Equal(t, 2, got.Quantity)
	assert.True(t, decimal.NewFromInt(700).Equal(got.TotalPrice))
	assert.True(t, want[0].ShowTime.Equal(got.ShowTime))
	assert.Equal(t, []string{"A5", "A6"}, got.SeatNumbers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisBasketRepository_GetCorruptDocument(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisBasketRepository(client, time.Hour, zap.NewNop())
	userID := uuid.New()

	mock.ExpectGet(basketKey(userID)).SetVal("{not json")

	_, err := repo.Get(context.Background(), userID)
	assert.Error(t, err)
}

func TestRedisBasketRepository_GetConnectionError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisBasketRepository(client, time.Hour, zap.NewNop())
	userID := uuid.New()

	mock.ExpectGet(basketKey(userID)).SetErr(errors.New("connection refused"))

	_, err := repo.Get(context.Background(), userID)
	assert.ErrorContains(t, err, "connection refused")
}

func TestRedisBasketRepository_SaveWritesWithTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisBasketRepository(client, 72*time.Hour, zap.NewNop())
	userID := uuid.New()
	items := basketFixture(userID)

	data, err := json.Marshal(items)
	require.NoError(t, err)
	mock.ExpectSet(basketKey(userID), string(data), 72*time.Hour).SetVal("OK")

	require.NoError(t, repo.Save(context.Background(), userID, items))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisBasketRepository_SaveEmptyDeletesKey(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisBasketRepository(client, time.Hour, zap.NewNop())
	userID := uuid.New()

	mock.ExpectDel(basketKey(userID)).SetVal(1)

	require.NoError(t, repo.Save(context.Background(), userID, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisBasketRepository_SaveError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisBasketRepository(client, time.Hour, zap.NewNop())
	userID := uuid.New()
	items := basketFixture(userID)

	data, err := json.Marshal(items)
	require.NoError(t, err)
	mock.ExpectSet(basketKey(userID), string(data), time.Hour).SetErr(errors.New("READONLY"))

	err = repo.Save(context.Background(), userID, items)
	assert.ErrorContains(t, err, "READONLY")
}
