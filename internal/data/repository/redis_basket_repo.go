package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"movie-basket/internal/data/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// redisBasketRepository keeps each basket as a single JSON document under
// basket:<user-id>, refreshed with a sliding TTL on every save.
type redisBasketRepository struct {
	client redis.Cmdable
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisBasketRepository(client redis.Cmdable, ttl time.Duration, log *zap.Logger) BasketRepository {
	return &redisBasketRepository{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("repository", "basket"), zap.String("store", "redis")),
	}
}

func basketKey(userID uuid.UUID) string {
	return "basket:" + userID.String()
}

func (r *redisBasketRepository) Get(ctx context.Context, userID uuid.UUID) ([]*entity.BasketItem, error) {
	data, err := r.client.Get(ctx, basketKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []*entity.BasketItem{}, nil
	}
	if err != nil {
		r.log.Error("Failed to load basket", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("load basket of %s: %w", userID, err)
	}

	items := []*entity.BasketItem{}
	if err := json.Unmarshal(data, &items); err != nil {
		r.log.Error("Corrupt basket document", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("decode basket of %s: %w", userID, err)
	}

	return items, nil
}

func (r *redisBasketRepository) Save(ctx context.Context, userID uuid.UUID, items []*entity.BasketItem) error {
	key := basketKey(userID)

	if len(items) == 0 {
		if err := r.client.Del(ctx, key).Err(); err != nil {
			r.log.Error("Failed to clear basket", zap.Error(err), zap.String("user_id", userID.String()))
			return fmt.Errorf("clear basket of %s: %w", userID, err)
		}
		return nil
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode basket of %s: %w", userID, err)
	}

	if err := r.client.Set(ctx, key, string(data), r.ttl).Err(); err != nil {
		r.log.Error("Failed to save basket", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("save basket of %s: %w", userID, err)
	}

	return nil
}
