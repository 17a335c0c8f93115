package repository

import (
	"context"
	"fmt"

	"movie-basket/internal/data/entity"
	"movie-basket/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BasketRepository stores a user's basket as one collection: Save replaces whatever
// was there before, and saving an empty slice clears it.
type BasketRepository interface {
	Get(ctx context.Context, userID uuid.UUID) ([]*entity.BasketItem, error)
	Save(ctx context.Context, userID uuid.UUID, items []*entity.BasketItem) error
}

type basketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBasketRepository(db database.PgxIface, log *zap.Logger) BasketRepository {
	return &basketRepository{
		db:  db,
		log: log.With(zap.String("repository", "basket")),
	}
}

func (r *basketRepository) Get(ctx context.Context, userID uuid.UUID) ([]*entity.BasketItem, error) {
	query := `
		SELECT id, user_id, movie_id, title, quantity, price, show_time, seat_numbers,
		       total_price, created_at
		FROM basket_items
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to load basket", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("load basket of %s: %w", userID, err)
	}
	defer rows.Close()

	items := []*entity.BasketItem{}
	for rows.Next() {
		var item entity.BasketItem
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.MovieID,
			&item.Title,
			&item.Quantity,
			&item.Price,
			&item.ShowTime,
			&item.SeatNumbers,
			&item.TotalPrice,
			&item.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan basket row", zap.Error(err))
			return nil, fmt.Errorf("scan basket item: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate basket: %w", err)
	}

	return items, nil
}

func (r *basketRepository) Save(ctx context.Context, userID uuid.UUID, items []*entity.BasketItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin basket tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM basket_items WHERE user_id = $1`, userID); err != nil {
		r.log.Error("Failed to clear basket", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("clear basket of %s: %w", userID, err)
	}

	insert := `
		INSERT INTO basket_items (id, user_id, movie_id, title, quantity, price, show_time,
		                          seat_numbers, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, item := range items {
		seats := item.SeatNumbers
		if seats == nil {
			seats = []string{}
		}
		_, err := tx.Exec(ctx, insert,
			item.ID,
			userID,
			item.MovieID,
			item.Title,
			item.Quantity,
			item.Price,
			item.ShowTime,
			seats,
			item.TotalPrice,
			item.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to insert basket item",
				zap.Error(err),
				zap.String("user_id", userID.String()),
				zap.String("item_id", item.ID.String()),
			)
			return fmt.Errorf("insert basket item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit basket of %s: %w", userID, err)
	}

	return nil
}
