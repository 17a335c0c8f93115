package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BasketItem is one line of a user's pending purchase. The JSON form is what the
// key-value basket store persists, so field names are part of the storage format.
type BasketItem struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	UserID      uuid.UUID       `db:"user_id" json:"user_id"`
	MovieID     uuid.UUID       `db:"movie_id" json:"movie_id"`
	Title       string          `db:"title" json:"title"`
	Quantity    int             `db:"quantity" json:"quantity"`
	Price       decimal.Decimal `db:"price" json:"price"`
	ShowTime    time.Time       `db:"show_time" json:"show_time"`
	SeatNumbers []string        `db:"seat_numbers" json:"seat_numbers"`
	TotalPrice  decimal.Decimal `db:"total_price" json:"total_price"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// Recalculate keeps TotalPrice equal to Quantity * Price.
func (i *BasketItem) Recalculate() {
	i.TotalPrice = i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// BasketTotal sums item totals.
func BasketTotal(items []*BasketItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}
	return total
}

// BasketItemCount sums quantities.
func BasketItemCount(items []*BasketItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}
