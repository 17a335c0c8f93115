package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusCompleted, OrderStatusCancelled},
}

// CanTransition reports whether an order in status s may move to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
)

// OrderItem is the frozen copy of a basket item taken at checkout.
type OrderItem struct {
	ID          uuid.UUID       `json:"id"`
	MovieID     uuid.UUID       `json:"movie_id"`
	Title       string          `json:"title"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	ShowTime    time.Time       `json:"show_time"`
	SeatNumbers []string        `json:"seat_numbers"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type Order struct {
	ID              uuid.UUID       `db:"id"`
	OrderNumber     string          `db:"order_number"`
	UserID          uuid.UUID       `db:"user_id"`
	UserEmail       string          `db:"user_email"`
	Date            time.Time       `db:"date"`
	Items           []OrderItem     `db:"items"` // stored as JSONB
	TotalAmount     decimal.Decimal `db:"total_amount"`
	Status          OrderStatus     `db:"status"`
	PaymentMethod   PaymentMethod   `db:"payment_method"`
	CustomerName    string          `db:"customer_name"`
	CustomerEmail   string          `db:"customer_email"`
	CustomerPhone   string          `db:"customer_phone"`
	DeliveryAddress string          `db:"delivery_address"`
	Notes           string          `db:"notes"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// SnapshotItems copies basket items into order items. Seat slices are copied so later
// basket edits never reach the order.
func SnapshotItems(items []*BasketItem) []OrderItem {
	snapshot := make([]OrderItem, len(items))
	for i, item := range items {
		seats := make([]string, len(item.SeatNumbers))
		copy(seats, item.SeatNumbers)
		snapshot[i] = OrderItem{
			ID:          item.ID,
			MovieID:     item.MovieID,
			Title:       item.Title,
			Quantity:    item.Quantity,
			Price:       item.Price,
			ShowTime:    item.ShowTime,
			SeatNumbers: seats,
			TotalPrice:  item.TotalPrice,
		}
	}
	return snapshot
}
