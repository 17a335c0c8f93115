package response

import (
	"time"

	"movie-basket/internal/data/entity"

	"github.com/shopspring/decimal"
)

type OrderResponse struct {
	ID              string               `json:"id"`
	OrderNumber     string               `json:"order_number"`
	UserEmail       string               `json:"user_email"`
	Date            time.Time            `json:"date"`
	Items           []entity.OrderItem   `json:"items"`
	TotalAmount     decimal.Decimal      `json:"total_amount"`
	Status          entity.OrderStatus   `json:"status"`
	PaymentMethod   entity.PaymentMethod `json:"payment_method"`
	CustomerName    string               `json:"customer_name"`
	CustomerEmail   string               `json:"customer_email"`
	CustomerPhone   string               `json:"customer_phone"`
	DeliveryAddress string               `json:"delivery_address,omitempty"`
	Notes           string               `json:"notes,omitempty"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func OrderToResponse(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:              order.ID.String(),
		OrderNumber:     order.OrderNumber,
		UserEmail:       order.UserEmail,
		Date:            order.Date,
		Items:           order.Items,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status,
		PaymentMethod:   order.PaymentMethod,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		DeliveryAddress: order.DeliveryAddress,
		Notes:           order.Notes,
		UpdatedAt:       order.UpdatedAt,
	}
}
