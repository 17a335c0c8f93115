package request

type CreateOrderRequest struct {
	PaymentMethod   string `json:"payment_method,omitempty" validate:"omitempty,oneof=card cash"`
	CustomerName    string `json:"customer_name,omitempty" validate:"omitempty,max=200"`
	CustomerEmail   string `json:"customer_email,omitempty" validate:"omitempty,emailaddr"`
	CustomerPhone   string `json:"customer_phone,omitempty" validate:"omitempty,phone"`
	DeliveryAddress string `json:"delivery_address,omitempty" validate:"max=500"`
	Notes           string `json:"notes,omitempty" validate:"max=1000"`
}

type UpdateOrderRequest struct {
	CustomerName    string  `json:"customer_name" validate:"required,max=200"`
	CustomerEmail   string  `json:"customer_email" validate:"required,emailaddr"`
	CustomerPhone   string  `json:"customer_phone" validate:"required,phone"`
	DeliveryAddress string  `json:"delivery_address" validate:"max=500"`
	Notes           string  `json:"notes" validate:"max=1000"`
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=pending processing completed cancelled"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing completed cancelled"`
}
