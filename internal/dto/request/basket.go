package request

type AddToBasketRequest struct {
	MovieID     string   `json:"movie_id" validate:"required,uuid"`
	Quantity    int      `json:"quantity" validate:"required,min=1,max=10"`
	ShowTime    *string  `json:"show_time,omitempty" validate:"omitempty,showtime"`
	SeatNumbers []string `json:"seat_numbers,omitempty" validate:"omitempty,dive,required,max=10"`
}

// UpdateBasketItemRequest treats a quantity below 1 as removal, so no lower bound here.
type UpdateBasketItemRequest struct {
	Quantity    *int     `json:"quantity,omitempty" validate:"omitempty,max=10"`
	ShowTime    *string  `json:"show_time,omitempty" validate:"omitempty,showtime"`
	SeatNumbers []string `json:"seat_numbers,omitempty" validate:"omitempty,dive,required,max=10"`
}
