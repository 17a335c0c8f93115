package request

type MovieRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Director    string   `json:"director" validate:"required,max=200"`
	Year        int      `json:"year" validate:"required,min=1888,max=2100"`
	Rating      float64  `json:"rating" validate:"min=0,max=10"`
	PosterURL   *string  `json:"poster_url,omitempty" validate:"omitempty,url"`
	Description *string  `json:"description,omitempty"`
	TicketPrice *float64 `json:"ticket_price,omitempty" validate:"omitempty,gt=0"`
}

type MovieUpdateRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Director    *string  `json:"director,omitempty" validate:"omitempty,max=200"`
	Year        *int     `json:"year,omitempty" validate:"omitempty,min=1888,max=2100"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=10"`
	PosterURL   *string  `json:"poster_url,omitempty" validate:"omitempty,url"`
	Description *string  `json:"description,omitempty"`
	TicketPrice *float64 `json:"ticket_price,omitempty" validate:"omitempty,gt=0"`
}
