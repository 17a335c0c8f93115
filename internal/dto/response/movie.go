package response

import (
	"time"

	"movie-basket/internal/data/entity"

	"github.com/shopspring/decimal"
)

type MovieResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Director    string          `json:"director"`
	Year        int             `json:"year"`
	Rating      float64         `json:"rating"`
	PosterURL   *string         `json:"poster,omitempty"`
	Description *string         `json:"description,omitempty"`
	TicketPrice decimal.Decimal `json:"ticket_price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Director:    movie.Director,
		Year:        movie.Year,
		Rating:      movie.Rating,
		PosterURL:   movie.PosterURL,
		Description: movie.Description,
		TicketPrice: movie.TicketPrice,
		CreatedAt:   movie.CreatedAt,
		UpdatedAt:   movie.UpdatedAt,
	}
}
