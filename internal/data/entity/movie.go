package entity

import "github.com/shopspring/decimal"

type Movie struct {
	Base
	Title       string          `db:"title"`
	Director    string          `db:"director"`
	Year        int             `db:"year"`
	Rating      float64         `db:"rating"` // 0..10
	PosterURL   *string         `db:"poster_url"`
	Description *string         `db:"description"`
	TicketPrice decimal.Decimal `db:"ticket_price"`
}
