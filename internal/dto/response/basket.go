package response

import (
	"time"

	"movie-basket/internal/data/entity"

	"github.com/shopspring/decimal"
)

type BasketItemResponse struct {
	ID          string          `json:"id"`
	MovieID     string          `json:"movie_id"`
	Title       string          `json:"title"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	ShowTime    time.Time       `json:"show_time"`
	SeatNumbers []string        `json:"seat_numbers"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type BasketResponse struct {
	Items      []BasketItemResponse `json:"items"`
	TotalPrice decimal.Decimal      `json:"total_price"`
	ItemCount  int                  `json:"item_count"`
	IsEmpty    bool                 `json:"is_empty"`
}

func BasketToResponse(items []*entity.BasketItem) BasketResponse {
	resp := BasketResponse{
		Items:      make([]BasketItemResponse, len(items)),
		TotalPrice: entity.BasketTotal(items),
		ItemCount:  entity.BasketItemCount(items),
		IsEmpty:    len(items) == 0,
	}

	for i, item := range items {
		seats := item.SeatNumbers
		if seats == nil {
			seats = []string{}
		}
		resp.Items[i] = BasketItemResponse{
			ID:          item.ID.String(),
			MovieID:     item.MovieID.String(),
			Title:       item.Title,
			Quantity:    item.Quantity,
			Price:       item.Price,
			ShowTime:    item.ShowTime,
			SeatNumbers: seats,
			TotalPrice:  item.TotalPrice,
		}
	}

	return resp
}
