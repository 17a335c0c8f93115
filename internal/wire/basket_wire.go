package wire

import (
	"net/http"

	"movie-basket/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBasket(r chi.Router, basketHandler *adaptor.BasketHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api/basket", func(r chi.Router) {
		r.Use(auth)

		r.Get("/", basketHandler.GetBasket)
		r.Delete("/", basketHandler.ClearBasket)
		r.Post("/items", basketHandler.AddItem)
		r.Put("/items/{id}", basketHandler.UpdateItem)
		r.Delete("/items/{id}", basketHandler.RemoveItem)
	})
}
