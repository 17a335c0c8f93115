package wire

import (
	"net/http"

	"movie-basket/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireOrder(r chi.Router, orderHandler *adaptor.OrderHandler, auth, admin func(http.Handler) http.Handler) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(auth)

		r.Post("/", orderHandler.CreateOrder) // checkout
		r.Get("/", orderHandler.GetOrders)
		r.Get("/{id}", orderHandler.GetOrder)
		r.Put("/{id}", orderHandler.UpdateOrder)
		r.Delete("/{id}", orderHandler.DeleteOrder)
		r.Put("/{id}/cancel", orderHandler.CancelOrder)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/orders", func(r chi.Router) {
		r.Use(auth)
		r.Use(admin)

		r.Get("/", orderHandler.GetAllOrders)
		r.Put("/{id}/status", orderHandler.UpdateOrderStatus)
	})
}
