package wire

import (
	"net/http"

	"movie-basket/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser configures profile routes and admin user management.
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, auth, admin func(http.Handler) http.Handler) {
	// ==================== PROTECTED USER ROUTES ====================
	r.With(auth).Get("/api/user/profile", userHandler.GetProfile)
	r.With(auth).Put("/api/user/profile", userHandler.UpdateProfile)

	// ==================== ADMIN ROUTES ====================
	r.With(auth, admin).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", userHandler.GetAllUsers)       // GET /api/admin/users?page=1&per_page=10
		r.Delete("/{id}", userHandler.DeleteUser) // DELETE /api/admin/users/{id}
	})
}
