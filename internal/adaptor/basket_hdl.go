package adaptor

import (
	"net/http"

	"movie-basket/internal/dto/request"
	"movie-basket/internal/usecase"
	"movie-basket/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BasketHandler struct {
	service usecase.BasketService
	log     *zap.Logger
}

func NewBasketHandler(service usecase.BasketService, log *zap.Logger) *BasketHandler {
	return &BasketHandler{
		service: service,
		log:     log.With(zap.String("handler", "basket")),
	}
}

// GetBasket handles GET /api/basket
func (h *BasketHandler) GetBasket(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	basket, err := h.service.GetBasket(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get basket")
		return
	}

	utils.ResponseSuccess(w, "Basket retrieved successfully", basket)
}

// AddItem handles POST /api/basket/items
func (h *BasketHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.AddToBasketRequest
	if !decodeBody(w, r, &req) {
		return
	}

	basket, err := h.service.AddToBasket(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add to basket")
		return
	}

	utils.ResponseCreated(w, "Added to basket", basket)
}

// UpdateItem handles PUT /api/basket/items/{id}
func (h *BasketHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.UpdateBasketItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	basket, err := h.service.UpdateBasketItem(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update basket item")
		return
	}

	utils.ResponseSuccess(w, "Basket updated", basket)
}

// RemoveItem handles DELETE /api/basket/items/{id}
func (h *BasketHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	basket, err := h.service.RemoveFromBasket(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "remove from basket")
		return
	}

	utils.ResponseSuccess(w, "Removed from basket", basket)
}

// ClearBasket handles DELETE /api/basket
func (h *BasketHandler) ClearBasket(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.service.ClearBasket(r.Context(), userID); err != nil {
		handleServiceError(w, h.log, err, "clear basket")
		return
	}

	utils.ResponseSuccess(w, "Basket cleared", nil)
}
