package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-basket/internal/data/entity"
	"movie-basket/internal/data/repository"
	"movie-basket/internal/dto/request"
	"movie-basket/internal/dto/response"
	"movie-basket/pkg/monitoring"
	"movie-basket/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Actor is the authenticated caller of an order operation.
type Actor struct {
	UserID uuid.UUID
	Admin  bool
}

type OrderService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	ListOrders(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	GetOrder(ctx context.Context, actor Actor, orderID string) (*response.OrderResponse, error)
	UpdateOrder(ctx context.Context, actor Actor, orderID string, req *request.UpdateOrderRequest) (*response.OrderResponse, error)
	CancelOrder(ctx context.Context, actor Actor, orderID string) (*response.OrderResponse, error)
	DeleteOrder(ctx context.Context, actor Actor, orderID string) error

	ListAllOrders(ctx context.Context, req *request.PaginatedRequest, status *string) (*response.PaginatedResponse[response.OrderResponse], error)
	UpdateOrderStatus(ctx context.Context, orderID string, req *request.UpdateOrderStatusRequest) (*response.OrderResponse, error)
}

// orderNumberAttempts bounds retries when a generated order number is taken.
const orderNumberAttempts = 5

type orderService struct {
	repo        *repository.Repository // order + basket + user
	metrics     *monitoring.Metrics
	now         func() time.Time
	orderNumber func(time.Time) string
	log         *zap.Logger
}

func NewOrderService(repo *repository.Repository, metrics *monitoring.Metrics, log *zap.Logger) OrderService {
	return &orderService{
		repo:        repo,
		metrics:     metrics,
		now:         time.Now,
		orderNumber: utils.GenerateOrderNumber,
		log:         log.With(zap.String("service", "order")),
	}
}

// CreateOrder checks out the basket: one pending order holding a snapshot of the
// current items, then an empty basket.
func (s *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	defer basketLocks.lock(userID)()

	items, err := s.repo.Basket.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load basket: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyBasket
	}

	now := s.now()
	order := &entity.Order{
		ID:              uuid.New(),
		OrderNumber:     s.orderNumber(now),
		UserID:          user.ID,
		UserEmail:       user.Email,
		Date:            now,
		Items:           entity.SnapshotItems(items),
		TotalAmount:     entity.BasketTotal(items),
		Status:          entity.OrderStatusPending,
		PaymentMethod:   entity.PaymentMethod(req.PaymentMethod),
		CustomerName:    firstNonEmpty(req.CustomerName, user.FullName()),
		CustomerEmail:   strings.ToLower(firstNonEmpty(req.CustomerEmail, user.Email)),
		CustomerPhone:   firstNonEmpty(utils.NormalizePhone(req.CustomerPhone), user.Phone),
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
		UpdatedAt:       now,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = entity.PaymentMethodCard
	}

	if err := s.insertOrder(ctx, order); err != nil {
		s.log.Error("Failed to create order", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.repo.Basket.Save(ctx, userID, nil); err != nil {
		s.log.Error("Failed to clear basket after checkout, rolling back order",
			zap.Error(err), zap.String("order_id", order.ID.String()))
		if delErr := s.repo.Order.Delete(ctx, order.ID); delErr != nil {
			s.log.Error("Failed to roll back order", zap.Error(delErr), zap.String("order_id", order.ID.String()))
		}
		return nil, fmt.Errorf("clear basket: %w", err)
	}

	s.metrics.TrackOrderCreated(string(order.Status), order.TotalAmount.InexactFloat64())
	s.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", userID.String()),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.TotalAmount.String()),
	)

	resp := response.OrderToResponse(order)
	return &resp, nil
}

// insertOrder stores order, drawing a new order number while the current one is taken.
func (s *orderService) insertOrder(ctx context.Context, order *entity.Order) error {
	var err error
	for attempt := 1; attempt <= orderNumberAttempts; attempt++ {
		err = s.repo.Order.Create(ctx, order)
		if !errors.Is(err, repository.ErrDuplicate) {
			return err
		}
		s.log.Warn("Order number taken, retrying",
			zap.String("order_number", order.OrderNumber),
			zap.Int("attempt", attempt))
		order.OrderNumber = s.orderNumber(order.Date)
	}
	return err
}

func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	orders, err := s.repo.Order.FindByOwner(ctx, user.ID, user.Email, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list orders", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("list orders: %w", err)
	}

	total, err := s.repo.Order.CountByOwner(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	return response.NewPaginatedResponse(toOrderResponses(orders), req.Page, req.Limit(), total), nil
}

func (s *orderService) GetOrder(ctx context.Context, actor Actor, orderID string) (*response.OrderResponse, error) {
	order, err := s.ownedOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) UpdateOrder(ctx context.Context, actor Actor, orderID string, req *request.UpdateOrderRequest) (*response.OrderResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	order, err := s.ownedOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	if req.Status != nil {
		next := entity.OrderStatus(*req.Status)
		if !order.Status.CanTransition(next) {
			return nil, fmt.Errorf("%s -> %s: %w", order.Status, next, ErrInvalidTransition)
		}
		order.Status = next
	}

	order.CustomerName = strings.TrimSpace(req.CustomerName)
	order.CustomerEmail = strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	order.CustomerPhone = utils.NormalizePhone(req.CustomerPhone)
	order.DeliveryAddress = req.DeliveryAddress
	order.Notes = req.Notes

	if err := s.save(ctx, order, previous); err != nil {
		return nil, err
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) CancelOrder(ctx context.Context, actor Actor, orderID string) (*response.OrderResponse, error) {
	order, err := s.ownedOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, order, entity.OrderStatusCancelled)
}

func (s *orderService) DeleteOrder(ctx context.Context, actor Actor, orderID string) error {
	order, err := s.ownedOrder(ctx, actor, orderID)
	if err != nil {
		return err
	}

	if err := s.repo.Order.Delete(ctx, order.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
		}
		s.log.Error("Failed to delete order", zap.Error(err), zap.String("order_id", orderID))
		return fmt.Errorf("delete order: %w", err)
	}

	s.log.Info("Order deleted", zap.String("order_id", orderID), zap.String("user_id", actor.UserID.String()))
	return nil
}

func (s *orderService) ListAllOrders(ctx context.Context, req *request.PaginatedRequest, status *string) (*response.PaginatedResponse[response.OrderResponse], error) {
	var filter *entity.OrderStatus
	if status != nil {
		st := entity.OrderStatus(*status)
		switch st {
		case entity.OrderStatusPending, entity.OrderStatusProcessing,
			entity.OrderStatusCompleted, entity.OrderStatusCancelled:
			filter = &st
		default:
			return nil, fieldError("status", "Must be one of: pending, processing, completed, cancelled")
		}
	}

	orders, err := s.repo.Order.FindAll(ctx, req.Limit(), req.Offset(), filter)
	if err != nil {
		s.log.Error("Failed to list all orders", zap.Error(err))
		return nil, fmt.Errorf("list orders: %w", err)
	}

	total, err := s.repo.Order.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	return response.NewPaginatedResponse(toOrderResponses(orders), req.Page, req.Limit(), total), nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID string, req *request.UpdateOrderStatusRequest) (*response.OrderResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, order, entity.OrderStatus(req.Status))
}

// ==================== HELPER METHODS ====================

func (s *orderService) transition(ctx context.Context, order *entity.Order, next entity.OrderStatus) (*response.OrderResponse, error) {
	if !order.Status.CanTransition(next) {
		return nil, fmt.Errorf("%s -> %s: %w", order.Status, next, ErrInvalidTransition)
	}

	previous := order.Status
	order.Status = next
	if err := s.save(ctx, order, previous); err != nil {
		return nil, err
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) save(ctx context.Context, order *entity.Order, previous entity.OrderStatus) error {
	order.UpdatedAt = s.now()
	if err := s.repo.Order.Update(ctx, order); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("order %s: %w", order.ID, ErrNotFound)
		}
		s.log.Error("Failed to update order", zap.Error(err), zap.String("order_id", order.ID.String()))
		return fmt.Errorf("update order: %w", err)
	}

	if order.Status != previous {
		s.metrics.TrackOrderStatus(string(order.Status))
		s.log.Info("Order status changed",
			zap.String("order_id", order.ID.String()),
			zap.String("from", string(previous)),
			zap.String("to", string(order.Status)),
		)
	}
	return nil
}

func (s *orderService) findOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fieldError("id", "Must be a valid UUID")
	}

	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get order", zap.Error(err), zap.String("order_id", orderID))
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	return order, nil
}

// ownedOrder loads an order the actor may act on. Customers own the orders they
// checked out; an email address that changed hands grants nothing.
func (s *orderService) ownedOrder(ctx context.Context, actor Actor, orderID string) (*entity.Order, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if actor.Admin {
		return order, nil
	}

	if order.UserID != actor.UserID {
		s.log.Warn("Order access denied",
			zap.String("order_id", orderID),
			zap.String("user_id", actor.UserID.String()))
		return nil, fmt.Errorf("order %s: %w", orderID, ErrForbidden)
	}
	return order, nil
}

func toOrderResponses(orders []*entity.Order) []response.OrderResponse {
	out := make([]response.OrderResponse, len(orders))
	for i, order := range orders {
		out[i] = response.OrderToResponse(order)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
