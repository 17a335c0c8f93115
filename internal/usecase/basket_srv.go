package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync"
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

type BasketService interface {
	GetBasket(ctx context.Context, userID uuid.UUID) (*response.BasketResponse, error)
	AddToBasket(ctx context.Context, userID uuid.UUID, req *request.AddToBasketRequest) (*response.BasketResponse, error)
	UpdateBasketItem(ctx context.Context, userID uuid.UUID, itemID string, req *request.UpdateBasketItemRequest) (*response.BasketResponse, error)
	RemoveFromBasket(ctx context.Context, userID uuid.UUID, itemID string) (*response.BasketResponse, error)
	ClearBasket(ctx context.Context, userID uuid.UUID) error
}

// basketLocks serializes read-modify-write cycles on one user's basket. Checkout
// takes the same lock.
var basketLocks stripedLock

type stripedLock struct {
	stripes [64]sync.Mutex
}

func (l *stripedLock) lock(id uuid.UUID) func() {
	m := &l.stripes[id[len(id)-1]%byte(len(l.stripes))]
	m.Lock()
	return m.Unlock
}

type basketService struct {
	repo    *repository.Repository // basket + movie
	metrics *monitoring.Metrics
	now     func() time.Time
	log     *zap.Logger
}

func NewBasketService(repo *repository.Repository, metrics *monitoring.Metrics, log *zap.Logger) BasketService {
	return &basketService{
		repo:    repo,
		metrics: metrics,
		now:     time.Now,
		log:     log.With(zap.String("service", "basket")),
	}
}

func (s *basketService) GetBasket(ctx context.Context, userID uuid.UUID) (*response.BasketResponse, error) {
	items, err := s.repo.Basket.Get(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load basket", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("load basket: %w", err)
	}

	resp := response.BasketToResponse(items)
	return &resp, nil
}

// AddToBasket merges into an existing line for the same movie: quantity grows,
// seats are appended, and the line keeps its unit price and show time.
func (s *basketService) AddToBasket(ctx context.Context, userID uuid.UUID, req *request.AddToBasketRequest) (resp *response.BasketResponse, err error) {
	defer func() { s.metrics.TrackBasketOperation("add", err) }()

	if err := validate(req); err != nil {
		return nil, err
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fieldError("movie_id", "Must be a valid UUID")
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", req.MovieID, ErrNotFound)
	}

	now := s.now()
	showTime := utils.DefaultShowTime(now)
	if req.ShowTime != nil {
		if showTime, err = utils.ParseShowTime(*req.ShowTime); err != nil {
			return nil, fieldError("show_time", "Must be a date and time like 2024-12-20T18:00")
		}
	}

	defer basketLocks.lock(userID)()

	items, err := s.repo.Basket.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load basket: %w", err)
	}

	idx := slices.IndexFunc(items, func(item *entity.BasketItem) bool { return item.MovieID == movieID })
	if idx >= 0 {
		item := items[idx]
		item.Quantity += req.Quantity
		item.SeatNumbers = append(item.SeatNumbers, req.SeatNumbers...)
		item.Recalculate()
	} else {
		item := &entity.BasketItem{
			ID:          uuid.New(),
			UserID:      userID,
			MovieID:     movie.ID,
			Title:       movie.Title,
			Quantity:    req.Quantity,
			Price:       movie.TicketPrice,
			ShowTime:    showTime,
			SeatNumbers: slices.Clone(req.SeatNumbers),
			CreatedAt:   now,
		}
		if item.SeatNumbers == nil {
			item.SeatNumbers = []string{}
		}
		item.Recalculate()
		items = append(items, item)
	}

	if err := s.repo.Basket.Save(ctx, userID, items); err != nil {
		s.log.Error("Failed to save basket", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("save basket: %w", err)
	}

	s.log.Info("Added to basket",
		zap.String("user_id", userID.String()),
		zap.String("movie_id", movieID.String()),
		zap.Int("quantity", req.Quantity),
		zap.Bool("merged", idx >= 0),
	)

	basket := response.BasketToResponse(items)
	return &basket, nil
}

// UpdateBasketItem applies present fields; a quantity below 1 removes the line.
func (s *basketService) UpdateBasketItem(ctx context.Context, userID uuid.UUID, itemID string, req *request.UpdateBasketItemRequest) (resp *response.BasketResponse, err error) {
	defer func() { s.metrics.TrackBasketOperation("update", err) }()

	if err := validate(req); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(itemID)
	if err != nil {
		return nil, fieldError("id", "Must be a valid UUID")
	}

	var showTime *time.Time
	if req.ShowTime != nil {
		t, err := utils.ParseShowTime(*req.ShowTime)
		if err != nil {
			return nil, fieldError("show_time", "Must be a date and time like 2024-12-20T18:00")
		}
		showTime = &t
	}

	defer basketLocks.lock(userID)()

	items, err := s.repo.Basket.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load basket: %w", err)
	}

	idx := indexOfItem(items, id)
	if idx < 0 {
		return nil, fmt.Errorf("basket item %s: %w", itemID, ErrNotFound)
	}

	if req.Quantity != nil && *req.Quantity < 1 {
		items = slices.Delete(items, idx, idx+1)
	} else {
		item := items[idx]
		if req.Quantity != nil {
			item.Quantity = *req.Quantity
		}
		if req.SeatNumbers != nil {
			item.SeatNumbers = slices.Clone(req.SeatNumbers)
		}
		if showTime != nil {
			item.ShowTime = *showTime
		}
		item.Recalculate()
	}

	if err := s.repo.Basket.Save(ctx, userID, items); err != nil {
		s.log.Error("Failed to save basket", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("save basket: %w", err)
	}

	basket := response.BasketToResponse(items)
	return &basket, nil
}

func (s *basketService) RemoveFromBasket(ctx context.Context, userID uuid.UUID, itemID string) (resp *response.BasketResponse, err error) {
	defer func() { s.metrics.TrackBasketOperation("remove", err) }()

	id, err := uuid.Parse(itemID)
	if err != nil {
		return nil, fieldError("id", "Must be a valid UUID")
	}

	defer basketLocks.lock(userID)()

	items, err := s.repo.Basket.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load basket: %w", err)
	}

	idx := indexOfItem(items, id)
	if idx < 0 {
		return nil, fmt.Errorf("basket item %s: %w", itemID, ErrNotFound)
	}
	items = slices.Delete(items, idx, idx+1)

	if err := s.repo.Basket.Save(ctx, userID, items); err != nil {
		s.log.Error("Failed to save basket", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("save basket: %w", err)
	}

	basket := response.BasketToResponse(items)
	return &basket, nil
}

func (s *basketService) ClearBasket(ctx context.Context, userID uuid.UUID) (err error) {
	defer func() { s.metrics.TrackBasketOperation("clear", err) }()
	defer basketLocks.lock(userID)()

	if err := s.repo.Basket.Save(ctx, userID, nil); err != nil {
		s.log.Error("Failed to clear basket", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("clear basket: %w", err)
	}
	return nil
}

func indexOfItem(items []*entity.BasketItem, id uuid.UUID) int {
	return slices.IndexFunc(items, func(item *entity.BasketItem) bool { return item.ID == id })
}
