package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"movie-basket/internal/data/entity"

	"github.com/google/uuid"
)

// Memory repositories hand out copies so callers can never mutate stored state
// without going through Save/Update.

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// ==================== USERS ====================

type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]entity.User
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[uuid.UUID]entity.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.DeletedAt == nil && strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("create user %s: email already exists", user.Email)
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	return &u, nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.DeletedAt == nil && strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepository) active() []*entity.User {
	users := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		u := u
		if u.DeletedAt == nil {
			users = append(users, &u)
		}
	}
	slices.SortFunc(users, func(a, b *entity.User) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return users
}

func (r *memoryUserRepository) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return page(r.active(), limit, offset), nil
}

func (r *memoryUserRepository) CountAll(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.active())), nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[user.ID]
	if !ok || u.DeletedAt != nil {
		return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	now := time.Now()
	u.DeletedAt = &now
	u.IsActive = false
	r.users[id] = u
	return nil
}

// ==================== SESSIONS ====================

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]entity.Session // keyed by token
}

func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{sessions: make(map[uuid.UUID]entity.Session)}
}

func (r *memorySessionRepository) Create(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Token] = *session
	return nil
}

func (r *memorySessionRepository) FindValidSession(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[token]
	if !ok || !s.Valid(time.Now()) {
		return nil, nil
	}
	return &s, nil
}

func (r *memorySessionRepository) Revoke(_ context.Context, token uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok || s.RevokedAt != nil {
		return fmt.Errorf("session: %w", ErrNotFound)
	}
	now := time.Now()
	s.RevokedAt = &now
	r.sessions[token] = s
	return nil
}

func (r *memorySessionRepository) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var revoked int64
	now := time.Now()
	for token, s := range r.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			s.RevokedAt = &now
			r.sessions[token] = s
			revoked++
		}
	}
	return revoked, nil
}

// ==================== MOVIES ====================

type memoryMovieRepository struct {
	mu     sync.RWMutex
	movies map[uuid.UUID]entity.Movie
}

func NewMemoryMovieRepository() MovieRepository {
	return &memoryMovieRepository{movies: make(map[uuid.UUID]entity.Movie)}
}

func (r *memoryMovieRepository) Create(_ context.Context, movie *entity.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movies[movie.ID] = *movie
	return nil
}

func (r *memoryMovieRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.movies[id]
	if !ok || m.DeletedAt != nil {
		return nil, nil
	}
	return &m, nil
}

func (r *memoryMovieRepository) FindByTitle(_ context.Context, title string) (*entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.movies {
		if m.DeletedAt == nil && strings.EqualFold(m.Title, title) {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *memoryMovieRepository) matching(search *string) []*entity.Movie {
	var needle string
	if search != nil {
		needle = strings.ToLower(*search)
	}

	movies := make([]*entity.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		m := m
		if m.DeletedAt != nil {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(m.Title), needle) &&
			!strings.Contains(strings.ToLower(m.Director), needle) {
			continue
		}
		movies = append(movies, &m)
	}

	slices.SortFunc(movies, func(a, b *entity.Movie) int {
		if a.Rating != b.Rating {
			if a.Rating > b.Rating {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Title, b.Title)
	})
	return movies
}

func (r *memoryMovieRepository) FindAll(_ context.Context, limit, offset int, search *string) ([]*entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return page(r.matching(search), limit, offset), nil
}

func (r *memoryMovieRepository) CountAll(_ context.Context, search *string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.matching(search))), nil
}

func (r *memoryMovieRepository) Update(_ context.Context, movie *entity.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.movies[movie.ID]
	if !ok || m.DeletedAt != nil {
		return fmt.Errorf("movie %s: %w", movie.ID, ErrNotFound)
	}
	r.movies[movie.ID] = *movie
	return nil
}

func (r *memoryMovieRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.movies[id]
	if !ok || m.DeletedAt != nil {
		return fmt.Errorf("movie %s: %w", id, ErrNotFound)
	}
	now := time.Now()
	m.DeletedAt = &now
	r.movies[id] = m
	return nil
}

// ==================== BASKETS ====================

type memoryBasketRepository struct {
	mu      sync.RWMutex
	baskets map[uuid.UUID][]entity.BasketItem
}

func NewMemoryBasketRepository() BasketRepository {
	return &memoryBasketRepository{baskets: make(map[uuid.UUID][]entity.BasketItem)}
}

func cloneBasketItem(item entity.BasketItem) entity.BasketItem {
	item.SeatNumbers = slices.Clone(item.SeatNumbers)
	return item
}

func (r *memoryBasketRepository) Get(_ context.Context, userID uuid.UUID) ([]*entity.BasketItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.baskets[userID]
	items := make([]*entity.BasketItem, len(stored))
	for i := range stored {
		item := cloneBasketItem(stored[i])
		items[i] = &item
	}
	return items, nil
}

func (r *memoryBasketRepository) Save(_ context.Context, userID uuid.UUID, items []*entity.BasketItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(items) == 0 {
		delete(r.baskets, userID)
		return nil
	}

	stored := make([]entity.BasketItem, len(items))
	for i, item := range items {
		stored[i] = cloneBasketItem(*item)
	}
	r.baskets[userID] = stored
	return nil
}

// ==================== ORDERS ====================

type memoryOrderRepository struct {
	mu     sync.RWMutex
	orders []entity.Order // append order
}

func NewMemoryOrderRepository() OrderRepository {
	return &memoryOrderRepository{}
}

func cloneOrder(order entity.Order) *entity.Order {
	items := make([]entity.OrderItem, len(order.Items))
	for i, item := range order.Items {
		item.SeatNumbers = slices.Clone(item.SeatNumbers)
		items[i] = item
	}
	order.Items = items
	return &order
}

func (r *memoryOrderRepository) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(r.orders, func(o entity.Order) bool { return o.ID == id })
}

// newestFirst walks the log backwards so equal timestamps still list the latest
// checkout first.
func (r *memoryOrderRepository) newestFirst(keep func(*entity.Order) bool) []*entity.Order {
	var orders []*entity.Order
	for i := len(r.orders) - 1; i >= 0; i-- {
		if keep(&r.orders[i]) {
			orders = append(orders, cloneOrder(r.orders[i]))
		}
	}
	slices.SortStableFunc(orders, func(a, b *entity.Order) int {
		return b.Date.Compare(a.Date)
	})
	return orders
}

func (r *memoryOrderRepository) Create(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].OrderNumber == order.OrderNumber {
			return fmt.Errorf("order number %s: %w", order.OrderNumber, ErrDuplicate)
		}
	}
	r.orders = append(r.orders, *cloneOrder(*order))
	return nil
}

func (r *memoryOrderRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	return cloneOrder(r.orders[i]), nil
}

func byOwner(userID uuid.UUID, email string) func(*entity.Order) bool {
	return func(o *entity.Order) bool { return o.UserID == userID && strings.EqualFold(o.UserEmail, email) }
}

func byStatus(status *entity.OrderStatus) func(*entity.Order) bool {
	return func(o *entity.Order) bool { return status == nil || o.Status == *status }
}

func (r *memoryOrderRepository) FindByOwner(_ context.Context, userID uuid.UUID, email string, limit, offset int) ([]*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return page(r.newestFirst(byOwner(userID, email)), limit, offset), nil
}

func (r *memoryOrderRepository) CountByOwner(_ context.Context, userID uuid.UUID, email string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.newestFirst(byOwner(userID, email)))), nil
}

func (r *memoryOrderRepository) UpdateUserEmail(_ context.Context, userID uuid.UUID, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].UserID == userID {
			r.orders[i].UserEmail = email
		}
	}
	return nil
}

func (r *memoryOrderRepository) FindAll(_ context.Context, limit, offset int, status *entity.OrderStatus) ([]*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return page(r.newestFirst(byStatus(status)), limit, offset), nil
}

func (r *memoryOrderRepository) CountAll(_ context.Context, status *entity.OrderStatus) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.newestFirst(byStatus(status)))), nil
}

func (r *memoryOrderRepository) Update(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(order.ID)
	if i < 0 {
		return fmt.Errorf("order %s: %w", order.ID, ErrNotFound)
	}

	stored := &r.orders[i]
	stored.Status = order.Status
	stored.PaymentMethod = order.PaymentMethod
	stored.CustomerName = order.CustomerName
	stored.CustomerEmail = order.CustomerEmail
	stored.CustomerPhone = order.CustomerPhone
	stored.DeliveryAddress = order.DeliveryAddress
	stored.Notes = order.Notes
	stored.UpdatedAt = order.UpdatedAt
	return nil
}

func (r *memoryOrderRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	r.orders = slices.Delete(r.orders, i, i+1)
	return nil
}
