package repository

import (
	"errors"

	"movie-basket/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrNotFound is returned by writes that matched no row. Reads signal absence with a
// nil entity and nil error instead.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned by inserts that hit a unique key.
var ErrDuplicate = errors.New("duplicate key")

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Movie   MovieRepository
	Basket  BasketRepository
	Order   OrderRepository
}

// NewRepository builds the postgres-backed repositories.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Movie:   NewMovieRepository(db, log),
		Basket:  NewBasketRepository(db, log),
		Order:   NewOrderRepository(db, log),
	}
}

// NewMemoryRepository builds process-local repositories, used by tests and by
// STORAGE=memory for local runs.
func NewMemoryRepository() *Repository {
	return &Repository{
		User:    NewMemoryUserRepository(),
		Session: NewMemorySessionRepository(),
		Movie:   NewMemoryMovieRepository(),
		Basket:  NewMemoryBasketRepository(),
		Order:   NewMemoryOrderRepository(),
	}
}

// WithBasket swaps the basket store, e.g. to keep baskets in redis while the rest
// stays in postgres.
func (r *Repository) WithBasket(basket BasketRepository) *Repository {
	r.Basket = basket
	return r
}
