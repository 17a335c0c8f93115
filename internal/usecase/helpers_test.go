package usecase

import (
	"context"
	"testing"
	"time"

	"movie-basket/internal/data/entity"
	"movie-basket/internal/data/repository"
	"movie-basket/internal/dto/request"
	"movie-basket/pkg/monitoring"
	"movie-basket/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	repo    *repository.Repository
	config  *utils.Config
	metrics *monitoring.Metrics
	service *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	config := &utils.Config{
		Auth: utils.AuthConfig{
			SessionExpiry: 24 * time.Hour,
			AdminEmails:   []string{"admin@example.com"},
		},
		Catalog: utils.CatalogConfig{BaseTicketPrice: decimal.NewFromInt(350)},
	}
	repo := repository.NewMemoryRepository()
	metrics := monitoring.NewMetrics()

	return &fixture{
		repo:    repo,
		config:  config,
		metrics: metrics,
		service: NewService(repo, config, metrics, zap.NewNop()),
	}
}

func validRegister(email string) *request.RegisterRequest {
	return &request.RegisterRequest{
		FirstName:       "Anna",
		LastName:        "Petrova",
		Email:           email,
		Phone:           "+7 (916) 123-45-67",
		Password:        "Secret1",
		ConfirmPassword: "Secret1",
		BirthDate:       "1990-05-17",
		AgreeTerms:      true,
	}
}

// register returns the new user's id.
func (f *fixture) register(t *testing.T, email string) uuid.UUID {
	t.Helper()
	resp, err := f.service.Auth.Register(context.Background(), validRegister(email))
	require.NoError(t, err)
	return uuid.MustParse(resp.User.ID)
}

func (f *fixture) movie(t *testing.T, title string, price int64) *entity.Movie {
	t.Helper()
	now := time.Now()
	m := &entity.Movie{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title:       title,
		Director:    "Someone",
		Year:        2000,
		Rating:      7.5,
		TicketPrice: decimal.NewFromInt(price),
	}
	require.NoError(t, f.repo.Movie.Create(context.Background(), m))
	return m
}

func ptr[T any](v T) *T { return &v }

type mockBasketRepository struct {
	mock.Mock
}

func (m *mockBasketRepository) Get(ctx context.Context, userID uuid.UUID) ([]*entity.BasketItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]*entity.BasketItem)
	return items, args.Error(1)
}

func (m *mockBasketRepository) Save(ctx context.Context, userID uuid.UUID, items []*entity.BasketItem) error {
	args := m.Called(ctx, userID, items)
	return args.Error(0)
}
