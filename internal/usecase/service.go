package usecase

import (
	"movie-basket/internal/data/repository"
	"movie-basket/pkg/monitoring"
	"movie-basket/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	User   UserService
	Movie  MovieService
	Basket BasketService
	Order  OrderService
}

func NewService(repo *repository.Repository, config *utils.Config, metrics *monitoring.Metrics, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, config, metrics, log),
		User:   NewUserService(repo, metrics, log),
		Movie:  NewMovieService(repo, config, log),
		Basket: NewBasketService(repo, metrics, log),
		Order:  NewOrderService(repo, metrics, log),
	}
}
