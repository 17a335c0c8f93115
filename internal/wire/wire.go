package wire

import (
	"net/http"

	"movie-basket/internal/adaptor"
	"movie-basket/internal/data/repository"
	"movie-basket/internal/usecase"
	"movie-basket/pkg/middleware"
	"movie-basket/pkg/monitoring"
	"movie-basket/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router. metrics may be nil.
func Wiring(repo *repository.Repository, config *utils.Config, metrics *monitoring.Metrics, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, metrics, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, metrics, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	if metrics != nil {
		r.Use(middleware.Metrics(metrics))
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	auth := middleware.AuthSession(repo, logger)
	admin := middleware.Admin(logger)

	wireAuth(r, handler.Auth, auth)
	wireUser(r, handler.User, auth, admin)
	wireMovie(r, handler.Movie, auth, admin)
	wireBasket(r, handler.Basket, auth)
	wireOrder(r, handler.Order, auth, admin)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})

	return r
}
