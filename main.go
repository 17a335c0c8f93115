// main.go
package main

import (
	"context"
	"log"

	"movie-basket/cmd"
	"movie-basket/internal/data/repository"
	"movie-basket/internal/wire"
	"movie-basket/pkg/database"
	"movie-basket/pkg/monitoring"
	"movie-basket/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("storage", config.Storage.Driver),
		zap.String("basket_store", config.Storage.BasketDriver),
	)

	ctx := context.Background()

	repos, cleanup := openStorage(ctx, config, logger)
	defer cleanup()

	var metrics *monitoring.Metrics
	if config.App.MetricsEnabled {
		metrics = monitoring.NewMetrics()
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, metrics, logger)

	if config.Catalog.Seed {
		if _, err := app.Service.Movie.SeedCatalog(ctx); err != nil {
			logger.Fatal("Failed to seed catalog", zap.Error(err))
		}
	}

	// Start server
	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}

// openStorage builds the repositories selected by STORAGE and BASKET_STORE.
func openStorage(ctx context.Context, config *utils.Config, logger *zap.Logger) (*repository.Repository, func()) {
	var (
		repos    *repository.Repository
		closers  []func()
		pgActive bool
	)

	switch config.Storage.Driver {
	case utils.DriverMemory:
		repos = repository.NewMemoryRepository()
		logger.Warn("Using in-memory storage, data is lost on restart")

	case utils.DriverPostgres:
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		closers = append(closers, db.Close)

		if err := database.EnsureSchema(ctx, db); err != nil {
			logger.Fatal("Failed to apply schema", zap.Error(err))
		}

		logger.Info("Database connected successfully")
		repos = repository.NewRepository(db, logger)
		pgActive = true

	default:
		logger.Fatal("Unknown storage driver", zap.String("driver", config.Storage.Driver))
	}

	switch config.Storage.BasketDriver {
	case utils.DriverRedis:
		client, err := database.InitRedis(config.Redis.URL)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		closers = append(closers, func() { client.Close() })

		logger.Info("Redis connected, baskets stored in redis", zap.Duration("ttl", config.Redis.BasketTTL))
		repos.WithBasket(repository.NewRedisBasketRepository(client, config.Redis.BasketTTL, logger))

	case utils.DriverMemory:
		if pgActive {
			repos.WithBasket(repository.NewMemoryBasketRepository())
		}

	case utils.DriverPostgres:
		if !pgActive {
			logger.Fatal("BASKET_STORE=postgres requires STORAGE=postgres")
		}

	default:
		logger.Fatal("Unknown basket store", zap.String("driver", config.Storage.BasketDriver))
	}

	return repos, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
}
