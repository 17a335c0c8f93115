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
	"movie-basket/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context, req *request.PaginatedRequest, search *string) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
	SeedCatalog(ctx context.Context) (int, error)
}

type movieService struct {
	repo      *repository.Repository
	basePrice decimal.Decimal
	log       *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo:      repo,
		basePrice: config.Catalog.BaseTicketPrice,
		log:       log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, req *request.PaginatedRequest, search *string) (*response.PaginatedResponse[response.MovieResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	movies, err := s.repo.Movie.FindAll(ctx, limit, offset, search)
	if err != nil {
		s.log.Error("Failed to get movies",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
			zap.Stringp("search", search),
		)
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx, search)
	if err != nil {
		s.log.Error("Failed to count movies", zap.Error(err), zap.Stringp("search", search))
		return nil, fmt.Errorf("count movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	s.log.Debug("Movies retrieved",
		zap.Int("count", len(movies)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
	)

	return response.NewPaginatedResponse(movieResponses, req.Page, limit, total), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create movie validation failed", zap.Error(err))
		return nil, err
	}

	existing, err := s.repo.Movie.FindByTitle(ctx, req.Title)
	if err != nil {
		return nil, fmt.Errorf("check title: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("movie %q: %w", req.Title, ErrConflict)
	}

	price := s.basePrice
	if req.TicketPrice != nil {
		price = decimal.NewFromFloat(*req.TicketPrice)
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       strings.TrimSpace(req.Title),
		Director:    strings.TrimSpace(req.Director),
		Year:        req.Year,
		Rating:      req.Rating,
		PosterURL:   req.PosterURL,
		Description: req.Description,
		TicketPrice: price,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		s.log.Error("Failed to create movie", zap.Error(err), zap.String("title", req.Title))
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	// Apply partial updates only for provided fields
	updated := false

	if req.Title != nil && *req.Title != movie.Title {
		movie.Title = strings.TrimSpace(*req.Title)
		updated = true
	}
	if req.Director != nil && *req.Director != movie.Director {
		movie.Director = strings.TrimSpace(*req.Director)
		updated = true
	}
	if req.Year != nil && *req.Year != movie.Year {
		movie.Year = *req.Year
		updated = true
	}
	if req.Rating != nil && *req.Rating != movie.Rating {
		movie.Rating = *req.Rating
		updated = true
	}
	if req.PosterURL != nil {
		movie.PosterURL = req.PosterURL
		updated = true
	}
	if req.Description != nil {
		movie.Description = req.Description
		updated = true
	}
	if req.TicketPrice != nil {
		movie.TicketPrice = decimal.NewFromFloat(*req.TicketPrice)
		updated = true
	}

	if updated {
		movie.UpdatedAt = time.Now()
		if err := s.repo.Movie.Update(ctx, movie); err != nil {
			s.log.Error("Failed to update movie", zap.Error(err), zap.String("movie_id", movieID))
			return nil, fmt.Errorf("update movie: %w", err)
		}
	}

	s.log.Info("Movie updated",
		zap.String("movie_id", movieID),
		zap.Bool("was_updated", updated),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

// DeleteMovie soft-deletes; basket lines and orders keep their copied title and price.
func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return fieldError("id", "Must be a valid UUID")
	}

	if err := s.repo.Movie.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("movie %s: %w", movieID, ErrNotFound)
		}
		s.log.Error("Failed to delete movie", zap.Error(err), zap.String("movie_id", movieID))
		return fmt.Errorf("delete movie: %w", err)
	}

	s.log.Info("Movie deleted", zap.String("movie_id", movieID))
	return nil
}

// SeedCatalog inserts the starter catalog, skipping titles that already exist.
func (s *movieService) SeedCatalog(ctx context.Context) (int, error) {
	inserted := 0
	for _, seed := range starterCatalog {
		existing, err := s.repo.Movie.FindByTitle(ctx, seed.title)
		if err != nil {
			return inserted, fmt.Errorf("check %q: %w", seed.title, err)
		}
		if existing != nil {
			continue
		}

		now := time.Now()
		movie := &entity.Movie{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Title:       seed.title,
			Director:    seed.director,
			Year:        seed.year,
			Rating:      seed.rating,
			TicketPrice: s.basePrice,
		}
		if err := s.repo.Movie.Create(ctx, movie); err != nil {
			return inserted, fmt.Errorf("seed %q: %w", seed.title, err)
		}
		inserted++
	}

	s.log.Info("Catalog seeded", zap.Int("inserted", inserted), zap.Int("known", len(starterCatalog)))
	return inserted, nil
}

func (s *movieService) findMovie(ctx context.Context, movieID string) (*entity.Movie, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fieldError("id", "Must be a valid UUID")
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie by ID", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("get movie by id: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, ErrNotFound)
	}
	return movie, nil
}

var starterCatalog = []struct {
	title    string
	director string
	year     int
	rating   float64
}{
	{"The Shawshank Redemption", "Frank Darabont", 1994, 9.3},
	{"The Godfather", "Francis Ford Coppola", 1972, 9.2},
	{"The Dark Knight", "Christopher Nolan", 2008, 9.0},
	{"Pulp Fiction", "Quentin Tarantino", 1994, 8.9},
	{"Forrest Gump", "Robert Zemeckis", 1994, 8.8},
	{"Inception", "Christopher Nolan", 2010, 8.8},
	{"Fight Club", "David Fincher", 1999, 8.8},
	{"The Matrix", "Lana Wachowski, Lilly Wachowski", 1999, 8.7},
	{"Interstellar", "Christopher Nolan", 2014, 8.7},
	{"Shutter Island", "Martin Scorsese", 2010, 8.2},
}
