package usecase

import (
	"context"
	"testing"

	"movie-basket/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovie_SeedCatalogIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n, err := f.service.Movie.SeedCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(starterCatalog), n)

	n, err = f.service.Movie.SeedCatalog(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	page, err := f.service.Movie.GetMovies(ctx, &request.PaginatedRequest{Page: 1, PerPage: 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(len(starterCatalog)), page.Pagination.Total)
	require.Len(t, page.Data, 3)
	assert.Equal(t, "The Shawshank Redemption", page.Data[0].Title, "highest rating first")
	assert.Equal(t, "350", page.Data[0].TicketPrice.String())
}

func TestMovie_Search(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.service.Movie.SeedCatalog(ctx)
	require.NoError(t, err)

	page, err := f.service.Movie.GetMovies(ctx, &request.PaginatedRequest{Page: 1, PerPage: 10}, ptr("nolan"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, "The Dark Knight", page.Data[0].Title)
	assert.Equal(t, "Inception", page.Data[1].Title)
	assert.Equal(t, "Interstellar", page.Data[2].Title)
}

func TestMovie_CRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.Movie.CreateMovie(ctx, &request.MovieRequest{
		Title:    "Arrival",
		Director: "Denis Villeneuve",
		Year:     2016,
		Rating:   7.9,
	})
	require.NoError(t, err)
	assert.Equal(t, "350", created.TicketPrice.String(), "base price applies when none is given")

	_, err = f.service.Movie.CreateMovie(ctx, &request.MovieRequest{Title: "arrival", Director: "X", Year: 2016})
	assert.ErrorIs(t, err, ErrConflict)

	updated, err := f.service.Movie.UpdateMovie(ctx, created.ID, &request.MovieUpdateRequest{
		Rating:      ptr(8.1),
		TicketPrice: ptr(420.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 8.1, updated.Rating)
	assert.Equal(t, "420", updated.TicketPrice.String())
	assert.Equal(t, "Arrival", updated.Title)

	_, err = f.service.Movie.UpdateMovie(ctx, created.ID, &request.MovieUpdateRequest{Rating: ptr(11.0)})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, f.service.Movie.DeleteMovie(ctx, created.ID))
	_, err = f.service.Movie.GetMovieByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.service.Movie.DeleteMovie(ctx, created.ID), ErrNotFound)

	_, err = f.service.Movie.GetMovieByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.service.Movie.GetMovieByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}
