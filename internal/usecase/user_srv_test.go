package usecase

import (
	"context"
	"strings"
	"testing"

	"movie-basket/internal/dto/request"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_ProfileRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.register(t, "anna@example.com")

	profile, err := f.service.User.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Anna Petrova", profile.FullName)
	assert.Equal(t, "1990-05-17", profile.BirthDate)

	profile, err = f.service.User.UpdateProfile(ctx, id, &request.UpdateProfileRequest{
		LastName: ptr("Ivanova"),
		Email:    ptr("Anna.I@Example.com"),
		Gender:   ptr("female"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Anna Ivanova", profile.FullName)
	assert.Equal(t, "anna.i@example.com", profile.Email)
	assert.Equal(t, "female", profile.Gender)
	assert.Equal(t, "+79161234567", profile.Phone, "absent fields stay untouched")

	_, err = f.service.User.GetProfile(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUser_UpdateProfileErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.register(t, "anna@example.com")
	f.register(t, "bob@example.com")

	_, err := f.service.User.UpdateProfile(ctx, id, &request.UpdateProfileRequest{Email: ptr("BOB@example.com")})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.service.User.UpdateProfile(ctx, id, &request.UpdateProfileRequest{Gender: ptr("robot")})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUser_AdminListAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	anna := f.register(t, "anna@example.com")
	f.register(t, "bob@example.com")

	page, err := f.service.User.GetAllUsers(ctx, &request.PaginatedRequest{Page: 1, PerPage: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Len(t, page.Data, 1)

	require.NoError(t, f.service.User.DeleteUser(ctx, anna.String()))
	assert.ErrorIs(t, f.service.User.DeleteUser(ctx, anna.String()), ErrNotFound)

	_, err = f.service.Auth.Login(ctx, &request.LoginRequest{Email: "anna@example.com", Password: "Secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials, "deleted users cannot log in")
}

func TestUser_DeleteRevokesAndCountsSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	registered, err := f.service.Auth.Register(ctx, validRegister("anna@example.com"))
	require.NoError(t, err)
	_, err = f.service.Auth.Login(ctx, &request.LoginRequest{Email: "anna@example.com", Password: "Secret1"})
	require.NoError(t, err)

	require.NoError(t, f.service.User.DeleteUser(ctx, registered.User.ID))

	session, err := f.repo.Session.FindValidSession(ctx, uuid.MustParse(registered.Token))
	require.NoError(t, err)
	assert.Nil(t, session)

	expected := `
# HELP session_events_total Sessions issued and revoked; expiry is not counted
# TYPE session_events_total counter
session_events_total{event="issued"} 2
session_events_total{event="revoked"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(f.metrics.Registry(), strings.NewReader(expected), "session_events_total"))
}
