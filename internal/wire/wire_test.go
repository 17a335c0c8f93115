package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"movie-basket/internal/data/repository"
	"movie-basket/pkg/monitoring"
	"movie-basket/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type client struct {
	t      *testing.T
	router http.Handler
	token  string
}

func (c *client) do(method, path string, body any) (int, envelope) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

func (c *client) data(env envelope, dst any) {
	c.t.Helper()
	require.NoError(c.t, json.Unmarshal(env.Data, dst))
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	config := &utils.Config{
		Auth: utils.AuthConfig{
			SessionExpiry: time.Hour,
			AdminEmails:   []string{"admin@example.com"},
		},
		Catalog: utils.CatalogConfig{BaseTicketPrice: decimal.NewFromInt(350)},
	}
	app := Wiring(repository.NewMemoryRepository(), config, monitoring.NewMetrics(), zap.NewNop())

	_, err := app.Service.Movie.SeedCatalog(context.Background())
	require.NoError(t, err)
	return app
}

func registerBody(email string) map[string]any {
	return map[string]any{
		"first_name":       "Anna",
		"last_name":        "Petrova",
		"email":            email,
		"phone":            "+7 916 123 45 67",
		"password":         "Secret1",
		"confirm_password": "Secret1",
		"birth_date":       "1990-05-17",
		"agree_terms":      true,
	}
}

func (c *client) login(email string) {
	c.t.Helper()
	c.token = ""

	code, env := c.do(http.MethodPost, "/api/register", registerBody(email))
	require.Equal(c.t, http.StatusCreated, code, env.Message)

	code, env = c.do(http.MethodPost, "/api/login", map[string]string{"email": email, "password": "Secret1"})
	require.Equal(c.t, http.StatusOK, code, env.Message)

	var auth struct {
		Token string `json:"token"`
	}
	c.data(env, &auth)
	c.token = auth.Token
}

func TestCheckoutFlow(t *testing.T) {
	app := newTestApp(t)
	c := &client{t: t, router: app.Router}
	c.login("anna@example.com")

	code, env := c.do(http.MethodGet, "/api/movies?search=matrix", nil)
	require.Equal(t, http.StatusOK, code)
	var movies struct {
		Data []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"data"`
	}
	c.data(env, &movies)
	require.Len(t, movies.Data, 1)
	movieID := movies.Data[0].ID

	code, env = c.do(http.MethodPost, "/api/basket/items", map[string]any{
		"movie_id":     movieID,
		"quantity":     2,
		"show_time":    "2024-12-20T18:00",
		"seat_numbers": []string{"A5", "A6"},
	})
	require.Equal(t, http.StatusCreated, code, env.Message)

	var basket struct {
		Items      []map[string]any `json:"items"`
		TotalPrice string           `json:"total_price"`
		ItemCount  int              `json:"item_count"`
	}
	c.data(env, &basket)
	assert.Equal(t, "700", basket.TotalPrice)
	assert.Equal(t, 2, basket.ItemCount)

	code, env = c.do(http.MethodPost, "/api/orders", nil)
	require.Equal(t, http.StatusCreated, code, env.Message)
	var order struct {
		ID          string `json:"id"`
		OrderNumber string `json:"order_number"`
		Status      string `json:"status"`
		TotalAmount string `json:"total_amount"`
	}
	c.data(env, &order)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, "700", order.TotalAmount)

	code, env = c.do(http.MethodGet, "/api/basket", nil)
	require.Equal(t, http.StatusOK, code)
	var empty struct {
		IsEmpty bool `json:"is_empty"`
	}
	c.data(env, &empty)
	assert.True(t, empty.IsEmpty)

	code, env = c.do(http.MethodPost, "/api/orders", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code, "second checkout has nothing to order")

	code, env = c.do(http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, code)
	var orders struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	c.data(env, &orders)
	require.Len(t, orders.Data, 1)
	assert.Equal(t, order.ID, orders.Data[0].ID)

	code, _ = c.do(http.MethodPut, "/api/orders/"+order.ID+"/cancel", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = c.do(http.MethodPost, "/api/logout", nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = c.do(http.MethodGet, "/api/basket", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestErrorMapping(t *testing.T) {
	app := newTestApp(t)
	c := &client{t: t, router: app.Router}

	code, _ := c.do(http.MethodGet, "/api/basket", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := c.do(http.MethodPost, "/api/login", map[string]string{"email": "ghost@example.com", "password": "Secret1"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Status)

	bad := registerBody("anna@example")
	bad["confirm_password"] = "nope"
	code, env = c.do(http.MethodPost, "/api/register", bad)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "confirm_password")

	c.login("anna@example.com")
	c.token = ""
	code, _ = c.do(http.MethodPost, "/api/register", registerBody("anna@example.com"))
	assert.Equal(t, http.StatusConflict, code)

	code, _ = c.do(http.MethodGet, "/api/movies/00000000-0000-0000-0000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHugePageIsEmptyNotAnError(t *testing.T) {
	app := newTestApp(t)
	c := &client{t: t, router: app.Router}

	code, env := c.do(http.MethodGet, "/api/movies?page=9223372036854775807&per_page=100", nil)
	require.Equal(t, http.StatusOK, code)

	var movies struct {
		Data       []map[string]any `json:"data"`
		Pagination struct {
			Page  int   `json:"page"`
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	c.data(env, &movies)
	assert.Empty(t, movies.Data)
	assert.Equal(t, 1_000_000, movies.Pagination.Page)
	assert.EqualValues(t, 10, movies.Pagination.Total)
}

func TestOrderOwnershipAndAdmin(t *testing.T) {
	app := newTestApp(t)
	anna := &client{t: t, router: app.Router}
	anna.login("anna@example.com")
	bob := &client{t: t, router: app.Router}
	bob.login("bob@example.com")
	admin := &client{t: t, router: app.Router}
	admin.login("admin@example.com")

	code, env := anna.do(http.MethodGet, "/api/movies?per_page=1", nil)
	require.Equal(t, http.StatusOK, code)
	var movies struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	anna.data(env, &movies)

	code, _ = anna.do(http.MethodPost, "/api/basket/items", map[string]any{"movie_id": movies.Data[0].ID, "quantity": 1})
	require.Equal(t, http.StatusCreated, code)
	code, env = anna.do(http.MethodPost, "/api/orders", map[string]string{"payment_method": "cash"})
	require.Equal(t, http.StatusCreated, code)
	var order struct {
		ID string `json:"id"`
	}
	anna.data(env, &order)

	code, _ = bob.do(http.MethodGet, "/api/orders/"+order.ID, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = bob.do(http.MethodGet, "/api/admin/orders", nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = admin.do(http.MethodGet, "/api/orders/"+order.ID, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = admin.do(http.MethodPut, "/api/admin/orders/"+order.ID+"/status", map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusOK, code)

	code, _ = anna.do(http.MethodPut, "/api/orders/"+order.ID+"/cancel", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code, "completed orders cannot be cancelled")

	code, _ = admin.do(http.MethodPost, "/api/admin/movies", map[string]any{
		"title": "Arrival", "director": "Denis Villeneuve", "year": 2016, "rating": 7.9,
	})
	assert.Equal(t, http.StatusCreated, code)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t)
	c := &client{t: t, router: app.Router}

	code, env := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Status)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/health"`)
}
