package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/dbtest"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/metrics"
	authmw "github.com/Skotchmaster/storefront/pkg/middleware/auth"
)

var testSecret = []byte("http-test-secret")

type testServer struct {
	e      *echo.Echo
	repo   *repo.GormRepo
	fs     afero.Fs
	events *events.Recorder
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	_, r := dbtest.New(t)
	rec := &events.Recorder{}
	fs := afero.NewMemMapFs()

	e := echo.New()
	Register(e, &Deps{
		AuthHandler: &AuthHTTP{Svc: &service.AuthService{Repo: r, JWTSecret: testSecret, Events: rec}},
		ProductHandler: &ProductHTTP{Svc: &service.CatalogService{Repo: r}},
		CartHandler:    &CartHTTP{Svc: &service.CartService{Repo: r, Events: rec}},
		OrderHandler:   &OrderHTTP{Svc: &service.OrderService{Repo: r, Events: rec}},
		ImageHandler: &ImageHTTP{Svc: &service.ImageService{
			Fs: fs, UploadDir: "uploads", TmpDir: "uploads/.tmp",
		}},
		Ready:    r.Ping,
		Metrics:  metrics.NewServerMetrics("test"),
		Identity: authmw.NewIdentity(testSecret),
	})

	return &testServer{e: e, repo: r, fs: fs, events: rec}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) seedProducts(t *testing.T, products ...models.Product) {
	t.Helper()
	require.NoError(t, s.repo.CreateProducts(context.Background(), products))
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health/live", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health/ready", nil).Code)
}

func TestHealth_NotReady(t *testing.T) {
	e := echo.New()
	Register(e, &Deps{
		AuthHandler:    &AuthHTTP{},
		ProductHandler: &ProductHTTP{},
		CartHandler:    &CartHTTP{},
		OrderHandler:   &OrderHTTP{},
		ImageHandler:   &ImageHTTP{},
		Ready:          func(context.Context) error { return errors.New("db down") },
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"not ready"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/products", nil)

	rec := s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `handler="/products"`)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}

// Walks a whole session: signup, login, cart, order.
func TestShoppingFlow(t *testing.T) {
	s := newTestServer(t)
	s.seedProducts(t, models.Product{Name: "Mug", Price: decimal.RequireFromString("9.99")})

	rec := s.do(t, http.MethodPost, "/signup", map[string]string{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := decode[models.User](t, rec)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "pw1", user.Password)
	assert.NotEmpty(t, user.Password)

	rec = s.do(t, http.MethodPost, "/login", map[string]string{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decode[map[string]string](t, rec)
	assert.NotEmpty(t, login["token"])

	rec = s.do(t, http.MethodPost, "/login", map[string]string{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/cart", map[string]any{"userId": user.ID, "productId": 1, "quantity": 2})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decode[models.CartItem](t, rec)
	assert.Equal(t, user.ID, item.UserID)
	assert.EqualValues(t, 1, item.ProductID)
	assert.Equal(t, 2, item.Quantity)

	rec = s.do(t, http.MethodGet, "/cart/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.CartItem](t, rec), 1)

	rec = s.do(t, http.MethodPost, "/orders", `{"userId":1,"totalAmount":19.98}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[models.Order](t, rec)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("19.98")))

	rec = s.do(t, http.MethodGet, "/cart/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/orders/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[[]models.Order](t, rec)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	var types []any
	for _, ev := range s.events.Events() {
		types = append(types, ev.Event.(map[string]any)["type"])
	}
	assert.Equal(t, []any{"user_registered", "user_logged_in", "cart_item_added", "order_placed"}, types)
}
