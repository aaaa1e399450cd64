package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
)

func TestOrders(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/orders", `{"userId":5,"totalAmount":"12.50"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[models.Order](t, rec)
	assert.EqualValues(t, 5, order.UserID)
	assert.Equal(t, "12.5", order.TotalAmount.String())
	assert.Equal(t, models.OrderStatusPending, order.Status)

	rec = s.do(t, http.MethodPost, "/orders", `{"userId":5,"totalAmount":3}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodGet, "/orders/5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Order](t, rec), 2)

	rec = s.do(t, http.MethodGet, "/orders/6", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/orders/abc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestOrders_MissingTotal(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/orders", `{"userId":5}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/orders/5", nil)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
