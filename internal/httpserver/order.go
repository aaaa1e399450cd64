package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return bindFail(l, "create_order_error", err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "create_order_error", err, "")
	}

	userID, totalAmount, err := req.Parse()
	if err != nil {
		return fail(l, "create_order_error", fmt.Errorf("%w: %w", service.ErrValidation, err), "")
	}

	order, err := h.Svc.PlaceOrder(ctx, userID, totalAmount)
	if err != nil {
		return fail(l, "create_order_error", err, "")
	}

	l.Info("order placed", "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get_orders")

	userID, ok := pathID(c, "userId")
	if !ok {
		return c.JSON(http.StatusOK, []models.Order{})
	}

	orders, err := h.Svc.ListOrders(ctx, userID)
	if err != nil {
		return fail(l, "get_orders_error", err, "")
	}
	return c.JSON(http.StatusOK, orders)
}
