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

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add_to_cart")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return bindFail(l, "add_to_cart_error", err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "add_to_cart_error", err, "")
	}

	userID, productID, quantity, err := req.Parse()
	if err != nil {
		return fail(l, "add_to_cart_error", fmt.Errorf("%w: %w", service.ErrValidation, err), "")
	}

	item, err := h.Svc.AddToCart(ctx, userID, productID, quantity)
	if err != nil {
		return fail(l, "add_to_cart_error", err, "")
	}

	l.Info("item added to cart", "cart_item_id", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "remove_from_cart")

	id, ok := pathID(c, "id")
	if !ok {
		l.Warn("remove_from_cart_error", "status", 404, "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, msgCartItemNotFound)
	}

	if err := h.Svc.RemoveFromCart(ctx, id); err != nil {
		return fail(l, "remove_from_cart_error", err, msgCartItemNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get_cart")

	userID, ok := pathID(c, "userId")
	if !ok {
		return c.JSON(http.StatusOK, []models.CartItem{})
	}

	items, err := h.Svc.ListCart(ctx, userID)
	if err != nil {
		return fail(l, "get_cart_error", err, "")
	}
	return c.JSON(http.StatusOK, items)
}
