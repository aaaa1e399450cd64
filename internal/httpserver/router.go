package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	authmw "github.com/Skotchmaster/storefront/pkg/middleware/auth"
	"github.com/Skotchmaster/storefront/pkg/metrics"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP
	ImageHandler   *ImageHTTP

	// BodyLimit caps JSON and form bodies (e.g. "10M"). Image uploads are not capped.
	BodyLimit string
	// Ready reports whether backing stores answer; nil means always ready.
	Ready     func(ctx context.Context) error
	Metrics   *metrics.ServerMetrics
	Identity  *authmw.Identity
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready").SetInternal(err)
			}
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}

	api := e.Group("")
	if d.Metrics != nil {
		api.Use(d.Metrics.Middleware())
	}
	if d.Identity != nil {
		api.Use(d.Identity.Attach)
	}

	var limited []echo.MiddlewareFunc
	if d.BodyLimit != "" {
		limited = append(limited, middleware.BodyLimit(d.BodyLimit))
	}

	api.POST("/signup", d.AuthHandler.Signup, limited...)
	api.POST("/login", d.AuthHandler.Login, limited...)

	api.GET("/products", d.ProductHandler.GetProducts)
	api.GET("/products/search", d.ProductHandler.Search)
	api.GET("/products/:id", d.ProductHandler.GetProduct)

	api.POST("/cart", d.CartHandler.AddToCart, limited...)
	api.DELETE("/cart/:id", d.CartHandler.RemoveFromCart)
	api.GET("/cart/:userId", d.CartHandler.GetCart)

	api.POST("/orders", d.OrderHandler.CreateOrder, limited...)
	api.GET("/orders/:userId", d.OrderHandler.GetOrders)

	api.POST("/images", d.ImageHandler.Upload)
}
