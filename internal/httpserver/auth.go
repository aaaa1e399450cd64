package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

// Signup answers with the stored user record, password hash included.
func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_signup")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return bindFail(l, "signup_error", err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "signup_error", err, "")
	}

	username, password := req.Credentials()
	user, err := h.Svc.Signup(ctx, username, password)
	if err != nil {
		return fail(l, "signup_error", err, "")
	}

	l.Info("signup_successful", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return bindFail(l, "login_error", err)
	}

	username, password := req.Credentials()
	res, err := h.Svc.Login(ctx, username, password)
	if err != nil {
		return fail(l, "login_failed", err, "")
	}

	l.Info("login_successful", "user_id", res.UserID)
	return c.JSON(http.StatusOK, transport.LoginResponse{Token: res.Token})
}
