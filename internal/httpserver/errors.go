package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

const (
	msgInternal           = "Internal Server Error"
	msgInvalidCredentials = "Invalid credentials"
	msgProductNotFound    = "Product not found"
	msgCartItemNotFound   = "Cart item not found"
	msgInvalidBody        = "Invalid request body"
)

// fail maps a service error to its HTTP status and logs it under event.
// Only ErrInvalidCredentials and ErrNotFound reach the client as themselves,
// everything else is a 500.
func fail(l *slog.Logger, event string, err error, notFound string) error {
	code, msg := http.StatusInternalServerError, msgInternal
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		code, msg = http.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, service.ErrNotFound) && notFound != "":
		code, msg = http.StatusNotFound, notFound
	}

	if code >= 500 {
		l.Error(event, "status", code, "error", err)
	} else {
		l.Warn(event, "status", code, "error", err)
	}
	return echo.NewHTTPError(code, msg).SetInternal(err)
}

// bindFail answers 400 only for bodies that do not parse at all. A body that
// parses but carries unusable values fails like any other request.
func bindFail(l *slog.Logger, event string, err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		l.Warn(event, "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody).SetInternal(err)
	}
	return fail(l, event, fmt.Errorf("bind body: %w: %w", service.ErrValidation, err), "")
}

// ErrorHandler renders every error as {"error": "..."}. A 500 never carries
// details.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		he = echo.NewHTTPError(http.StatusInternalServerError, msgInternal)
	}

	msg := msgInternal
	if he.Code != http.StatusInternalServerError {
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(he.Code)
		}
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(he.Code)
	} else {
		werr = c.JSON(he.Code, transport.ErrorResponse{Error: msg})
	}
	if werr != nil {
		c.Logger().Error(werr)
	}
}
