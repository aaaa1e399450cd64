package authmw

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

const ContextUserID = "user_id"

type Identity struct {
	JWTSecret []byte
}

func NewIdentity(secret []byte) *Identity {
	return &Identity{JWTSecret: secret}
}

// Attach reads an optional bearer token. A valid token puts the user id into
// the echo context and the request logger; a missing or bad one is ignored,
// the routes behind it stay public.
func (m *Identity) Attach(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if raw == "" {
			return next(c)
		}

		ctx := c.Request().Context()
		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil {
			logging.FromContext(ctx).Debug("identity_skipped", "reason", "invalid bearer token", "error", err)
			return next(c)
		}

		c.Set(ContextUserID, claims.UserID)
		l := logging.FromContext(ctx).With("user_id", claims.UserID)
		c.SetRequest(c.Request().WithContext(logging.IntoContext(ctx, l)))
		return next(c)
	}
}

// UserID returns the id set by Attach, if any.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(ContextUserID).(uint)
	return id, ok
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
