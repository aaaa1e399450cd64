package httpserver

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// pathID parses a numeric path parameter. Ids that do not parse can never
// match a row, so callers treat them as "no such record".
func pathID(c echo.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
