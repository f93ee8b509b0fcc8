package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"tabadul/pkg/logger"
)

const CallerHeader = "X-Caller-ID"

// CallerMiddleware stamps every request with the acting user id. There is no
// authentication: the id comes from the X-Caller-ID header or falls back to
// the configured default.
type CallerMiddleware struct {
	defaultID string
}

func NewCallerMiddleware(defaultID string) *CallerMiddleware {
	return &CallerMiddleware{
		defaultID: defaultID,
	}
}

func (m *CallerMiddleware) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid := strings.TrimSpace(c.Request().Header.Get(CallerHeader))
		if uid == "" {
			uid = m.defaultID
		}
		c.Set("uid", uid)

		if uid != "" {
			logger.Debug("%s %s as caller %s", c.Request().Method, c.Request().URL.Path, uid)
		}
		return next(c)
	}
}
