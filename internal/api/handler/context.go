package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/notifeed/notification-service/internal/api/middleware"
	"github.com/notifeed/notification-service/internal/core/domain"
)

// ctxUserID returns the user id stored by the bearer middleware. A missing
// value means the route was mounted without it, which is treated as
// unauthenticated rather than trusted.
func ctxUserID(c echo.Context) (int64, error) {
	id, ok := c.Get(middleware.UserIDContextKey).(int64)
	if !ok || id <= 0 {
		return 0, domain.ErrUnauthorized
	}
	return id, nil
}
