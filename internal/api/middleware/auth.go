package middleware

import (
	"context"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/notifeed/notification-service/internal/core/domain"
)

// UserIDContextKey is where the authenticated user id (int64) is stored.
const UserIDContextKey = "user_id"

// Authenticator resolves a bearer access token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (int64, error)
}

// Bearer validates the Authorization header through auth and stores the
// user id in the echo context. Every failure, including a missing header,
// surfaces as domain.ErrUnauthorized.
func Bearer(auth Authenticator) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  UserIDContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return auth.Authenticate(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return domain.ErrUnauthorized
		},
	})
}
