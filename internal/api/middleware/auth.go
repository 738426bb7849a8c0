package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-service/internal/api/metrics"
	"github.com/99minutos/user-service/internal/core/domain"
)

// UserKey is the echo context key holding the authenticated *domain.User.
const UserKey = "user"

// Authenticator resolves an Authorization header into an active identity.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (*domain.User, error)
}

// Authenticate rejects the request unless the bearer token resolves to an
// active user, which is then stored under UserKey.
func Authenticate(authn Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := authn.Authenticate(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return deny(domain.GuardAuthenticated, err)
			}
			c.Set(UserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the identity stored by Authenticate, or nil.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(UserKey).(*domain.User)
	return u
}

func deny(stage domain.GuardStage, err error) error {
	metrics.GuardDenialsTotal.WithLabelValues(stage.String(), string(domain.KindOf(err))).Inc()
	return err
}
