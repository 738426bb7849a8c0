package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/service"
)

// RequireRole admits the authenticated user only when its role is in the
// policy's required set. It must run after Authenticate.
func RequireRole(policy domain.AccessPolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := service.AuthorizeRole(CurrentUser(c), policy); err != nil {
				return deny(domain.GuardRole, err)
			}
			return next(c)
		}
	}
}

// RequireRoleOrOwner admits the authenticated user when its role is in the
// required set or when its id equals the path parameter named param.
func RequireRoleOrOwner(policy domain.AccessPolicy, param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := service.AuthorizeRoleOrOwner(CurrentUser(c), policy, c.Param(param)); err != nil {
				return deny(domain.GuardRoleOrOwner, err)
			}
			return next(c)
		}
	}
}
