package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-service/internal/core/domain"
)

// OwnerParam is the path parameter compared against the caller's id.
const OwnerParam = "id"

// Guard expands an access policy into the ordered middleware chain for a
// route. Open routes get no middleware.
func Guard(policy domain.AccessPolicy, authn Authenticator) []echo.MiddlewareFunc {
	switch policy.Stage {
	case domain.GuardAuthenticated:
		return []echo.MiddlewareFunc{Authenticate(authn)}
	case domain.GuardRole:
		return []echo.MiddlewareFunc{Authenticate(authn), RequireRole(policy)}
	case domain.GuardRoleOrOwner:
		return []echo.MiddlewareFunc{Authenticate(authn), RequireRoleOrOwner(policy, OwnerParam)}
	default:
		return nil
	}
}
