package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-service/internal/api/middleware"
	"github.com/99minutos/user-service/internal/core/domain"
)

var errNoIdentity = errors.New("handler reached without an authenticated identity")

// ctxUser returns the identity stored by the Authenticate middleware. A missing
// identity means the route was registered without its guard.
func ctxUser(c echo.Context) (*domain.User, error) {
	u := middleware.CurrentUser(c)
	if u == nil {
		return nil, domain.Internal(errNoIdentity)
	}
	return u, nil
}

// bindAndValidate decodes the request body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.ValidationFailed("invalid payload")
	}
	return c.Validate(req)
}

// pagination reads the optional page and limit query parameters.
func pagination(c echo.Context) (page, limit int, err error) {
	err = echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("limit", &limit).
		BindError()
	if err != nil {
		return 0, 0, domain.ValidationFailed("page and limit must be integers")
	}
	return page, limit, nil
}
