package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/user-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string      `json:"error"`
	Kind  domain.Kind `json:"kind"`
}

var kindStatus = map[domain.Kind]int{
	domain.KindUnauthenticated:  http.StatusUnauthorized,
	domain.KindForbidden:        http.StatusForbidden,
	domain.KindNotFound:         http.StatusNotFound,
	domain.KindConflict:         http.StatusConflict,
	domain.KindValidationFailed: http.StatusBadRequest,
	domain.KindInternal:         http.StatusInternalServerError,
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to HTTP status codes.
//   - Logs internal errors without leaking their cause to the client.
//   - Renders {"error": "<message>", "kind": "<kind>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404/405 from the router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message), Kind: kindForStatus(he.Code)}
	}

	var de *domain.Error
	if errors.As(err, &de) && de.Kind != domain.KindInternal {
		return kindStatus[de.Kind], errorResponse{Error: de.Message, Kind: de.Kind}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	msg := domain.Internal(nil).Message
	return http.StatusInternalServerError, errorResponse{Error: msg, Kind: domain.KindInternal}
}

func kindForStatus(code int) domain.Kind {
	for kind, status := range kindStatus {
		if status == code {
			return kind
		}
	}
	if code >= 500 {
		return domain.KindInternal
	}
	return domain.KindValidationFailed
}
