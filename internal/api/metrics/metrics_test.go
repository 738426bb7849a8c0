package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func scrape(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("scrape: status %d", rec.Code)
	}
	return rec.Body.String()
}

func TestHTTPMiddleware_RecordsRouteTemplateAndCode(t *testing.T) {
	e := echo.New()
	e.Use(HTTPMiddleware())
	e.GET("/things/:id", func(c echo.Context) error {
		if c.Param("id") == "missing" {
			return echo.NewHTTPError(http.StatusNotFound, "nope")
		}
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/metrics", Handler())

	for _, path := range []string{"/things/1", "/things/missing"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	body := scrape(t, e)
	for _, series := range []string{
		`users_http_requests_total{code="204",host="example.com",method="GET",url="/things/:id"}`,
		`users_http_requests_total{code="404",host="example.com",method="GET",url="/things/:id"}`,
		`users_http_request_duration_seconds_count{code="204",host="example.com",method="GET",url="/things/:id"}`,
	} {
		if !strings.Contains(body, series) {
			t.Fatalf("expected series %s in scrape", series)
		}
	}
	if strings.Contains(body, `url="/things/1"`) {
		t.Fatalf("concrete paths must not become label values")
	}
}

func TestHTTPMiddleware_SharedAcrossRouters(t *testing.T) {
	for i := 0; i < 2; i++ {
		e := echo.New()
		e.Use(HTTPMiddleware())
		e.GET("/metrics", Handler())
		scrape(t, e)
	}
}
