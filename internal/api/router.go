package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/99minutos/user-service/docs"
	"github.com/99minutos/user-service/internal/api/handler"
	"github.com/99minutos/user-service/internal/api/metrics"
	"github.com/99minutos/user-service/internal/api/middleware"
	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
	healthhandlers "github.com/99minutos/user-service/internal/infrastructure/http/handlers"
)

const avatarBodyLimit = "5M"

// Dependencies are the collaborators the router wires into handlers.
// Mongo and Redis are only used by the readiness probe and may be nil.
type Dependencies struct {
	Auth          ports.AuthService
	Users         ports.UserService
	Avatars       ports.AvatarStore
	Authenticator middleware.Authenticator
	Mongo         *mongo.Database
	Redis         redis.Cmdable
	Logger        zerolog.Logger
}

// Route binds a handler to a method and path together with the access policy
// its guard chain is built from.
type Route struct {
	Method  string
	Path    string
	Policy  domain.AccessPolicy
	Handler echo.HandlerFunc
	Extra   []echo.MiddlewareFunc
}

var (
	adminRoles = []domain.Role{domain.RoleAdmin, domain.RoleSuperAdmin}
	superAdmin = domain.RoleSuperAdmin
)

// Routes returns the API route table.
func Routes(auth *handler.AuthHandler, users *handler.UserHandler, avatars *handler.AvatarHandler) []Route {
	return []Route{
		// --- Session ---
		{http.MethodPost, "/login", domain.Open(), auth.Login, nil},
		{http.MethodPost, "/register", domain.Open(), auth.Register, nil},
		{http.MethodGet, "/check-email-exist/:email", domain.Open(), auth.CheckEmailExists, nil},
		{http.MethodGet, "/check-token", domain.Authenticated(), auth.CheckToken, nil},
		{http.MethodPost, "/check-credentials/:id", domain.RequireRoleOrOwner(superAdmin), auth.CheckCredentials, nil},

		// --- User administration ---
		{http.MethodGet, "/users", domain.RequireRole(adminRoles...), users.List, nil},
		{http.MethodPost, "/users", domain.RequireRole(superAdmin), users.Create, nil},
		{http.MethodGet, "/users/search/:term", domain.RequireRole(adminRoles...), users.Search, nil},
		{http.MethodGet, "/users/profile-image/:name", domain.Open(), avatars.ProfileImage, nil},
		{http.MethodGet, "/users/:id", domain.RequireRoleOrOwner(superAdmin), users.Get, nil},
		{http.MethodPatch, "/users/:id", domain.RequireRoleOrOwner(superAdmin), users.Update, nil},
		{http.MethodDelete, "/users/:id", domain.RequireRole(superAdmin), users.Delete, nil},
		{http.MethodPatch, "/users/:id/password", domain.RequireRoleOrOwner(superAdmin), users.UpdatePassword, nil},
		{http.MethodPost, "/users/:id/avatar", domain.RequireRoleOrOwner(superAdmin), avatars.Upload,
			[]echo.MiddlewareFunc{echomiddleware.BodyLimit(avatarBodyLimit)}},
	}
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(metrics.HTTPMiddleware())
	e.Use(requestLogger(deps.Logger))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Users)
	userHandler := handler.NewUserHandler(deps.Users)
	avatarHandler := handler.NewAvatarHandler(deps.Users, deps.Avatars)

	for _, r := range Routes(authHandler, userHandler, avatarHandler) {
		chain := append(middleware.Guard(r.Policy, deps.Authenticator), r.Extra...)
		e.Add(r.Method, r.Path, r.Handler, chain...)
	}

	// --- Operational endpoints (no auth required) ---
	var probes []healthhandlers.Probe
	if deps.Mongo != nil {
		probes = append(probes, healthhandlers.MongoProbe(deps.Mongo))
	}
	if deps.Redis != nil {
		probes = append(probes, healthhandlers.RedisProbe(deps.Redis))
	}

	e.GET("/health", healthhandlers.Liveness)
	e.GET("/health/ready", healthhandlers.NewReadinessHandler(probes...).Readiness)
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
