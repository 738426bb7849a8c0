package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-service/internal/api/middleware"
	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
)

type stubAuthService struct {
	registerFn         func(ctx context.Context, in ports.RegisterInput) (*ports.Session, error)
	loginFn            func(ctx context.Context, email, password string) (*ports.Session, error)
	checkTokenFn       func(ctx context.Context, user *domain.User) (*ports.Session, error)
	checkCredentialsFn func(ctx context.Context, id, email, password string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.Session, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) CheckToken(ctx context.Context, user *domain.User) (*ports.Session, error) {
	return s.checkTokenFn(ctx, user)
}

func (s *stubAuthService) CheckCredentials(ctx context.Context, id, email, password string) (*domain.User, error) {
	return s.checkCredentialsFn(ctx, id, email, password)
}

// stubUserService embeds the interface so tests only stub what they call.
type stubUserService struct {
	ports.UserService
	listFn         func(ctx context.Context, page, limit int) (*ports.UserPage, error)
	searchFn       func(ctx context.Context, term string, page, limit int) (*ports.UserPage, error)
	createFn       func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	updateFn       func(ctx context.Context, actor *domain.User, id string, in ports.UpdateUserInput) (*domain.User, error)
	updateAvatarFn func(ctx context.Context, id, name string, content io.Reader) (*domain.User, error)
	emailExistsFn  func(ctx context.Context, email string) (bool, error)
}

func (s *stubUserService) List(ctx context.Context, page, limit int) (*ports.UserPage, error) {
	return s.listFn(ctx, page, limit)
}

func (s *stubUserService) Search(ctx context.Context, term string, page, limit int) (*ports.UserPage, error) {
	return s.searchFn(ctx, term, page, limit)
}

func (s *stubUserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubUserService) UpdateAvatar(ctx context.Context, id, name string, content io.Reader) (*domain.User, error) {
	return s.updateAvatarFn(ctx, id, name, content)
}

func (s *stubUserService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.emailExistsFn(ctx, email)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withUser(c echo.Context, u *domain.User) {
	c.Set(middleware.UserKey, u)
}
