package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-service/internal/api/metrics"
	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	userService ports.UserService
}

func NewAuthHandler(authService ports.AuthService, userService ports.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// Register creates a self-service account with the user role.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.WithLabelValues("register").Inc()
	return c.JSON(http.StatusCreated, sessionResponse{Token: session.Token, User: session.User})
}

// Login authenticates a user and returns a token with the role menu.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(string(domain.KindOf(err))).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("login").Inc()
	return c.JSON(http.StatusOK, newSessionResponse(session))
}

// CheckToken renews the caller's token.
//
// @Summary      Renew the session token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /check-token [get]
func (h *AuthHandler) CheckToken(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	session, err := h.authService.CheckToken(c.Request().Context(), user)
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.WithLabelValues("check_token").Inc()
	return c.JSON(http.StatusOK, newSessionResponse(session))
}

// CheckCredentials re-authenticates the account in the path.
//
// @Summary      Re-check credentials of an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "User id"
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /check-credentials/{id} [post]
func (h *AuthHandler) CheckCredentials(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.CheckCredentials(c.Request().Context(), c.Param("id"), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// CheckEmailExists reports whether an account already uses the email.
//
// @Summary      Check whether an email is taken
// @Tags         auth
// @Produce      json
// @Param        email  path      string  true  "Email"
// @Success      200    {object}  emailExistsResponse
// @Router       /check-email-exist/{email} [get]
func (h *AuthHandler) CheckEmailExists(c echo.Context) error {
	exists, err := h.userService.EmailExists(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emailExistsResponse{Exists: exists})
}
