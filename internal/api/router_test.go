package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/service"
	"github.com/99minutos/user-service/internal/infrastructure/db/memory"
	"github.com/99minutos/user-service/internal/infrastructure/storage"
)

type testServer struct {
	e      *echo.Echo
	repo   *memory.UserRepository
	tokens *service.TokenService
	users  *service.UserService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	repo := memory.NewUserRepository()
	hasher := service.NewBcryptHasher(4)
	tokens, err := service.NewTokenService("e2e-secret", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	avatars, err := storage.NewAvatarStore(t.TempDir(), "")
	if err != nil {
		t.Fatalf("avatar store: %v", err)
	}
	users := service.NewUserService(repo, hasher, avatars, zerolog.Nop())

	e := NewRouter(Dependencies{
		Auth:          service.NewAuthService(repo, hasher, tokens, nil),
		Users:         users,
		Avatars:       avatars,
		Authenticator: service.NewAuthenticator(tokens, repo),
		Logger:        zerolog.Nop(),
	})
	return &testServer{e: e, repo: repo, tokens: tokens, users: users}
}

func (s *testServer) do(t *testing.T, method, target, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var payload map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &payload)
	return rec, payload
}

func (s *testServer) login(t *testing.T, email, password string) (string, string) {
	t.Helper()
	rec, body := s.do(t, http.MethodPost, "/login", "", `{"email":"`+email+`","password":"`+password+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d %s", email, rec.Code, rec.Body.String())
	}
	user := body["user"].(map[string]any)
	return body["token"].(string), user["id"].(string)
}

func (s *testServer) register(t *testing.T, email string) string {
	t.Helper()
	rec, body := s.do(t, http.MethodPost, "/register", "", `{"email":"`+email+`","name":"N","password":"secret1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d %s", email, rec.Code, rec.Body.String())
	}
	return body["user"].(map[string]any)["id"].(string)
}

func TestRouter_RegisterLoginCheckToken(t *testing.T) {
	s := newTestServer(t)
	id := s.register(t, "ana@x.com")

	token, loginID := s.login(t, "ana@x.com", "secret1")
	if loginID != id {
		t.Fatalf("login resolved %s, registered %s", loginID, id)
	}

	rec, body := s.do(t, http.MethodGet, "/check-token", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("check-token: expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	fresh := body["token"].(string)
	claimID, err := s.tokens.Verify(fresh)
	if err != nil || claimID != id {
		t.Fatalf("renewed token must carry the same unexpired id: %q %v", claimID, err)
	}
	if menu, _ := body["menu"].([]any); len(menu) != 1 {
		t.Fatalf("expected the user menu, got %v", body["menu"])
	}

	stored, _ := s.repo.FindByID(context.Background(), id)
	if stored.LastLogin == nil {
		t.Fatalf("expected last login to be recorded")
	}
}

func TestRouter_LoginFailuresAreUniform(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ana@x.com")

	_, unknown := s.do(t, http.MethodPost, "/login", "", `{"email":"nobody@x.com","password":"secret1"}`)
	rec, wrong := s.do(t, http.MethodPost, "/login", "", `{"email":"ana@x.com","password":"wrong-pass"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if unknown["error"] != wrong["error"] || wrong["error"] != "Wrong credentials" {
		t.Fatalf("unknown email and wrong password must look identical: %v vs %v", unknown, wrong)
	}
}

func TestRouter_DuplicateRegister(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ana@x.com")

	rec, body := s.do(t, http.MethodPost, "/register", "", `{"email":"ana@x.com","name":"Other","password":"secret1"}`)
	if rec.Code != http.StatusConflict || body["kind"] != "conflict" {
		t.Fatalf("expected 409 conflict, got %d %v", rec.Code, body)
	}
	_, total, _ := s.repo.List(context.Background(), listAll)
	if total != 1 {
		t.Fatalf("duplicate register must not create a record, have %d", total)
	}
}

func TestRouter_Guards(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	if _, err := s.users.EnsureSuperAdmin(ctx, "root@x.com", "Root", "rootpass"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	superToken, _ := s.login(t, "root@x.com", "rootpass")

	rec, _ := s.do(t, http.MethodPost, "/users", superToken,
		`{"email":"admin@x.com","name":"Admin","password":"secret1","role":"admin","country":{"name":"Chile","cca2":"cl"}}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create admin: expected 201, got %d %s", rec.Code, rec.Body.String())
	}
	adminToken, adminID := s.login(t, "admin@x.com", "secret1")

	userID := s.register(t, "ana@x.com")
	userToken, _ := s.login(t, "ana@x.com", "secret1")

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		code   int
		msg    string
	}{
		{"no token", http.MethodGet, "/users", "", http.StatusUnauthorized, "Token not found"},
		{"garbage token", http.MethodGet, "/users", "abc.def.ghi", http.StatusUnauthorized, "Not valid token"},
		{"user lists", http.MethodGet, "/users", userToken, http.StatusForbidden, "You need privileges to perform this action"},
		{"admin lists", http.MethodGet, "/users", adminToken, http.StatusOK, ""},
		{"super lists", http.MethodGet, "/users", superToken, http.StatusOK, ""},
		{"user reads self", http.MethodGet, "/users/" + userID, userToken, http.StatusOK, ""},
		{"user reads other", http.MethodGet, "/users/" + adminID, userToken, http.StatusForbidden, "You need privileges to perform this action"},
		{"admin reads other", http.MethodGet, "/users/" + userID, adminToken, http.StatusForbidden, "You need privileges to perform this action"},
		{"super reads any", http.MethodGet, "/users/" + userID, superToken, http.StatusOK, ""},
		{"super reads missing", http.MethodGet, "/users/missing", superToken, http.StatusNotFound, "User not found"},
		{"admin deletes", http.MethodDelete, "/users/" + userID, adminToken, http.StatusForbidden, "You need privileges to perform this action"},
		{"open profile image", http.MethodGet, "/users/profile-image/none.png", "", http.StatusNotFound, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := s.do(t, tc.method, tc.path, tc.token, "")
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d %s", tc.code, rec.Code, rec.Body.String())
			}
			if tc.msg != "" && body["error"] != tc.msg {
				t.Fatalf("expected %q, got %v", tc.msg, body["error"])
			}
		})
	}
}

func TestRouter_InactiveAccount(t *testing.T) {
	s := newTestServer(t)
	id := s.register(t, "ana@x.com")
	token, _ := s.login(t, "ana@x.com", "secret1")

	off := false
	if _, err := s.users.Update(context.Background(), &domain.User{Role: domain.RoleSuperAdmin}, id, updateActive(off)); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	rec, body := s.do(t, http.MethodGet, "/check-token", token, "")
	if rec.Code != http.StatusForbidden || body["error"] != "User is not active" {
		t.Fatalf("expected inactive identity to be refused, got %d %v", rec.Code, body)
	}
	rec, body = s.do(t, http.MethodPost, "/login", "", `{"email":"ana@x.com","password":"secret1"}`)
	if rec.Code != http.StatusUnauthorized || body["error"] != "Your account is not active" {
		t.Fatalf("expected inactive login to be refused, got %d %v", rec.Code, body)
	}
}

func TestRouter_RoutePolicies(t *testing.T) {
	for _, r := range Routes(nil, nil, nil) {
		switch r.Policy.Stage {
		case domain.GuardRole, domain.GuardRoleOrOwner:
			if len(r.Policy.Roles) == 0 {
				t.Fatalf("%s %s: role stages need a required set", r.Method, r.Path)
			}
		}
		if strings.Contains(r.Path, ":id") && r.Policy.Stage == domain.GuardOpen {
			t.Fatalf("%s %s: per-account routes must be guarded", r.Method, r.Path)
		}
	}
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		rec, _ := s.do(t, http.MethodGet, path, "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestRouter_MetricsUseSentStatus(t *testing.T) {
	s := newTestServer(t)
	rec, _ := s.do(t, http.MethodPost, "/login", "", `{"email":"nobody@x.com","password":"secret1"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	scrape := httptest.NewRecorder()
	s.e.ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	series := `users_http_requests_total{code="401",host="example.com",method="POST",url="/login"}`
	if !strings.Contains(scrape.Body.String(), series) {
		t.Fatalf("expected %s in scrape", series)
	}
}
