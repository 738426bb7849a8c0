package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
)

type stubUserRepo struct {
	users     map[string]*domain.User
	nextID    int
	updates   int
	findErr   error // if set, FindByID/FindByEmail return this error
	updateErr error // if set, Update returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	clone := user.Clone()
	clone.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, p ports.UserPatch) (*domain.User, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if p.Email != nil {
		for otherID, other := range r.users {
			if otherID != id && other.Email == *p.Email {
				return nil, domain.ErrDuplicateEmail
			}
		}
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Country != nil {
		c := *p.Country
		u.Country = &c
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.LastLogin != nil {
		ts := *p.LastLogin
		u.LastLogin = &ts
	}
	r.updates++
	u.UpdatedAt = u.UpdatedAt.Add(time.Duration(r.updates) * time.Second)
	return u.Clone(), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(r.users, id)
	return u, nil
}

// List mirrors the Mongo query: term filter, newest update first, skip/limit.
func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	term := strings.ToLower(f.Term)
	var matched []*domain.User
	for _, u := range r.users {
		if term != "" {
			fields := []string{u.Name, u.Email, string(u.Role)}
			if u.Country != nil {
				fields = append(fields, u.Country.Name)
			}
			hit := false
			for _, field := range fields {
				if strings.Contains(strings.ToLower(field), term) {
					hit = true
					break
				}
			}
			if !hit {
				continue
			}
		}
		matched = append(matched, u.Clone())
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].UpdatedAt.After(matched[j].UpdatedAt) })

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip >= len(matched) {
		return []*domain.User{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

type failingRecorder struct{ err error }

func (f failingRecorder) RecordLogin(context.Context, string, time.Time) error { return f.err }

func newTestAuthService(t *testing.T, repo *stubUserRepo) (*AuthService, *TokenService) {
	t.Helper()
	tokens, err := NewTokenService("secret", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return NewAuthService(repo, NewBcryptHasher(4), tokens, nil), tokens
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newTestAuthService(t, repo)

	session, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Name: "Alice", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if session.User.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %s", session.User.Role)
	}
	if !session.User.IsActive || session.User.Avatar != domain.DefaultAvatar {
		t.Fatalf("unexpected defaults: %+v", session.User)
	}
	if session.User.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	id, err := tokens.Verify(session.Token)
	if err != nil || id != session.User.ID {
		t.Fatalf("token should resolve to %s, got %q (%v)", session.User.ID, id, err)
	}
	if session.ExpiresIn != tokens.TTL() {
		t.Fatalf("expected session to expire with the token, got %s", session.ExpiresIn)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(t, repo)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "bob@x.com", Name: "Bob", Password: "secret1"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "bob@x.com", Name: "Bob 2", Password: "secret2"})
	if domain.KindOf(err) != domain.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	var de *domain.Error
	if !errors.As(err, &de) || de.Message != "bob@x.com already exists" {
		t.Fatalf("unexpected conflict message: %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected 1 stored user, got %d", len(repo.users))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newTestAuthService(t, repo)

	reg, err := svc.Register(context.Background(), ports.RegisterInput{Email: "carol@x.com", Name: "Carol", Password: "s3cret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	session, err := svc.Login(context.Background(), "carol@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if id, err := tokens.Verify(session.Token); err != nil || id != reg.User.ID {
		t.Fatalf("token should resolve to %s, got %q (%v)", reg.User.ID, id, err)
	}
	if session.User.LastLogin == nil {
		t.Fatalf("expected last login on returned user")
	}
	if repo.users[reg.User.ID].LastLogin == nil {
		t.Fatalf("expected last login to be persisted")
	}
	if len(session.Menu) != 1 || session.Menu[0].Name != "Dashboard" {
		t.Fatalf("unexpected menu for user role: %+v", session.Menu)
	}
	if session.ExpiresIn != time.Hour {
		t.Fatalf("expected a one hour session, got %s", session.ExpiresIn)
	}
}

func TestAuthService_Login_WrongPasswordAndUnknownEmailLookTheSame(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(t, repo)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "dave@x.com", Name: "Dave", Password: "goodpass"})

	_, wrongPass := svc.Login(context.Background(), "dave@x.com", "badpass")
	_, unknown := svc.Login(context.Background(), "ghost@x.com", "goodpass")

	if !errors.Is(wrongPass, domain.ErrWrongCredentials) || !errors.Is(unknown, domain.ErrWrongCredentials) {
		t.Fatalf("expected ErrWrongCredentials for both, got %v / %v", wrongPass, unknown)
	}
	if wrongPass.Error() != unknown.Error() {
		t.Fatalf("messages differ: %q vs %q", wrongPass, unknown)
	}
}

func TestAuthService_Login_Inactive(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(t, repo)

	reg, _ := svc.Register(context.Background(), ports.RegisterInput{Email: "erin@x.com", Name: "Erin", Password: "secret1"})
	repo.users[reg.User.ID].IsActive = false

	if _, err := svc.Login(context.Background(), "erin@x.com", "secret1"); !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}

func TestAuthService_Login_RecorderFailure(t *testing.T) {
	repo := newStubUserRepo()
	tokens, _ := NewTokenService("secret", time.Hour)
	svc := NewAuthService(repo, NewBcryptHasher(4), tokens, failingRecorder{err: errors.New("db down")})

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "f@x.com", Name: "F", Password: "secret1"})
	if _, err := svc.Login(context.Background(), "f@x.com", "secret1"); domain.KindOf(err) != domain.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestAuthService_CheckToken(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newTestAuthService(t, repo)

	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin, IsActive: true}
	session, err := svc.CheckToken(context.Background(), admin)
	if err != nil {
		t.Fatalf("check token: %v", err)
	}
	if id, _ := tokens.Verify(session.Token); id != "a1" {
		t.Fatalf("expected refreshed token for a1, got %q", id)
	}
	if len(session.Menu) != 3 || len(session.Menu[2].Children) != 1 {
		t.Fatalf("unexpected admin menu: %+v", session.Menu)
	}

	if _, err := svc.CheckToken(context.Background(), nil); domain.KindOf(err) != domain.KindInternal {
		t.Fatalf("expected internal error without identity, got %v", err)
	}
}

func TestAuthService_CheckCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(t, repo)

	reg, _ := svc.Register(context.Background(), ports.RegisterInput{Email: "g@x.com", Name: "G", Password: "secret1"})
	other, _ := svc.Register(context.Background(), ports.RegisterInput{Email: "h@x.com", Name: "H", Password: "secret2"})

	user, err := svc.CheckCredentials(context.Background(), reg.User.ID, "g@x.com", "secret1")
	if err != nil || user.ID != reg.User.ID {
		t.Fatalf("expected success, got %v", err)
	}

	cases := []struct {
		name, id, email, password string
	}{
		{"unknown id", "nope", "g@x.com", "secret1"},
		{"email of another account", reg.User.ID, "h@x.com", "secret2"},
		{"wrong password", reg.User.ID, "g@x.com", "secret2"},
		{"valid pair for a different id", other.User.ID, "g@x.com", "secret1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CheckCredentials(context.Background(), tc.id, tc.email, tc.password); !errors.Is(err, domain.ErrWrongCredentials) {
				t.Fatalf("expected ErrWrongCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_RegisterLoginCheckTokenRoundTrip(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newTestAuthService(t, repo)
	authn := NewAuthenticator(tokens, repo)
	ctx := context.Background()

	reg, err := svc.Register(ctx, ports.RegisterInput{Email: "a@x.com", Name: "A", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	login, err := svc.Login(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	user, err := authn.Authenticate(ctx, "Bearer "+login.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	refreshed, err := svc.CheckToken(ctx, user)
	if err != nil {
		t.Fatalf("check token: %v", err)
	}
	if refreshed.User.ID != reg.User.ID {
		t.Fatalf("expected identity %s, got %s", reg.User.ID, refreshed.User.ID)
	}
	if id, err := tokens.Verify(refreshed.Token); err != nil || id != reg.User.ID {
		t.Fatalf("refreshed token should be unexpired and carry %s: %q %v", reg.User.ID, id, err)
	}
}
