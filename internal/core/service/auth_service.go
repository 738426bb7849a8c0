package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
)

// PasswordHasher produces and checks one-way password digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs access tokens for an identity id. TTL is the lifetime of
// every token it issues.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	TTL() time.Duration
}

// AuthService implements registration, login and the credential re-checks.
type AuthService struct {
	repo     ports.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	recorder ports.LoginRecorder
	now      func() time.Time
}

// NewAuthService wires the session flows. A nil recorder writes last-login
// synchronously through repo.
func NewAuthService(repo ports.UserRepository, hasher PasswordHasher, tokens TokenIssuer, recorder ports.LoginRecorder) *AuthService {
	if recorder == nil {
		recorder = NewStoreLoginRecorder(repo)
	}
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		recorder: recorder,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.Session, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("hash password: %w", err))
	}

	now := s.now()
	created, err := s.repo.Insert(ctx, &domain.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Avatar:       domain.DefaultAvatar,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, storeError(err, in.Email)
	}

	return s.session(created, nil)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrWrongCredentials
		}
		return nil, domain.Internal(err)
	}
	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrWrongCredentials
	}

	now := s.now()
	if err := s.recorder.RecordLogin(ctx, user.ID, now); err != nil {
		return nil, domain.Internal(fmt.Errorf("record login: %w", err))
	}
	user.LastLogin = &now

	return s.session(user, domain.MenuFor(user.Role))
}

func (s *AuthService) CheckToken(_ context.Context, user *domain.User) (*ports.Session, error) {
	if user == nil {
		return nil, domain.Internal(errMissingIdentity)
	}
	return s.session(user, domain.MenuFor(user.Role))
}

func (s *AuthService) CheckCredentials(ctx context.Context, id, email, password string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrWrongCredentials
		}
		return nil, domain.Internal(err)
	}
	if user.Email != email || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrWrongCredentials
	}
	return user, nil
}

func (s *AuthService) session(user *domain.User, menu []domain.NavItem) (*ports.Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return &ports.Session{Token: token, ExpiresIn: s.tokens.TTL(), User: user, Menu: menu}, nil
}

// storeError maps credential store failures onto the domain taxonomy.
func storeError(err error, email string) error {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return domain.Conflict(fmt.Sprintf("%s already exists", email))
	case errors.Is(err, domain.ErrUserNotFound):
		return domain.ErrUserNotFound
	default:
		return domain.Internal(err)
	}
}
