package ports

import (
	"context"
	"time"

	"github.com/99minutos/user-service/internal/core/domain"
)

// RegisterInput is the self-service sign-up payload.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// Session is what a client receives after authenticating.
type Session struct {
	Token     string
	ExpiresIn time.Duration
	User      *domain.User
	Menu      []domain.NavItem
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	// CheckToken re-issues a token for an already authenticated identity.
	CheckToken(ctx context.Context, user *domain.User) (*Session, error)
	// CheckCredentials re-authenticates the account identified by id.
	CheckCredentials(ctx context.Context, id, email, password string) (*domain.User, error)
}
