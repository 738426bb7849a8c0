package service

import (
	"context"
	"errors"
	"strings"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
)

const bearerPrefix = "Bearer "

// TokenVerifier resolves a signed token into the identity id it carries.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Authenticator is the first guard stage: it turns an Authorization header into
// a live, active identity.
type Authenticator struct {
	tokens TokenVerifier
	users  ports.UserRepository
}

func NewAuthenticator(tokens TokenVerifier, users ports.UserRepository) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Authenticate validates the bearer token in authorization and loads its identity.
// It never writes to the store.
func (a *Authenticator) Authenticate(ctx context.Context, authorization string) (*domain.User, error) {
	token, ok := bearerToken(authorization)
	if !ok {
		return nil, domain.ErrTokenNotFound
	}

	id, err := a.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, ErrExpiredToken) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenNotValid
	}

	user, err := a.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Internal(err)
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	return user, nil
}

// bearerToken extracts the token from "Bearer <token>". The scheme is case-sensitive
// and the token must be a single non-empty word.
func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := header[len(bearerPrefix):]
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

var errMissingIdentity = errors.New("authorization stage reached without an authenticated identity")

// AuthorizeRole admits user when its role is in the policy's required set.
func AuthorizeRole(user *domain.User, policy domain.AccessPolicy) error {
	if user == nil {
		return domain.Internal(errMissingIdentity)
	}
	if !policy.Allows(user.Role) {
		return domain.ErrNoPrivileges
	}
	return nil
}

// AuthorizeRoleOrOwner admits user when its role is in the required set or when it
// is the owner of the targeted resource. Both denials look the same to the caller.
func AuthorizeRoleOrOwner(user *domain.User, policy domain.AccessPolicy, ownerID string) error {
	if user == nil {
		return domain.Internal(errMissingIdentity)
	}
	if policy.Allows(user.Role) || (ownerID != "" && user.ID == ownerID) {
		return nil
	}
	return domain.ErrNoPrivileges
}
