package ports

import (
	"context"
	"time"

	"github.com/99minutos/user-service/internal/core/domain"
)

// ListUsersFilter carries the query parameters for listing users.
type ListUsersFilter struct {
	Term  string // optional: case-insensitive match on name, email, role or country name
	Page  int    // 1-based
	Limit int    // max rows per page
}

// UserPatch is a partial update. Nil fields are left untouched.
type UserPatch struct {
	Email        *string
	Name         *string
	PasswordHash *string
	Role         *domain.Role
	Country      *domain.Country
	Avatar       *string
	IsActive     *bool
	LastLogin    *time.Time
}

// UserRepository is the credential store consumed by the auth core.
//
// Missing records are reported as domain.ErrUserNotFound and email collisions on
// Insert/Update as domain.ErrDuplicateEmail.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
	// List returns a page of users sorted by most recently updated, and the total match count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
}
