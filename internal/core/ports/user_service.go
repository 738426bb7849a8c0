package ports

import (
	"context"
	"io"
	"time"

	"github.com/99minutos/user-service/internal/core/domain"
)

// CreateUserInput is the payload for administrative account creation.
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	Role     domain.Role
	Country  *domain.Country
	Avatar   string
	IsActive *bool
}

// UpdateUserInput is a partial profile update. Nil fields are left untouched.
type UpdateUserInput struct {
	Email    *string
	Name     *string
	Role     *domain.Role
	Country  *domain.Country
	Avatar   *string
	IsActive *bool
}

// UserPage is one page of a user listing.
type UserPage struct {
	Page      int
	PerPage   int
	Total     int64
	PageTotal int64
	Users     []*domain.User
}

type UserService interface {
	List(ctx context.Context, page, limit int) (*UserPage, error)
	Search(ctx context.Context, term string, page, limit int) (*UserPage, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	// Update applies in to the account id on behalf of actor.
	Update(ctx context.Context, actor *domain.User, id string, in UpdateUserInput) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, password string) (*domain.User, error)
	UpdateAvatar(ctx context.Context, id, originalName string, content io.Reader) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// AvatarStore persists avatar image bytes.
type AvatarStore interface {
	// Save stores content under a fresh name derived from originalName and returns that name.
	Save(ctx context.Context, originalName string, content io.Reader) (string, error)
	Remove(ctx context.Context, name string) error
	// Path resolves name to a servable file, falling back to the default avatar.
	Path(name string) string
}

// LoginRecorder persists the last-login timestamp of an identity.
type LoginRecorder interface {
	RecordLogin(ctx context.Context, userID string, at time.Time) error
}
