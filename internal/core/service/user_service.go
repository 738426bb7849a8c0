package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
)

const (
	defaultPageLimit = 5
	maxPageLimit     = 100
)

// UserService implements account administration on top of the credential store.
type UserService struct {
	repo    ports.UserRepository
	hasher  PasswordHasher
	avatars ports.AvatarStore
	logger  zerolog.Logger
	now     func() time.Time
}

func NewUserService(repo ports.UserRepository, hasher PasswordHasher, avatars ports.AvatarStore, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:    repo,
		hasher:  hasher,
		avatars: avatars,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *UserService) List(ctx context.Context, page, limit int) (*ports.UserPage, error) {
	return s.page(ctx, "", page, limit)
}

func (s *UserService) Search(ctx context.Context, term string, page, limit int) (*ports.UserPage, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, domain.ValidationFailed("term is required")
	}
	return s.page(ctx, term, page, limit)
}

func (s *UserService) page(ctx context.Context, term string, page, limit int) (*ports.UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	users, total, err := s.repo.List(ctx, ports.ListUsersFilter{Term: term, Page: page, Limit: limit})
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("list users: %w", err))
	}
	if users == nil {
		users = []*domain.User{}
	}

	var pageTotal int64
	if total > 0 {
		pageTotal = (total-1)/int64(limit) + 1
	}
	return &ports.UserPage{
		Page:      page,
		PerPage:   limit,
		Total:     total,
		PageTotal: pageTotal,
		Users:     users,
	}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "")
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, domain.ValidationFailed(fmt.Sprintf("role must be one of: %s %s %s", domain.RoleUser, domain.RoleAdmin, domain.RoleSuperAdmin))
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("hash password: %w", err))
	}

	avatar := in.Avatar
	if avatar == "" {
		avatar = domain.DefaultAvatar
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	now := s.now()
	created, err := s.repo.Insert(ctx, &domain.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         role,
		Country:      in.Country,
		Avatar:       avatar,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, storeError(err, in.Email)
	}
	return created, nil
}

// Update changes profile fields. Role and activation changes are reserved to super admins
// even when the actor is editing their own account.
func (s *UserService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if actor == nil {
		return nil, domain.Internal(errMissingIdentity)
	}
	if (in.Role != nil || in.IsActive != nil) && actor.Role != domain.RoleSuperAdmin {
		return nil, domain.ErrNoPrivileges
	}
	if in.Role != nil && !in.Role.Valid() {
		return nil, domain.ValidationFailed(fmt.Sprintf("role must be one of: %s %s %s", domain.RoleUser, domain.RoleAdmin, domain.RoleSuperAdmin))
	}

	updated, err := s.repo.Update(ctx, id, ports.UserPatch{
		Email:    in.Email,
		Name:     in.Name,
		Role:     in.Role,
		Country:  in.Country,
		Avatar:   in.Avatar,
		IsActive: in.IsActive,
	})
	if err != nil {
		email := ""
		if in.Email != nil {
			email = *in.Email
		}
		return nil, storeError(err, email)
	}
	return updated, nil
}

func (s *UserService) UpdatePassword(ctx context.Context, id, password string) (*domain.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("hash password: %w", err))
	}
	updated, err := s.repo.Update(ctx, id, ports.UserPatch{PasswordHash: &hash})
	if err != nil {
		return nil, storeError(err, "")
	}
	return updated, nil
}

// UpdateAvatar stores a new avatar for id and removes the file it replaces.
func (s *UserService) UpdateAvatar(ctx context.Context, id, originalName string, content io.Reader) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "")
	}

	name, err := s.avatars.Save(ctx, originalName, content)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("save avatar: %w", err))
	}

	updated, err := s.repo.Update(ctx, id, ports.UserPatch{Avatar: &name})
	if err != nil {
		if rmErr := s.avatars.Remove(ctx, name); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("avatar", name).Msg("failed to remove orphaned avatar")
		}
		return nil, storeError(err, "")
	}

	if old := user.Avatar; old != "" && old != domain.DefaultAvatar && old != name {
		if err := s.avatars.Remove(ctx, old); err != nil {
			s.logger.Warn().Err(err).Str("user_id", id).Str("avatar", old).Msg("failed to remove previous avatar")
		}
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, storeError(err, "")
	}
	return removed, nil
}

func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrUserNotFound):
		return false, nil
	default:
		return false, domain.Internal(err)
	}
}

// EnsureSuperAdmin creates a super admin with email unless an account already uses it.
// It reports whether an account was created.
func (s *UserService) EnsureSuperAdmin(ctx context.Context, email, name, password string) (bool, error) {
	exists, err := s.EmailExists(ctx, email)
	if err != nil || exists {
		return false, err
	}
	if name == "" {
		name = "Super Admin"
	}

	_, err = s.Create(ctx, ports.CreateUserInput{
		Email:    email,
		Name:     name,
		Password: password,
		Role:     domain.RoleSuperAdmin,
	})
	if domain.KindOf(err) == domain.KindConflict {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.logger.Info().Str("email", email).Msg("bootstrap super admin created")
	return true, nil
}
