// Package memory provides an in-process implementation of ports.UserRepository
// for local runs and end-to-end tests. Records are lost when the process exits.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
)

// UserRepository keeps users in a map keyed by id, with a secondary email index.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string
	now     func() time.Time
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *UserRepository) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return nil, domain.ErrDuplicateEmail
	}

	u := user.Clone()
	u.ID = uuid.NewString()
	now := r.now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u.Clone(), nil
}

func (r *UserRepository) Update(_ context.Context, id string, p ports.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if p.Email != nil && *p.Email != cur.Email {
		if _, taken := r.byEmail[*p.Email]; taken {
			return nil, domain.ErrDuplicateEmail
		}
	}

	u := cur.Clone()
	if p.Email != nil {
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
		country := *p.Country
		u.Country = &country
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.LastLogin != nil {
		ts := p.LastLogin.UTC()
		u.LastLogin = &ts
	}
	u.UpdatedAt = r.now()

	if u.Email != cur.Email {
		delete(r.byEmail, cur.Email)
		r.byEmail[u.Email] = id
	}
	r.byID[id] = u
	return u.Clone(), nil
}

func (r *UserRepository) Delete(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(r.byID, id)
	delete(r.byEmail, u.Email)
	return u.Clone(), nil
}

func (r *UserRepository) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	r.mu.RLock()
	matched := make([]*domain.User, 0, len(r.byID))
	term := strings.ToLower(f.Term)
	for _, u := range r.byID {
		if term == "" || matches(u, term) {
			matched = append(matched, u.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].UpdatedAt.Equal(matched[j].UpdatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})

	total := int64(len(matched))
	start := (f.Page - 1) * f.Limit
	if start < 0 || start >= len(matched) {
		return []*domain.User{}, total, nil
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func matches(u *domain.User, term string) bool {
	fields := []string{u.Name, u.Email, string(u.Role)}
	if u.Country != nil {
		fields = append(fields, u.Country.Name)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
