package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
)

const (
	defaultCacheTTL = 30 * time.Second
	versionTTL      = 24 * time.Hour
)

var errStaleRead = errors.New("user changed while it was being read")

// CachedUserRepository wraps a ports.UserRepository and serves FindByID from
// Redis. Writes go to the wrapped store first and then drop the cached entry.
// Redis failures are logged and fall through to the store.
//
// Every invalidation bumps a per-user version key. A read-through only fills
// the cache when the version it saw before reading the store is still current,
// so a snapshot taken before an update or delete is never written back.
type CachedUserRepository struct {
	next   ports.UserRepository
	client redis.UniversalClient
	ttl    time.Duration
	log    zerolog.Logger
}

var _ ports.UserRepository = (*CachedUserRepository)(nil)

func NewCachedUserRepository(next ports.UserRepository, client redis.UniversalClient, ttl time.Duration, log zerolog.Logger) *CachedUserRepository {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedUserRepository{next: next, client: client, ttl: ttl, log: log}
}

// cachedUser mirrors domain.User but keeps the password hash, which the JSON
// form of domain.User omits.
type cachedUser struct {
	ID           string          `json:"id"`
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	PasswordHash string          `json:"password_hash"`
	Role         domain.Role     `json:"role"`
	Country      *domain.Country `json:"country,omitempty"`
	Avatar       string          `json:"avatar"`
	IsActive     bool            `json:"is_active"`
	LastLogin    *time.Time      `json:"last_login,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func toCached(u *domain.User) cachedUser {
	return cachedUser{
		ID: u.ID, Email: u.Email, Name: u.Name, PasswordHash: u.PasswordHash,
		Role: u.Role, Country: u.Country, Avatar: u.Avatar, IsActive: u.IsActive,
		LastLogin: u.LastLogin, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

func (c cachedUser) toDomain() *domain.User {
	return &domain.User{
		ID: c.ID, Email: c.Email, Name: c.Name, PasswordHash: c.PasswordHash,
		Role: c.Role, Country: c.Country, Avatar: c.Avatar, IsActive: c.IsActive,
		LastLogin: c.LastLogin, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func (r *CachedUserRepository) key(id string) string {
	return "users:id:" + id
}

func (r *CachedUserRepository) versionKey(id string) string {
	return "users:ver:" + id
}

func (r *CachedUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	version, cacheable := "", false
	vals, err := r.client.MGet(ctx, r.key(id), r.versionKey(id)).Result()
	if err != nil {
		r.log.Warn().Err(err).Str("user_id", id).Msg("user cache read failed")
	} else {
		cacheable = true
		version, _ = vals[1].(string)
		if raw, ok := vals[0].(string); ok {
			var cu cachedUser
			if jerr := json.Unmarshal([]byte(raw), &cu); jerr == nil {
				return cu.toDomain(), nil
			}
			r.log.Warn().Str("user_id", id).Msg("discarding undecodable cache entry")
		}
	}

	u, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cacheable {
		r.store(ctx, u, version)
	}
	return u, nil
}

// store caches u unless the user's version moved past seen.
func (r *CachedUserRepository) store(ctx context.Context, u *domain.User, seen string) {
	raw, err := json.Marshal(toCached(u))
	if err != nil {
		return
	}
	verKey := r.versionKey(u.ID)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, verKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != seen {
			return errStaleRead
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.key(u.ID), raw, r.ttl)
			return nil
		})
		return err
	}, verKey)
	switch {
	case err == nil:
	case errors.Is(err, errStaleRead), errors.Is(err, redis.TxFailedErr):
		r.log.Debug().Str("user_id", u.ID).Msg("skipping cache fill for a user changed mid-read")
	default:
		r.log.Warn().Err(err).Str("user_id", u.ID).Msg("user cache write failed")
	}
}

func (r *CachedUserRepository) invalidate(ctx context.Context, id string) {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, r.versionKey(id))
		pipe.Expire(ctx, r.versionKey(id), versionTTL)
		pipe.Del(ctx, r.key(id))
		return nil
	})
	if err != nil {
		r.log.Warn().Err(err).Str("user_id", id).Msg("user cache invalidation failed")
	}
}

func (r *CachedUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.next.FindByEmail(ctx, email)
}

func (r *CachedUserRepository) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	return r.next.Insert(ctx, user)
}

func (r *CachedUserRepository) Update(ctx context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	u, err := r.next.Update(ctx, id, patch)
	r.invalidate(ctx, id)
	return u, err
}

func (r *CachedUserRepository) Delete(ctx context.Context, id string) (*domain.User, error) {
	u, err := r.next.Delete(ctx, id)
	r.invalidate(ctx, id)
	return u, err
}

func (r *CachedUserRepository) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	return r.next.List(ctx, filter)
}
