package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port        string `env:"PORT,         default=3000"`
	Env         string `env:"ENV,          default=development"`
	LogLevel    string `env:"LOG_LEVEL,    default=info"`
	LogPretty   bool   `env:"LOG_PRETTY,   default=false"`
	StoreDriver string `env:"STORE_DRIVER, default=mongo"`

	Auth      AuthConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Uploads   UploadsConfig
	Login     LoginConfig
	Bootstrap BootstrapConfig
}

type AuthConfig struct {
	JWTSecret    string        `env:"JWT_SECRET, required"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN, default=6h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=users_service"`
}

// RedisConfig configures the identity cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,        default=0"`
	CacheTTL time.Duration `env:"REDIS_CACHE_TTL, default=30s"`
}

type UploadsConfig struct {
	Dir           string `env:"UPLOADS_DIR,    default=./uploads/users"`
	DefaultAvatar string `env:"DEFAULT_AVATAR, default=default-user.jpg"`
}

type LoginConfig struct {
	Workers int `env:"LOGIN_WORKERS, default=4"`
}

// BootstrapConfig seeds a super admin at startup when Email and Password are set.
type BootstrapConfig struct {
	Email    string `env:"BOOTSTRAP_ADMIN_EMAIL"`
	Password string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
	Name     string `env:"BOOTSTRAP_ADMIN_NAME"`
}

func (b BootstrapConfig) Enabled() bool {
	return b.Email != "" && b.Password != ""
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l, which tests use to inject a map.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreMongo, StoreMemory, c.StoreDriver)
	}
	if c.Auth.JWTExpiresIn <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN must be positive")
	}
	if (c.Bootstrap.Email == "") != (c.Bootstrap.Password == "") {
		return fmt.Errorf("BOOTSTRAP_ADMIN_EMAIL and BOOTSTRAP_ADMIN_PASSWORD must be set together")
	}
	return nil
}
