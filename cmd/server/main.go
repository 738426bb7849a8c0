package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/user-service/internal/api"
	"github.com/99minutos/user-service/internal/core/ports"
	"github.com/99minutos/user-service/internal/core/service"
	"github.com/99minutos/user-service/internal/infrastructure/config"
	"github.com/99minutos/user-service/internal/infrastructure/db/memory"
	"github.com/99minutos/user-service/internal/infrastructure/db/mongo"
	"github.com/99minutos/user-service/internal/infrastructure/db/redis"
	"github.com/99minutos/user-service/internal/infrastructure/queue"
	"github.com/99minutos/user-service/internal/infrastructure/storage"
	"github.com/99minutos/user-service/pkg/logger"
)

const (
	serviceName     = "user-service"
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: serviceName,
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Credential store ---
	var (
		repo    ports.UserRepository
		mongoDB *mongodriver.Database
	)
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn().Msg("using in-memory user store; data is lost on restart")
		repo = memory.NewUserRepository()
	default:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, AppName: serviceName})
		if err != nil {
			return err
		}
		defer func() {
			if err := mongo.Disconnect(context.Background(), client); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect failed")
			}
		}()
		mongoRepo := mongo.NewUserRepository(db)
		if err := mongoRepo.EnsureIndexes(ctx); err != nil {
			return err
		}
		repo, mongoDB = mongoRepo, db
	}

	// --- Identity cache ---
	var cache goredis.Cmdable
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer client.Close()
		cache = client
		repo = redis.NewCachedUserRepository(repo, client, cfg.Redis.CacheTTL, logger.Component("user_cache"))
	}

	// --- Core services ---
	hasher := service.NewBcryptHasher(service.DefaultHashCost)
	tokens, err := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiresIn)
	if err != nil {
		return err
	}
	avatars, err := storage.NewAvatarStore(cfg.Uploads.Dir, cfg.Uploads.DefaultAvatar)
	if err != nil {
		return err
	}

	dispatcher := queue.NewLoginDispatcher(cfg.Login.Workers, repo, logger.Component("login_dispatcher"))
	workersCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workersCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	authService := service.NewAuthService(repo, hasher, tokens, dispatcher)
	userService := service.NewUserService(repo, hasher, avatars, logger.Component("users"))

	if cfg.Bootstrap.Enabled() {
		if _, err := userService.EnsureSuperAdmin(ctx, cfg.Bootstrap.Email, cfg.Bootstrap.Name, cfg.Bootstrap.Password); err != nil {
			return err
		}
	}

	e := api.NewRouter(api.Dependencies{
		Auth:          authService,
		Users:         userService,
		Avatars:       avatars,
		Authenticator: service.NewAuthenticator(tokens, repo),
		Mongo:         mongoDB,
		Redis:         cache,
		Logger:        log,
	})

	// --- Serve until the signal context is cancelled ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
