// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carterperez-dev/journal-backend/internal/admin"
	"github.com/carterperez-dev/journal-backend/internal/auth"
	"github.com/carterperez-dev/journal-backend/internal/config"
	"github.com/carterperez-dev/journal-backend/internal/core"
	"github.com/carterperez-dev/journal-backend/internal/entry"
	"github.com/carterperez-dev/journal-backend/internal/health"
	"github.com/carterperez-dev/journal-backend/internal/migrations"
	"github.com/carterperez-dev/journal-backend/internal/server"
	"github.com/carterperez-dev/journal-backend/internal/user"
)

const (
	drainDelay      = 5 * time.Second
	redisClientName = "journal-api"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := core.NewLogger(cfg.Log.Level, cfg.Log.Format)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(ctx, db.DB.DB); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	redis, err := core.NewRedis(ctx, cfg.Redis, redisClientName)
	if err != nil {
		return err
	}
	logger.Info("redis connected for sessions and rate limits",
		"pool_size", cfg.Redis.PoolSize,
		"session_store", cfg.Session.Store,
	)

	sessions, closeSessions, err := newSessionStore(ctx, cfg, redis)
	if err != nil {
		return err
	}
	logger.Info("session store initialized",
		"store", cfg.Session.Store,
		"ttl", cfg.Session.TTL,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	userSvc := user.NewService(user.NewRepository(db.DB))
	entrySvc := entry.NewService(entry.NewRepository(db.DB))
	authSvc := auth.NewService(userSvc, sessions, jwtManager, cfg.Session.TTL)

	healthHandler := health.NewHandler(
		health.Check{Name: "database", Checker: db},
		health.Check{Name: "sessions", Checker: sessions},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:     db.Stats,
		RedisStats:  redis.PoolStats,
		DBPing:      db.Ping,
		SessionPing: sessions.Ping,
		Users:       userSvc,
		Entries:     entrySvc,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	err = server.Mount(srv.Router(), server.Deps{
		Config:  cfg,
		Logger:  logger,
		Redis:   redis.Client,
		Health:  healthHandler,
		Auth:    authSvc,
		JWT:     jwtManager,
		Users:   userSvc,
		Entries: entrySvc,
		Admin:   adminHandler,
	})
	if err != nil {
		return err
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := closeSessions(); err != nil {
		logger.Error("session store close error", "error", err)
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func newSessionStore(
	ctx context.Context,
	cfg *config.Config,
	redis *core.Redis,
) (auth.SessionStore, func() error, error) {
	if cfg.Session.Store == config.SessionStoreMemory {
		store, err := auth.NewMemorySessionStore(ctx, cfg.Session.TTL)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}

	return auth.NewRedisSessionStore(redis.Client), func() error { return nil }, nil
}
