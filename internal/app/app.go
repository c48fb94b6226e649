package app

import (
	"database/sql"
	"errors"

	"go-hris-console/internal/audit"
	"go-hris-console/internal/messaging/kafka"
	"go-hris-console/internal/rbac/infra"
	"go-hris-console/internal/shared/connection"
	"go-hris-console/internal/upstream"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the long-lived connections behind the console API.
type App struct {
	Config   Config
	Recorder audit.Recorder

	db  *sql.DB
	rdb *redis.Client
}

func BuildApp(router *gin.Engine, cfg Config) (*App, error) {
	logger := zap.L().Named("app")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		cfg.ConnectRetries,
	)
	if err != nil {
		return nil, err
	}
	if err := gormDB.AutoMigrate(&kafka.OutboxRecord{}); err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("redis connection established")

	upstreamClient, err := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	if err != nil {
		_ = sqlDB.Close()
		_ = redisClient.Close()
		return nil, err
	}

	enforcer, err := infra.NewEnforcer(cfg.RBACModelPath, cfg.RBACPolicyPath)
	if err != nil {
		_ = sqlDB.Close()
		_ = redisClient.Close()
		return nil, err
	}

	recorder := audit.NewOutboxRecorder(kafka.NewOutboxRepository(sqlDB))

	// Register Modules & Routes
	registerModules(router, modules{
		cfg:      cfg,
		rdb:      redisClient,
		upstream: upstreamClient,
		enforcer: enforcer,
		recorder: recorder,
	})

	return &App{
		Config:   cfg,
		Recorder: recorder,
		db:       sqlDB,
		rdb:      redisClient,
	}, nil
}

func (a *App) Close() error {
	return errors.Join(a.rdb.Close(), a.db.Close())
}
