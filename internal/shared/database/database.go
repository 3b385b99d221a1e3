package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"stampcard/internal/shared/config"
	"stampcard/pkg/cache"
	"stampcard/pkg/logger"
)

const pingTimeout = 5 * time.Second

// DB holds the Postgres store for cards, teams and draw history, and the
// Redis client for sessions, locks and caches.
type DB struct {
	PostgreSQL *gorm.DB
	Redis      *redis.Client
}

// InitDB connects both stores and migrates the schema
func InitDB(cfg *config.Config) (*DB, error) {
	log := logger.GetDefault()

	pg, err := openPostgres(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	log.Info("✅ PostgreSQL connected successfully",
		"host", cfg.Database.Host,
		"database", cfg.Database.Name,
		"max_open_conns", cfg.Database.MaxOpenConns,
	)

	if err := Migrate(pg); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := MigrateConstraints(pg); err != nil {
		return nil, fmt.Errorf("failed to apply constraints: %w", err)
	}

	rdb, err := cache.Connect(context.Background(), cache.Config{
		Address:  cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		_ = closePostgres(pg)
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}
	log.Info("✅ Redis connected successfully", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)

	return &DB{PostgreSQL: pg, Redis: rdb}, nil
}

func openPostgres(cfg *config.Config) (*gorm.DB, error) {
	level := gormlogger.Silent
	if cfg.IsDevelopment() {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		Logger:      gormlogger.Default.LogMode(level),
		NowFunc:     func() time.Time { return time.Now().UTC() },
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func closePostgres(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Close closes both connections and joins their errors
func (db *DB) Close() error {
	var errs []error

	if db.PostgreSQL != nil {
		if err := closePostgres(db.PostgreSQL); err != nil {
			errs = append(errs, fmt.Errorf("failed to close PostgreSQL: %w", err))
		}
	}
	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	logger.GetDefault().Info("✅ All database connections closed")
	return nil
}

// Health reports "ok" or the failure message for each configured store
func (db *DB) Health(ctx context.Context) map[string]string {
	status := make(map[string]string, 2)

	if db.PostgreSQL != nil {
		status["postgres"] = "ok"
		sqlDB, err := db.PostgreSQL.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			status["postgres"] = err.Error()
		}
	}

	if db.Redis != nil {
		status["redis"] = "ok"
		if err := db.Redis.Ping(ctx).Err(); err != nil {
			status["redis"] = err.Error()
		}
	}

	return status
}

// HealthCheck returns an error naming every store that failed its ping
func (db *DB) HealthCheck(ctx context.Context) error {
	var errs []error
	for name, state := range db.Health(ctx) {
		if state != "ok" {
			errs = append(errs, fmt.Errorf("%s ping failed: %s", name, state))
		}
	}
	return errors.Join(errs...)
}

func (db *DB) GetRedisClient() *redis.Client {
	return db.Redis
}

func (db *DB) GetPostgreSQL() *gorm.DB {
	return db.PostgreSQL
}
