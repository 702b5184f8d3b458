package db

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

// Service owns one connection pool. App constructs it once and closes it on shutdown.
type Service interface {
	DB() *gorm.DB
	AutoMigrateAll() error
	Close() error
}

type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (p PoolConfig) apply(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	if p.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(p.MaxOpenConns)
	}
	if p.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(p.MaxIdleConns)
	}
	if p.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(p.ConnMaxLifetime)
	}
	return nil
}

type Config struct {
	Driver     string
	Postgres   PostgresConfig
	SQLitePath string
	Pool       PoolConfig
}

// Open picks the driver named by cfg.Driver ("postgres" or "sqlite").
func Open(log *logger.Logger, cfg Config) (Service, error) {
	switch cfg.Driver {
	case "", "postgres":
		return NewPostgresService(log, cfg.Postgres, cfg.Pool)
	case "sqlite":
		return NewSQLiteService(log, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

func closeDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
