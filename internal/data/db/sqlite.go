package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

// SQLiteService backs local runs and tests. It holds a single connection, so
// an in-memory database lives exactly as long as the service.
type SQLiteService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSQLiteService(logg *logger.Logger, path string) (*SQLiteService, error) {
	serviceLog := logg.With("service", "SQLiteService")

	db, err := gorm.Open(sqlite.Open(sqliteDSN(path)), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %q: %w", path, err)
	}
	if err := (PoolConfig{MaxOpenConns: 1, MaxIdleConns: 1}).apply(db); err != nil {
		return nil, err
	}
	return &SQLiteService{db: db, log: serviceLog}, nil
}

func sqliteDSN(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == ":memory:" {
		return "file::memory:?_foreign_keys=on"
	}
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
}

func (s *SQLiteService) DB() *gorm.DB { return s.db }

func (s *SQLiteService) AutoMigrateAll() error { return AutoMigrateAll(s.db) }

func (s *SQLiteService) Close() error { return closeDB(s.db) }
