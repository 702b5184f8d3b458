package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(domain.Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return EnsureIndexes(db)
}

// EnsureIndexes adds indexes gorm tags cannot express.
func EnsureIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_courses_title_lower ON courses (lower(title))`,
		`CREATE INDEX IF NOT EXISTS idx_users_email_lower ON users (lower(email))`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("ensure index: %w", err)
		}
	}
	return nil
}
