package db

import (
	"github.com/taskboard/backend/internal/domain"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		return err
	}

	// The dashboard query scans by due date; AutoMigrate already indexes
	// due_at and related_id via the struct tags, the composite below serves
	// the window-plus-status read path on postgres.
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`
			CREATE INDEX IF NOT EXISTS idx_tasks_due_at_status
			ON tasks (due_at, status)
		`).Error; err != nil {
			return err
		}
	}

	return nil
}
