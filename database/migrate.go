package database

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/pokaque/proyecto-final-backend/models"
)

// Migrate applies the versioned schema migrations. Safe to run on every
// startup; applied ids are tracked by gormigrate.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "202505010001_initial_schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&models.User{},
					&models.Project{},
					&models.Milestone{},
					&models.StatusHistoryEntry{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					"status_history_entries",
					"milestones",
					"projects",
					"users",
				)
			},
		},
		{
			// history queries order by (project_id, changed_at desc)
			ID: "202505010002_history_changed_at_index",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec(
					"CREATE INDEX IF NOT EXISTS idx_status_history_project_changed ON status_history_entries (project_id, changed_at DESC)",
				).Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Exec("DROP INDEX IF EXISTS idx_status_history_project_changed").Error
			},
		},
	})

	return m.Migrate()
}
