package database

import (
	"fmt"

	"github.com/deouf-dev/talemy-api/internal/logger"
	"github.com/deouf-dev/talemy-api/internal/models"

	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.TeacherProfile{},
		&models.StudentProfile{},
		&models.Subject{},
		&models.TeacherSubject{},
		&models.AvailabilitySlot{},
		&models.ContactRequest{},
		&models.Conversation{},
		&models.Message{},
		&models.Lesson{},
		&models.Review{},
	}
}

// AutoMigrate creates or updates every table, index and foreign key.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Info("AutoMigrate completed", "tables", len(Models()))
	return nil
}

// DropAll drops every table in reverse dependency order.
func DropAll(db *gorm.DB) error {
	all := Models()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return nil
}
