// Package testutil holds the database, fixture and server helpers shared by
// package-level tests.
package testutil

import (
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/deouf-dev/talemy-api/database"
	"github.com/deouf-dev/talemy-api/internal/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.InitWithWriter("test", io.Discard)
}

// NewTestDB opens a fresh SQLite database in t.TempDir with foreign keys on,
// migrates every table and seeds the default subjects.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "talemy.db")
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := database.SeedSubjects(db); err != nil {
		t.Fatalf("failed to seed subjects: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
