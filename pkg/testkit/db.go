package testkit

import (
	"io"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/automart/pkg/database"
	"github.com/shashiranjanraj/automart/pkg/migration"
)

// DB opens a private in-memory sqlite database, applies every registered
// migration and installs it as database.DB for the duration of the test.
// Packages that need the automart schema import database/migrations for
// its side effects.
func DB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open("file::memory:"))
	if err != nil {
		t.Fatalf("testkit: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("testkit: get sql.DB: %v", err)
	}
	// every connection would get its own empty memory database
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("testkit: enable foreign keys: %v", err)
	}
	if err := migration.New(db, io.Discard).Run(); err != nil {
		t.Fatalf("testkit: migrate: %v", err)
	}

	prev := database.DB
	database.Use(db)
	t.Cleanup(func() {
		database.Use(prev)
		_ = sqlDB.Close()
	})
	return db
}
